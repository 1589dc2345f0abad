package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic application identity, logged at startup.
type AppInfo struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// ServerConfig holds the HTTP serving settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LoggerConfig holds the logging settings.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// OpenAIConfig holds the credential and model selection for the embedding
// and generation services. The API key is normally supplied through the
// OPENAI_API_KEY environment variable rather than the file.
type OpenAIConfig struct {
	APIKey         string  `yaml:"apiKey"`
	EmbeddingModel string  `yaml:"embeddingModel"`
	ChatModel      string  `yaml:"chatModel"`
	Temperature    float32 `yaml:"temperature"`
}

// ChunkingConfig holds the splitter parameters.
type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunkSize"`
	ChunkOverlap int `yaml:"chunkOverlap"`
}

// RetrievalConfig holds the query-time retrieval parameters.
type RetrievalConfig struct {
	TopK int `yaml:"topK"`
}

// SourcesConfig names the corpus files. FAQ files are required sources; the
// website dump is a fallback source and may be absent.
type SourcesConfig struct {
	FAQFiles    []string `yaml:"faqFiles"`
	WebsiteFile string   `yaml:"websiteFile"`
}

// IndexConfig holds the persisted-index settings.
type IndexConfig struct {
	Dir         string `yaml:"dir"`
	ForceReload bool   `yaml:"forceReload"`
}

// RedisConfig holds the optional answer-cache settings. The cache is
// disabled when Address is empty.
type RedisConfig struct {
	Address    string `yaml:"address"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

// DatabaseConfigs groups external storage settings.
type DatabaseConfigs struct {
	Redis RedisConfig `yaml:"redis"`
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Sources   SourcesConfig   `yaml:"sources"`
	Index     IndexConfig     `yaml:"index"`
	Databases DatabaseConfigs `yaml:"databases"`
}

// Default returns the configuration used when a field is absent from the
// file. The chunking and retrieval values are the ones the corpus was tuned
// with.
func Default() *AppConfig {
	return &AppConfig{
		App:    AppInfo{Name: "sprypt-chatbot", Environment: "development"},
		Server: ServerConfig{Address: ":8000"},
		Logger: LoggerConfig{Level: "info"},
		OpenAI: OpenAIConfig{
			EmbeddingModel: "text-embedding-ada-002",
			ChatModel:      "gpt-3.5-turbo",
			Temperature:    0.7,
		},
		Chunking:  ChunkingConfig{ChunkSize: 1000, ChunkOverlap: 200},
		Retrieval: RetrievalConfig{TopK: 5},
		Sources: SourcesConfig{
			WebsiteFile: "sprypt_website_content.txt",
		},
		Index: IndexConfig{Dir: "./index_db"},
		Databases: DatabaseConfigs{
			Redis: RedisConfig{TTLSeconds: 3600},
		},
	}
}

// FromEnv returns the default configuration with environment overrides
// applied, for deployments that run without a config file.
func FromEnv() *AppConfig {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadConfig reads and parses the YAML configuration file at path, layering
// it over the defaults and then applying environment overrides.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := Default()

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override secrets and deployment-specific
// settings without editing the file.
func (c *AppConfig) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		c.Databases.Redis.Address = v
	}
}
