package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/interfaces"
	"github.com/koushals-sys/Sprypt-chat-bot/internal/rag/schema"
	"github.com/koushals-sys/Sprypt-chat-bot/pkg/logger"
)

const (
	// snapshotFile is the name of the snapshot inside the index directory.
	snapshotFile = "index.json"
	// snapshotVersion is bumped on any layout change; snapshots from another
	// version are rebuilt, not migrated.
	snapshotVersion = 1
)

// snapshot is the on-disk representation of a LocalStore. Once written it is
// sufficient to reconstruct identical search behavior without the original
// chunk sequence.
type snapshot struct {
	Version   int                `json:"version"`
	Model     string             `json:"model"`
	Dimension int                `json:"dimension"`
	CreatedAt time.Time          `json:"created_at"`
	Records   []*schema.Document `json:"records"`
}

// LocalStore is a file-backed vector index over cosine similarity. After
// build it is read-mostly: concurrent Search calls are safe without external
// locking, and ties in score resolve by insertion order so identical queries
// always return identical results.
type LocalStore struct {
	mu      sync.RWMutex
	model   string
	dim     int
	records []*schema.Document
	log     *logger.Logger
}

// NewLocalStore creates an empty LocalStore for vectors produced by the
// given embedding model.
func NewLocalStore(model string, log *logger.Logger) *LocalStore {
	return &LocalStore{model: model, log: log}
}

// Add appends documents to the index. Every document must already carry an
// embedding of the same dimension.
func (s *LocalStore) Add(ctx context.Context, docs []*schema.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %s has no embedding", doc.ID)
		}
		if s.dim == 0 {
			s.dim = len(doc.Embedding)
		}
		if len(doc.Embedding) != s.dim {
			return fmt.Errorf("document %s has dimension %d, index has %d", doc.ID, len(doc.Embedding), s.dim)
		}
		s.records = append(s.records, doc)
	}
	return nil
}

// Size returns the number of indexed records.
func (s *LocalStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Search returns the topK records most similar to the query vector, ordered
// by descending score. Requesting more records than the index holds returns
// all of them.
func (s *LocalStore) Search(ctx context.Context, embedding []float32, topK int) ([]schema.SearchResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]schema.SearchResult, 0, len(s.records))
	for _, rec := range s.records {
		results = append(results, schema.SearchResult{
			Document: rec,
			Score:    cosine(embedding, rec.Embedding),
		})
	}

	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

// Save writes a versioned snapshot of the index into dir, atomically
// replacing any previous snapshot.
func (s *LocalStore) Save(dir string) error {
	s.mu.RLock()
	snap := snapshot{
		Version:   snapshotVersion,
		Model:     s.model,
		Dimension: s.dim,
		CreatedAt: time.Now().UTC(),
		Records:   s.records,
	}
	data, err := json.Marshal(snap)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode index snapshot: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	tmp := filepath.Join(dir, snapshotFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index snapshot: %w", err)
	}
	return os.Rename(tmp, filepath.Join(dir, snapshotFile))
}

// Load reconstructs a LocalStore from a snapshot directory without
// re-embedding. An absent, corrupt, or incompatible snapshot is not an
// error: Load returns (nil, nil) to signal the caller to rebuild.
func Load(dir, model string, log *logger.Logger) (*LocalStore, error) {
	data, err := os.ReadFile(filepath.Join(dir, snapshotFile))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn(fmt.Sprintf("Failed to read index snapshot in %s: %v. Rebuilding.", dir, err))
		}
		return nil, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn(fmt.Sprintf("Index snapshot in %s is corrupt: %v. Rebuilding.", dir, err))
		return nil, nil
	}
	if snap.Version != snapshotVersion {
		log.Warn(fmt.Sprintf("Index snapshot in %s has version %d, want %d. Rebuilding.", dir, snap.Version, snapshotVersion))
		return nil, nil
	}
	if snap.Model != model {
		log.Warn(fmt.Sprintf("Index snapshot in %s was built with model %q, configured model is %q. Rebuilding.", dir, snap.Model, model))
		return nil, nil
	}

	store := NewLocalStore(model, log)
	store.dim = snap.Dimension
	store.records = snap.Records
	log.Info(fmt.Sprintf("Loaded index snapshot with %d records from %s", len(snap.Records), dir))
	return store, nil
}

// cosine computes cosine similarity between two vectors of equal dimension,
// returning 0 for mismatched or zero vectors.
func cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// compile-time check to ensure LocalStore implements the VectorStore interface
var _ interfaces.VectorStore = (*LocalStore)(nil)
