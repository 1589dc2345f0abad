package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CachedAnswer is the cache entry for one stateless question.
type CachedAnswer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// AnswerCache keeps answers to history-free questions in Redis so repeated
// questions skip the embedding and generation calls. Entries expire; the
// cache is best-effort and every failure degrades to a normal pipeline run.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnswerCache creates an AnswerCache with the given entry lifetime.
func NewAnswerCache(client *redis.Client, ttl time.Duration) *AnswerCache {
	return &AnswerCache{client: client, ttl: ttl}
}

// cacheKey hashes the question so arbitrary user text never becomes a raw
// Redis key.
func cacheKey(question string) string {
	sum := sha256.Sum256([]byte(question))
	return fmt.Sprintf("sprypt:answer:%s", hex.EncodeToString(sum[:]))
}

// Get returns the cached answer for a question, if present.
func (c *AnswerCache) Get(ctx context.Context, question string) (*CachedAnswer, bool) {
	data, err := c.client.Get(ctx, cacheKey(question)).Bytes()
	if err != nil {
		return nil, false
	}
	var cached CachedAnswer
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

// Put stores an answer. Errors are ignored; a missed write only costs a
// recomputation later.
func (c *AnswerCache) Put(ctx context.Context, question, answer string, sources []string) {
	data, err := json.Marshal(CachedAnswer{Answer: answer, Sources: sources})
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(question), data, c.ttl)
}
