// Package cache memoizes solve results in Redis, keyed on a digest of
// the request (model + pivot options) so repeat submissions of the
// same problem skip the simplex engine entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/simplex"
)

const keyPrefix = "lpsimplex:solve:"

// Cache wraps a Redis client with a fixed TTL for cached solve results.
type Cache struct {
	rdb *redis.Client
	log *zap.Logger
	ttl time.Duration
}

// New builds a Cache over an already-connected Redis client.
func New(rdb *redis.Client, log *zap.Logger, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{rdb: rdb, log: log, ttl: ttl}
}

// entry is the JSON shape persisted in Redis.
type entry struct {
	X          []float64 `json:"x"`
	Value      float64   `json:"value"`
	Code       string    `json:"code"`
	Iterations int       `json:"iterations"`
}

// Key derives a stable digest for a (model, options) pair. Coefficients
// and bounds are hashed in declaration order, so two requests that
// differ only in row/column ordering are treated as distinct problems
// rather than spuriously deduplicated.
func Key(m *lpmodel.Model, opts simplex.Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "n=%d|m=%d|rule=%s|maxiter=%d\n", m.N, m.M, opts.Rule, opts.MaxIter)
	for _, c := range m.Objective {
		fmt.Fprintf(h, "%x ", c)
	}
	h.Write([]byte{'\n'})
	for _, c := range m.Constraints {
		fmt.Fprintf(h, "%s|%d|%x|", c.Name, c.Sense, c.RHS)
		for _, v := range c.Coefs {
			fmt.Fprintf(h, "%x ", v)
		}
		h.Write([]byte{'\n'})
	}
	for _, b := range m.Bounds {
		fmt.Fprintf(h, "%d|%x|%x\n", b.Kind, b.Lower, b.Upper)
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns a cached result and true on a hit, or a zero Result and
// false on a miss or any Redis error (a cache failure degrades to a
// fresh solve rather than aborting the request).
func (c *Cache) Get(ctx context.Context, key string) (simplex.Result, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return simplex.Result{}, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.Warn("cache entry corrupt, ignoring", zap.String("key", key), zap.Error(err))
		return simplex.Result{}, false
	}

	return simplex.Result{
		X:          e.X,
		Value:      e.Value,
		Code:       codeFromString(e.Code),
		Iterations: e.Iterations,
	}, true
}

// Set stores r under key with the cache's configured TTL. Only
// successful solves are worth memoizing; callers should skip Set for
// non-Success results.
func (c *Cache) Set(ctx context.Context, key string, r simplex.Result) {
	e := entry{X: r.X, Value: r.Value, Code: r.Code.String(), Iterations: r.Iterations}
	raw, err := json.Marshal(e)
	if err != nil {
		c.log.Warn("cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func codeFromString(s string) simplex.Code {
	for code := simplex.Success; code <= simplex.PrecisionError; code++ {
		if code.String() == s {
			return code
		}
	}
	return simplex.CondUnsatisfied
}
