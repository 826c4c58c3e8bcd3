package analysiscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/db"
	"github.com/kailas-cloud/kabunote/internal/domain"
	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
)

var cacheKeyPrefix = domain.KeyPrefix + "analysis_cache:"

// Analyzer is the decorated content analyzer.
type Analyzer interface {
	Analyze(content, title string) analysis.Result
}

// kvStore is the consumer interface for the analysis cache (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedAnalyzer caches analysis results in a key-value store.
// A nil store disables caching.
type CachedAnalyzer struct {
	inner      Analyzer
	store      kvStore
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	byLabel    *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Analyzer,
	s kvStore,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedAnalyzer{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithSentimentCounter counts every returned analysis by sentiment label.
func (c *CachedAnalyzer) WithSentimentCounter(cv *prometheus.CounterVec) *CachedAnalyzer {
	c.byLabel = cv
	return c
}

// Analyze returns a cached result or runs the inner analyzer.
// Storage failures are logged and never change the outcome.
func (c *CachedAnalyzer) Analyze(ctx context.Context, content, title string) analysis.Result {
	if c.store == nil {
		return c.count(c.inner.Analyze(content, title))
	}

	key := cacheKey(content, title)
	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return c.count(res)
	}
	c.incCache("miss")

	res := c.inner.Analyze(content, title)
	c.putToCache(ctx, key, res)
	return c.count(res)
}

func (c *CachedAnalyzer) count(res analysis.Result) analysis.Result {
	if c.byLabel != nil {
		c.byLabel.WithLabelValues(string(res.Sentiment)).Inc()
	}
	return res
}

func (c *CachedAnalyzer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(content, title string) string {
	h := sha256.Sum256([]byte(title + "\x00" + content))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedAnalyzer) getFromCache(ctx context.Context, key string) (analysis.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached analysis", zap.String("key", key), zap.Error(err))
		}
		return analysis.Result{}, false
	}
	if len(data) == 0 {
		return analysis.Result{}, false
	}

	var res analysis.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("Failed to parse cached analysis", zap.String("key", key), zap.Error(err))
		return analysis.Result{}, false
	}
	if !res.Valid() {
		c.logger.Warn("Discarding invalid cached analysis", zap.String("key", key))
		return analysis.Result{}, false
	}
	return res, true
}

func (c *CachedAnalyzer) putToCache(ctx context.Context, key string, res analysis.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("Failed to encode analysis", zap.Error(err))
		return
	}
	if c.ttl > 0 {
		err = c.store.SetWithTTL(ctx, key, data, c.ttl)
	} else {
		err = c.store.Set(ctx, key, data)
	}
	if err != nil {
		c.logger.Warn("Failed to cache analysis", zap.String("key", key), zap.Error(err))
	}
}
