package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/config"
	dbRedis "github.com/kailas-cloud/kabunote/internal/db/redis"
	"github.com/kailas-cloud/kabunote/internal/metrics"
	"github.com/kailas-cloud/kabunote/internal/repository/analysiscache"
	notebookrepo "github.com/kailas-cloud/kabunote/internal/repository/notebook"
	chiTransport "github.com/kailas-cloud/kabunote/internal/transport/chi"
	analyzeruc "github.com/kailas-cloud/kabunote/internal/usecase/analyzer"
	"github.com/kailas-cloud/kabunote/internal/usecase/classify"
	healthuc "github.com/kailas-cloud/kabunote/internal/usecase/health"
	notebookuc "github.com/kailas-cloud/kabunote/internal/usecase/notebook"
	searchuc "github.com/kailas-cloud/kabunote/internal/usecase/search"
)

// newHandler assembles services over store and mounts them on a router.
func newHandler(cfg config.Config, store *dbRedis.Store, logger *zap.Logger) http.Handler {
	an := analyzeruc.New(logger)

	// A nil *dbRedis.Store in an interface is not nil; pass a literal nil.
	var cached *analysiscache.CachedAnalyzer
	if cfg.Analysis.CacheOn() {
		cached = analysiscache.New(an, store, cfg.Analysis.CacheTTL(), metrics.AnalysisCacheTotal, logger)
	} else {
		cached = analysiscache.New(an, nil, 0, nil, logger)
	}
	cached.WithSentimentCounter(metrics.AnalysesTotal)
	logger.Info("Analyzer ready",
		zap.Bool("cache_enabled", cfg.Analysis.CacheOn()),
		zap.Duration("cache_ttl", cfg.Analysis.CacheTTL()),
	)

	notebooks := notebookrepo.New(store)
	snapshots := analysiscache.NewSnapshots(store)

	server := chiTransport.NewServer(
		notebookuc.New(notebooks).WithSnapshots(snapshots),
		searchuc.New(searchuc.NewEngine(an), notebooks).WithResultsHistogram(metrics.SearchResults),
		classify.New(an),
		cached,
		healthuc.New(store, an).WithTimeout(cfg.Database.DialTimeout()),
		logger,
	).WithSnapshots(snapshots).WithLimits(chiTransport.Limits{
		Default:        cfg.Search.DefaultLimit,
		Max:            cfg.Search.MaxLimit,
		RelatedDefault: cfg.Search.DefaultRelatedLimit,
		RelatedMax:     cfg.Search.MaxRelatedLimit,
	})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)
	return r
}
