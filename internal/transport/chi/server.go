package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/domain"
	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/calculator"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
	"github.com/kailas-cloud/kabunote/internal/domain/search/request"
	"github.com/kailas-cloud/kabunote/internal/repository/analysiscache"
	"github.com/kailas-cloud/kabunote/internal/usecase/classify"
	healthuc "github.com/kailas-cloud/kabunote/internal/usecase/health"
	notebookuc "github.com/kailas-cloud/kabunote/internal/usecase/notebook"
	searchuc "github.com/kailas-cloud/kabunote/internal/usecase/search"
)

const maxBodyBytes = 1 << 20

// Limits bounds the result counts callers may request.
type Limits struct {
	Default        int
	Max            int
	RelatedDefault int
	RelatedMax     int
}

// DefaultLimits mirrors the search request defaults.
func DefaultLimits() Limits {
	return Limits{
		Default:        request.DefaultLimit,
		Max:            request.MaxLimit,
		RelatedDefault: request.DefaultRelatedLimit,
		RelatedMax:     request.MaxRelatedLimit,
	}
}

// snapshotReader loads the stored analysis of a notebook.
type snapshotReader interface {
	Get(ctx context.Context, notebookID string) (analysis.Snapshot, error)
}

// Server serves the JSON API on a chi router.
type Server struct {
	notebooks     *notebookuc.Service
	search        *searchuc.Service
	classifier    *classify.Classifier
	analyzer      *analysiscache.CachedAnalyzer
	health        *healthuc.Service
	snapshots     snapshotReader
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	notebooks *notebookuc.Service,
	search *searchuc.Service,
	classifier *classify.Classifier,
	analyzer *analysiscache.CachedAnalyzer,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		notebooks:     notebooks,
		search:        search,
		classifier:    classifier,
		analyzer:      analyzer,
		health:        health,
		limits:        DefaultLimits(),
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// WithSnapshots enables GET /owners/{owner}/notebooks/{id}/analysis.
func (s *Server) WithSnapshots(r snapshotReader) *Server {
	s.snapshots = r
	return s
}

// WithLimits overrides the default and maximum result counts.
func (s *Server) WithLimits(l Limits) *Server {
	s.limits = l
	return s
}

// Routes registers every API route on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Post("/analyze", s.Analyze)
	r.Post("/classify", s.Classify)
	r.Post("/calculate", s.Calculate)

	r.Route("/owners/{owner}", func(r gochi.Router) {
		r.Get("/search", s.SearchNotebooks)
		r.Get("/stats", s.Stats)
		r.Route("/notebooks", func(r gochi.Router) {
			r.Post("/", s.CreateNotebook)
			r.Get("/", s.ListNotebooks)
			r.Route("/{id}", func(r gochi.Router) {
				r.Get("/", s.GetNotebook)
				r.Delete("/", s.DeleteNotebook)
				r.Post("/entries", s.AddEntry)
				r.Get("/related", s.RelatedNotebooks)
				r.Get("/analysis", s.GetAnalysis)
			})
		})
	})
}

// Analyze handles POST /analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "content is required")
		return
	}
	res := s.analyzer.Analyze(r.Context(), req.Content, req.Title)
	writeJSON(w, http.StatusOK, analyzeResponse{Analysis: res})
}

// Classify handles POST /classify.
func (s *Server) Classify(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "content is required")
		return
	}
	// The cached analysis feeds the classifier so both endpoints share one cache entry.
	res := s.analyzer.Analyze(r.Context(), req.Content, req.Title)
	writeJSON(w, http.StatusOK, s.classifier.Classify(req.Content, req.Title, res))
}

// Calculate handles POST /calculate.
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !req.Type.IsValid() {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "unknown calculation type: "+string(req.Type))
		return
	}

	var (
		out any
		err error
	)
	switch req.Type {
	case calculator.KindDividendYield:
		var res calculator.DividendYieldResult
		if res, err = calculator.DividendYield(req.AnnualDividend, req.StockPrice); err == nil {
			out = dividendYieldToResponse(&res)
		}
	case calculator.KindInvestmentAmount:
		var res calculator.InvestmentAmountResult
		if res, err = calculator.InvestmentAmount(req.StockPrice, req.TargetShares); err == nil {
			out = investmentAmountToResponse(&res)
		}
	case calculator.KindTargetAchievement:
		var res calculator.TargetAchievementResult
		if res, err = calculator.TargetAchievement(req.CurrentPrice, req.TargetPrice); err == nil {
			out = targetAchievementToResponse(&res)
		}
	case calculator.KindPortfolioWeight:
		var res calculator.PortfolioWeightResult
		if res, err = calculator.PortfolioWeight(req.InvestmentAmount, req.TotalPortfolio); err == nil {
			out = portfolioWeightToResponse(&res)
		}
	case calculator.KindCompoundGrowth:
		var res calculator.CompoundGrowthResult
		if res, err = calculator.CompoundGrowth(req.Principal, req.AnnualRate, req.Years); err == nil {
			out = compoundGrowthToResponse(&res)
		}
	}
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calculateResponse{Type: req.Type, Result: out})
}

// SearchNotebooks handles GET /owners/{owner}/search.
func (s *Server) SearchNotebooks(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	limit, ok := s.bindLimit(w, r, s.limits.Default, s.limits.Max)
	if !ok {
		return
	}

	req, err := request.New(q, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	hits, err := s.search.Search(r.Context(), ownerParam(r), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]hitResponse, len(hits))
	for i := range hits {
		items[i] = hitToResponse(&hits[i])
	}
	writeJSON(w, http.StatusOK, resultsResponse[hitResponse]{Results: items})
}

// RelatedNotebooks handles GET /owners/{owner}/notebooks/{id}/related.
func (s *Server) RelatedNotebooks(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.bindLimit(w, r, s.limits.RelatedDefault, s.limits.RelatedMax)
	if !ok {
		return
	}

	related, err := s.search.Related(r.Context(), ownerParam(r), gochi.URLParam(r, "id"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]relatedResponse, len(related))
	for i := range related {
		items[i] = relatedToResponse(&related[i])
	}
	writeJSON(w, http.StatusOK, resultsResponse[relatedResponse]{Results: items})
}

// CreateNotebook handles POST /owners/{owner}/notebooks.
func (s *Server) CreateNotebook(w http.ResponseWriter, r *http.Request) {
	var req createNotebookRequest
	if !s.decode(w, r, &req) {
		return
	}

	nb, err := s.notebooks.Create(r.Context(), ownerParam(r), req.attrs())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, notebookToResponse(&nb, false))
}

// ListNotebooks handles GET /owners/{owner}/notebooks.
func (s *Server) ListNotebooks(w http.ResponseWriter, r *http.Request) {
	list, err := s.notebooks.List(r.Context(), ownerParam(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]notebookResponse, len(list))
	for i := range list {
		items[i] = notebookToResponse(&list[i], false)
	}
	writeJSON(w, http.StatusOK, notebookListResponse{Items: items, Total: len(items)})
}

// GetNotebook handles GET /owners/{owner}/notebooks/{id}.
func (s *Server) GetNotebook(w http.ResponseWriter, r *http.Request) {
	nb, err := s.notebooks.Get(r.Context(), ownerParam(r), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notebookToResponse(&nb, true))
}

// DeleteNotebook handles DELETE /owners/{owner}/notebooks/{id}.
func (s *Server) DeleteNotebook(w http.ResponseWriter, r *http.Request) {
	if err := s.notebooks.Delete(r.Context(), ownerParam(r), gochi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddEntry handles POST /owners/{owner}/notebooks/{id}/entries.
func (s *Server) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if !s.decode(w, r, &req) {
		return
	}

	entry, err := s.notebooks.AddEntry(r.Context(), ownerParam(r), gochi.URLParam(r, "id"), notebookuc.EntryInput{
		Type:    domnb.EntryType(req.Type),
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, entryToResponse(&entry))
}

// GetAnalysis handles GET /owners/{owner}/notebooks/{id}/analysis.
func (s *Server) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		s.handleDomainError(w, r, domain.ErrNotImplemented)
		return
	}

	// Ownership check first: snapshots are keyed by notebook ID only.
	nb, err := s.notebooks.Get(r.Context(), ownerParam(r), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	snap, err := s.snapshots.Get(r.Context(), nb.ID())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Stats handles GET /owners/{owner}/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.notebooks.Stats(r.Context(), ownerParam(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: report.Status,
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// bindLimit reads the optional limit query parameter, falling back to def and capping at max.
func (s *Server) bindLimit(w http.ResponseWriter, r *http.Request, def, maxLimit int) (int, bool) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return 0, false
	}
	switch {
	case limit == nil || *limit <= 0:
		return def, true
	case *limit > maxLimit:
		return maxLimit, true
	default:
		return *limit, true
	}
}

func ownerParam(r *http.Request) string {
	return gochi.URLParam(r, "owner")
}
