package search

import (
	"context"
	"log/slog"
	"time"

	"caselaw/internal/marklogic"
	"caselaw/internal/search/metrics"
	"caselaw/pkg/requestcontext"
)

// Backend runs searches against the document store.
type Backend interface {
	Search(ctx context.Context, params marklogic.SearchParameters) ([]byte, error)
	JudgmentsIndex(ctx context.Context, page int) ([]byte, error)
}

// Service runs a search and builds its results.
type Service struct {
	backend Backend
	builder *Builder
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService creates a search service.
func NewService(backend Backend, builder *Builder, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		backend: backend,
		builder: builder,
		logger:  logger,
		metrics: m,
	}
}

// Search runs params against the store. Parameters are passed through as
// given; query preprocessing belongs to the caller.
func (s *Service) Search(ctx context.Context, params marklogic.SearchParameters) (*SearchResults, error) {
	start := time.Now()

	results, err := s.search(ctx, params)
	if err != nil {
		s.metrics.ObserveSearch("error", 0, time.Since(start))
		return nil, err
	}
	s.metrics.ObserveSearch("ok", len(results.Results), time.Since(start))

	s.logger.DebugContext(ctx, "search completed",
		"request_id", requestcontext.RequestID(ctx),
		"query", params.Query,
		"page", params.Page,
		"total", results.Total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}

// Index returns one page of the judgments index, most recent first as the
// store orders it. page is 1-based.
func (s *Service) Index(ctx context.Context, page int) (*SearchResults, error) {
	start := time.Now()

	results, err := s.index(ctx, page)
	if err != nil {
		s.metrics.ObserveSearch("error", 0, time.Since(start))
		return nil, err
	}
	s.metrics.ObserveSearch("ok", len(results.Results), time.Since(start))

	s.logger.DebugContext(ctx, "judgments index served",
		"request_id", requestcontext.RequestID(ctx),
		"page", page,
		"total", results.Total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}

func (s *Service) search(ctx context.Context, params marklogic.SearchParameters) (*SearchResults, error) {
	data, err := s.backend.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.builder.Parse(ctx, data)
}

func (s *Service) index(ctx context.Context, page int) (*SearchResults, error) {
	data, err := s.backend.JudgmentsIndex(ctx, page)
	if err != nil {
		return nil, err
	}
	return s.builder.Parse(ctx, data)
}
