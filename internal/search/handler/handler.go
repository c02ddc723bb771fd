package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"caselaw/internal/courts"
	"caselaw/internal/marklogic"
	"caselaw/internal/search"
	"caselaw/internal/xmltools"
	"caselaw/pkg/platform/httputil"
	"caselaw/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the interface for search operations.
type Service interface {
	Search(ctx context.Context, params marklogic.SearchParameters) (*search.SearchResults, error)
	Index(ctx context.Context, page int) (*search.SearchResults, error)
}

// Handler wires search endpoints to the search service.
type Handler struct {
	service Service
	courts  *courts.Registry
	logger  *slog.Logger
}

// New constructs a search handler with its dependencies.
func New(service Service, registry *courts.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		courts:  registry,
		logger:  logger,
	}
}

// Register mounts search endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/judgments", h.HandleIndex)
	r.Get("/judgments/results", h.HandleResults)
	r.Get("/judgments/advanced_search", h.HandleAdvancedSearch)
}

// HandleIndex handles GET /judgments, the paged list of stored judgments.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	params, err := parseIndexRequest(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, httputil.CodeBadRequest, err.Error())
		return
	}
	h.respond(w, r, params, nil, 0, func(ctx context.Context) (*search.SearchResults, error) {
		return h.service.Index(ctx, params.Page)
	})
}

// HandleResults handles GET /judgments/results requests.
func (h *Handler) HandleResults(w http.ResponseWriter, r *http.Request) {
	params, err := parseResultsRequest(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, httputil.CodeBadRequest, err.Error())
		return
	}
	h.search(w, r, params, nil, 0)
}

// HandleAdvancedSearch handles GET /judgments/advanced_search requests.
func (h *Handler) HandleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	params, err := parseAdvancedSearchRequest(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, httputil.CodeBadRequest, err.Error())
		return
	}
	h.search(w, r, params, nil, 0)
}

// HandleBrowse serves GET /{court-param}/{year} for paths naming a known
// court and a year, and passes every other request to next.
func (h *Handler) HandleBrowse(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		court, year, ok := search.MatchBrowsePath(h.courts, r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		h.search(w, r, search.BrowseParameters(court, year), court, year)
	}
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, params marklogic.SearchParameters, court *courts.Court, year int) {
	h.respond(w, r, params, court, year, func(ctx context.Context) (*search.SearchResults, error) {
		return h.service.Search(ctx, params)
	})
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, params marklogic.SearchParameters, court *courts.Court, year int,
	fetch func(context.Context) (*search.SearchResults, error),
) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	results, err := fetch(ctx)
	if err != nil {
		h.writeSearchError(ctx, w, requestID, params, err)
		return
	}

	h.logger.InfoContext(ctx, "search served",
		"request_id", requestID,
		"query", params.Query,
		"page", params.Page,
		"total", results.Total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResults(params, results, court, year))
}

func (h *Handler) writeSearchError(ctx context.Context, w http.ResponseWriter, requestID string, params marklogic.SearchParameters, err error) {
	var (
		missing   *xmltools.MissingMetadataError
		malformed *search.MalformedSearchResponseError
		transport *marklogic.TransportError
	)
	switch {
	case errors.As(err, &missing):
		h.logger.WarnContext(ctx, "search result missing metadata",
			"request_id", requestID,
			"uri", missing.URI,
			"field", missing.Field,
		)
		httputil.WriteError(w, httputil.CodeContentUnavailable, "search results are unavailable")
	case errors.As(err, &malformed), errors.As(err, &transport):
		h.logger.ErrorContext(ctx, "search failed",
			"request_id", requestID,
			"query", params.Query,
			"error", err,
		)
		httputil.WriteError(w, httputil.CodeBadGateway, "document store request failed")
	default:
		h.logger.ErrorContext(ctx, "search failed",
			"request_id", requestID,
			"query", params.Query,
			"error", err,
		)
		httputil.WriteError(w, httputil.CodeInternal, "")
	}
}
