package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"caselaw/internal/documents"
	"caselaw/internal/marklogic"
	"caselaw/internal/xmltools"
	"caselaw/pkg/platform/httputil"
	"caselaw/pkg/platform/sentinel"
	"caselaw/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Resolver

// Resolver defines the interface for document resolution.
type Resolver interface {
	Resolve(ctx context.Context, identifier, extension string) (*documents.Rendition, error)
}

// Handler serves document renditions over HTTP.
type Handler struct {
	resolver Resolver
	logger   *slog.Logger
}

// New constructs a document handler with its dependencies.
func New(resolver Resolver, logger *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// ServeHTTP handles GET /{identifier...}[/{file}] requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	identifier, extension := documents.SplitDocumentPath(r.URL.Path)
	if identifier == "" {
		httputil.WriteError(w, httputil.CodeNotFound, "no document identifier")
		return
	}

	rendition, err := h.resolver.Resolve(ctx, identifier, extension)
	if err != nil {
		h.writeResolveError(ctx, w, requestID, identifier, err)
		return
	}

	h.logger.InfoContext(ctx, "document served",
		"request_id", requestID,
		"uri", identifier,
		"extension", extension,
		"bytes", len(rendition.Body),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeRendition(w, rendition)
}

func writeRendition(w http.ResponseWriter, rendition *documents.Rendition) {
	w.Header().Set("Content-Type", rendition.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(rendition.Body)))
	if rendition.Filename != "" {
		disposition := "attachment"
		if rendition.Inline {
			disposition = "inline"
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, rendition.Filename))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendition.Body)
}

func (h *Handler) writeResolveError(ctx context.Context, w http.ResponseWriter, requestID, identifier string, err error) {
	var (
		notFound  *documents.DocumentNotFoundError
		missing   *xmltools.MissingMetadataError
		transport *marklogic.TransportError
	)
	switch {
	case errors.As(err, &notFound):
		h.logger.InfoContext(ctx, "document not found",
			"request_id", requestID,
			"uri", identifier,
		)
		httputil.WriteError(w, httputil.CodeNotFound, "document not found")
	case errors.As(err, &missing):
		h.logger.WarnContext(ctx, "document missing metadata",
			"request_id", requestID,
			"uri", identifier,
			"field", missing.Field,
		)
		httputil.WriteError(w, httputil.CodeContentUnavailable, "document content is unavailable")
	case errors.As(err, &transport),
		errors.Is(err, sentinel.ErrUnavailable),
		errors.Is(err, documents.ErrInvalidPDF),
		errors.Is(err, documents.ErrPDFServiceNotConfigured):
		h.logger.ErrorContext(ctx, "document rendition failed",
			"request_id", requestID,
			"uri", identifier,
			"error", err,
		)
		httputil.WriteError(w, httputil.CodeBadGateway, "upstream request failed")
	default:
		h.logger.ErrorContext(ctx, "document rendition failed",
			"request_id", requestID,
			"uri", identifier,
			"error", err,
		)
		httputil.WriteError(w, httputil.CodeInternal, "")
	}
}
