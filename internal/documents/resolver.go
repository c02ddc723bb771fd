// Package documents resolves a document identifier and a requested file
// extension to exactly one rendition of the document: the best available PDF,
// a freshly generated PDF, the raw XML or rendered HTML.
package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"caselaw/internal/documents/metrics"
	"caselaw/internal/marklogic"
	"caselaw/pkg/platform/sentinel"
	"caselaw/pkg/requestcontext"
)

//go:generate mockgen -source=resolver.go -destination=mocks/mocks.go -package=mocks Handler,Store

// Format names one of the rendition handlers.
type Format string

const (
	FormatBestPDF      Format = "best-pdf"
	FormatGeneratedPDF Format = "generated-pdf"
	FormatXML          Format = "xml"
	FormatHTML         Format = "html"
)

// generatedPDFExtension is a dispatch key in its own right, not "pdf" with a
// qualifier.
const generatedPDFExtension = "generated.pdf"

var dispatch = map[string]Format{
	"pdf":                 FormatBestPDF,
	generatedPDFExtension: FormatGeneratedPDF,
	"xml":                 FormatXML,
	"html":                FormatHTML,
	"":                    FormatHTML,
}

// HandlerFor maps a requested extension to its handler. Unknown extensions
// are served as HTML.
func HandlerFor(extension string) Format {
	if format, ok := dispatch[extension]; ok {
		return format
	}
	return FormatHTML
}

// ExtensionFromFilename returns the dispatch key for a requested file name:
// "generated.pdf" as a whole, otherwise the extension without its dot.
func ExtensionFromFilename(filename string) string {
	if filename == generatedPDFExtension {
		return generatedPDFExtension
	}
	return strings.TrimPrefix(path.Ext(filename), ".")
}

// Rendition is the output of a handler.
type Rendition struct {
	ContentType string
	Filename    string
	Inline      bool
	Body        []byte
	// PageCount is set for PDF renditions.
	PageCount int
}

// Handler produces one rendition of an existing document.
type Handler interface {
	Render(ctx context.Context, uri marklogic.DocumentURI) (*Rendition, error)
}

// Store is the part of the document store the resolver and its handlers use.
type Store interface {
	DocumentExists(ctx context.Context, uri marklogic.DocumentURI) (bool, error)
	GetDocument(ctx context.Context, uri marklogic.DocumentURI) ([]byte, error)
	RenderHTML(ctx context.Context, uri marklogic.DocumentURI) ([]byte, error)
}

// Resolver checks a document exists and dispatches to one handler. It holds
// no mutable state and is safe for concurrent use.
type Resolver struct {
	store    Store
	handlers map[Format]Handler
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewResolver builds a resolver. handlers must cover every Format.
func NewResolver(store Store, handlers map[Format]Handler, logger *slog.Logger, m *metrics.Metrics) (*Resolver, error) {
	for _, format := range []Format{FormatBestPDF, FormatGeneratedPDF, FormatXML, FormatHTML} {
		if handlers[format] == nil {
			return nil, fmt.Errorf("no handler for format %s", format)
		}
	}
	return &Resolver{
		store:    store,
		handlers: handlers,
		logger:   logger,
		metrics:  m,
	}, nil
}

// Resolve serves identifier in the format chosen by extension.
//
// A document the store does not have fails with *DocumentNotFoundError
// before any handler runs. Transport errors are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, identifier, extension string) (*Rendition, error) {
	start := time.Now()
	uri := marklogic.ParseDocumentURI(identifier)
	format := HandlerFor(extension)

	exists, err := r.store.DocumentExists(ctx, uri)
	if err != nil {
		r.metrics.ObserveRendition(string(format), "error", time.Since(start))
		return nil, err
	}
	if !exists {
		r.metrics.ObserveRendition(string(format), "not_found", time.Since(start))
		return nil, &DocumentNotFoundError{URI: uri}
	}

	rendition, err := r.handlers[format].Render(ctx, uri)
	if errors.Is(err, sentinel.ErrNotFound) {
		r.metrics.ObserveRendition(string(format), "not_found", time.Since(start))
		return nil, &DocumentNotFoundError{URI: uri}
	}
	if err != nil {
		r.metrics.ObserveRendition(string(format), "error", time.Since(start))
		return nil, err
	}

	r.metrics.ObserveRendition(string(format), "ok", time.Since(start))
	r.logger.DebugContext(ctx, "document resolved",
		"request_id", requestcontext.RequestID(ctx),
		"uri", uri.String(),
		"format", string(format),
		"bytes", len(rendition.Body),
	)
	return rendition, nil
}

// SplitDocumentPath splits a request path into an identifier and an
// extension. "ewca/civ/2004/632/data.pdf" and the legacy
// "ewca/civ/2004/632.pdf" both give ("ewca/civ/2004/632", "pdf");
// "ewca/civ/2004/632/generated.pdf" gives "generated.pdf".
// A path holding any of ?, # or & names no document and gives ("", "").
func SplitDocumentPath(p string) (string, string) {
	if strings.ContainsAny(p, "?#&") {
		return "", ""
	}
	p = strings.Trim(p, "/")
	dir, file := path.Split(p)
	switch {
	case file == generatedPDFExtension || strings.HasPrefix(file, "data."):
		return strings.TrimSuffix(dir, "/"), ExtensionFromFilename(file)
	case path.Ext(file) != "" && marklogic.ParseDocumentURI(p).String() != p:
		return marklogic.ParseDocumentURI(p).String(), ExtensionFromFilename(file)
	default:
		return p, ""
	}
}
