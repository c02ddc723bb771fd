package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"caselaw/internal/documents/metrics"
	"caselaw/internal/marklogic"
	"caselaw/internal/xmltools"
	"caselaw/pkg/platform/sentinel"
)

// NewHandlers wires the four rendition handlers.
func NewHandlers(store Store, assets AssetSource, generator PDFGenerator, logger *slog.Logger, m *metrics.Metrics) map[Format]Handler {
	html := NewHTMLHandler(store)
	generated := NewGeneratedPDFHandler(html, generator)
	return map[Format]Handler{
		FormatXML:          NewXMLHandler(store),
		FormatHTML:         html,
		FormatGeneratedPDF: generated,
		FormatBestPDF:      NewBestPDFHandler(assets, generated, logger, m),
	}
}

// -----------------------------------------------------------------------------
// XML
// -----------------------------------------------------------------------------

// XMLHandler serves the stored XML as a download.
type XMLHandler struct {
	store Store
}

func NewXMLHandler(store Store) *XMLHandler {
	return &XMLHandler{store: store}
}

func (h *XMLHandler) Render(ctx context.Context, uri marklogic.DocumentURI) (*Rendition, error) {
	body, err := h.store.GetDocument(ctx, uri)
	if err != nil {
		return nil, err
	}
	return &Rendition{
		ContentType: "application/xml",
		Filename:    uri.Underscored() + ".xml",
		Body:        body,
	}, nil
}

// -----------------------------------------------------------------------------
// HTML
// -----------------------------------------------------------------------------

// HTMLHandler renders the document as a standalone HTML page. The title is
// required; a document without one fails with *xmltools.MissingMetadataError.
type HTMLHandler struct {
	store  Store
	policy *bluemonday.Policy
}

func NewHTMLHandler(store Store) *HTMLHandler {
	return &HTMLHandler{store: store, policy: newSanitizer()}
}

func (h *HTMLHandler) Render(ctx context.Context, uri marklogic.DocumentURI) (*Rendition, error) {
	doc, err := h.store.GetDocument(ctx, uri)
	if err != nil {
		return nil, err
	}
	root, err := xmltools.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w: %v", uri, sentinel.ErrInvalidState, err)
	}
	title, err := xmltools.GetMetadataNameValue(root, uri.String())
	if err != nil {
		return nil, err
	}
	citation, _ := xmltools.FindNeutralCitation(root)

	body, err := h.store.RenderHTML(ctx, uri)
	if err != nil {
		return nil, err
	}

	out, err := renderPage(h.policy, page{
		Title:    DisplayTitle(title, uri),
		Citation: citation,
		URI:      uri.String(),
	}, body)
	if err != nil {
		return nil, err
	}
	return &Rendition{
		ContentType: "text/html; charset=utf-8",
		Inline:      true,
		Body:        out,
	}, nil
}

// -----------------------------------------------------------------------------
// PDF
// -----------------------------------------------------------------------------

// GeneratedPDFHandler converts the HTML rendition with the PDF service.
type GeneratedPDFHandler struct {
	html      Handler
	generator PDFGenerator
}

func NewGeneratedPDFHandler(html Handler, generator PDFGenerator) *GeneratedPDFHandler {
	return &GeneratedPDFHandler{html: html, generator: generator}
}

func (h *GeneratedPDFHandler) Render(ctx context.Context, uri marklogic.DocumentURI) (*Rendition, error) {
	rendered, err := h.html.Render(ctx, uri)
	if err != nil {
		return nil, err
	}
	pdf, err := h.generator.GeneratePDF(ctx, rendered.Body)
	if err != nil {
		return nil, fmt.Errorf("generate pdf for %s: %w", uri, err)
	}
	pages, err := ValidatePDF(pdf)
	if err != nil {
		return nil, fmt.Errorf("generated pdf for %s: %w", uri, err)
	}
	return &Rendition{
		ContentType: "application/pdf",
		Filename:    uri.Underscored() + ".pdf",
		Inline:      true,
		Body:        pdf,
		PageCount:   pages,
	}, nil
}

// BestPDFHandler serves the published PDF and falls back to generation when
// the asset is missing or unreadable. Other asset failures are returned.
type BestPDFHandler struct {
	assets   AssetSource
	fallback Handler
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewBestPDFHandler(assets AssetSource, fallback Handler, logger *slog.Logger, m *metrics.Metrics) *BestPDFHandler {
	return &BestPDFHandler{assets: assets, fallback: fallback, logger: logger, metrics: m}
}

func (h *BestPDFHandler) Render(ctx context.Context, uri marklogic.DocumentURI) (*Rendition, error) {
	pdf, err := h.assets.FetchPDF(ctx, uri)
	if errors.Is(err, sentinel.ErrNotFound) {
		h.metrics.IncrementPDFFallback("missing")
		return h.fallback.Render(ctx, uri)
	}
	if err != nil {
		return nil, err
	}

	pages, err := ValidatePDF(pdf)
	if err != nil {
		h.logger.WarnContext(ctx, "published pdf failed validation",
			"uri", uri.String(),
			"error", err,
		)
		h.metrics.IncrementPDFFallback("invalid")
		return h.fallback.Render(ctx, uri)
	}

	return &Rendition{
		ContentType: "application/pdf",
		Filename:    uri.Underscored() + ".pdf",
		Inline:      true,
		Body:        pdf,
		PageCount:   pages,
	}, nil
}
