package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"caselaw/internal/marklogic"
	"caselaw/internal/platform/config"
	"caselaw/pkg/platform/sentinel"
	"caselaw/pkg/requestcontext"
)

const maxPDFBytes = 128 << 20

var tracer = otel.Tracer("caselaw/internal/documents")

//go:generate mockgen -source=assets.go -destination=mocks/assets-mocks.go -package=mocks AssetSource,PDFGenerator

// AssetSource fetches published PDFs.
type AssetSource interface {
	FetchPDF(ctx context.Context, uri marklogic.DocumentURI) ([]byte, error)
}

// PDFGenerator converts an HTML page into a PDF.
type PDFGenerator interface {
	GeneratePDF(ctx context.Context, html []byte) ([]byte, error)
}

// AssetClient reads published PDFs from the assets bucket and posts HTML to
// the PDF generation service.
type AssetClient struct {
	baseURL       string
	pdfServiceURL string
	httpClient    *http.Client
}

// NewAssetClient creates an asset client from cfg.
func NewAssetClient(cfg config.Assets) *AssetClient {
	return &AssetClient{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		pdfServiceURL: cfg.PDFServiceURL,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchPDF fetches <base>/<identifier>/<identifier_with_underscores>.pdf.
// Missing assets wrap sentinel.ErrNotFound; with no base URL every asset is missing.
func (c *AssetClient) FetchPDF(ctx context.Context, uri marklogic.DocumentURI) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("asset %s: %w", uri, sentinel.ErrNotFound)
	}
	url := fmt.Sprintf("%s/%s/%s.pdf", c.baseURL, uri, uri.Underscored())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build asset request: %w", err)
	}
	// The bucket answers 403 for keys that do not exist.
	return c.do(ctx, "assets.fetch_pdf", req, http.StatusNotFound, http.StatusForbidden)
}

// GeneratePDF posts a rendered HTML page to the PDF service. Any non-2xx
// answer wraps sentinel.ErrUnavailable.
func (c *AssetClient) GeneratePDF(ctx context.Context, html []byte) ([]byte, error) {
	if c.pdfServiceURL == "" {
		return nil, ErrPDFServiceNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pdfServiceURL, bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("build pdf service request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	return c.do(ctx, "assets.generate_pdf", req)
}

// do sends req. Statuses listed in missing wrap sentinel.ErrNotFound; any
// other non-2xx status wraps sentinel.ErrUnavailable.
func (c *AssetClient) do(ctx context.Context, op string, req *http.Request, missing ...int) (_ []byte, err error) {
	ctx, span := tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.URL.Path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/pdf")
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case slices.Contains(missing, resp.StatusCode):
		return nil, fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, sentinel.ErrUnavailable)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w: %v", op, sentinel.ErrUnavailable, err)
	}
	return data, nil
}
