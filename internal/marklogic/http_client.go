package marklogic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"caselaw/internal/platform/config"
	"caselaw/internal/xmltools"
	"caselaw/pkg/platform/sentinel"
	"caselaw/pkg/requestcontext"
)

const (
	documentsPath = "LATEST/documents"
	invokePath    = "LATEST/invoke"
	searchPath    = "LATEST/search/"
	searchModule  = "/judgments/search/search.xqy"
	htmlTransform = "accessible-html"

	// IndexPageLength is the number of judgments per index page.
	IndexPageLength = 10

	maxResponseBytes = 64 << 20
)

var tracer = otel.Tracer("caselaw/internal/marklogic")

// HTTPClient talks to the MarkLogic REST API with basic authentication.
type HTTPClient struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
	breaker    *circuitBreaker
	logger     *slog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithCircuitBreaker overrides the outage threshold and cooldown.
func WithCircuitBreaker(failureThreshold int, cooldown time.Duration) Option {
	return func(c *HTTPClient) {
		c.breaker = newCircuitBreaker(failureThreshold, cooldown)
	}
}

// NewHTTPClient builds a client for the store described by cfg.
func NewHTTPClient(cfg config.MarkLogic, logger *slog.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    fmt.Sprintf("%s://%s/", cfg.Scheme(), strings.TrimSuffix(cfg.Host, "/")),
		user:       cfg.User,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    newCircuitBreaker(5, 10*time.Second),
		logger:     logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// GetDocument fetches the document XML.
func (c *HTTPClient) GetDocument(ctx context.Context, uri DocumentURI) ([]byte, error) {
	resp, err := c.send(ctx, request{
		op:     "get_document",
		method: http.MethodGet,
		path:   documentsPath + "/",
		query:  documentQuery(uri),
		accept: "text/xml",
	})
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// PutDocument stores xml at the document's store path.
func (c *HTTPClient) PutDocument(ctx context.Context, uri DocumentURI, xml []byte) error {
	_, err := c.send(ctx, request{
		op:          "put_document",
		method:      http.MethodPut,
		path:        documentsPath,
		query:       documentQuery(uri),
		accept:      "text/xml",
		contentType: "application/xml",
		body:        xml,
	})
	return err
}

// DocumentExists issues a HEAD for the document.
func (c *HTTPClient) DocumentExists(ctx context.Context, uri DocumentURI) (bool, error) {
	_, err := c.send(ctx, request{
		op:     "document_exists",
		method: http.MethodHead,
		path:   documentsPath + "/",
		query:  documentQuery(uri),
		accept: "text/xml",
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetLastModified reads prop:last-modified from the properties document.
func (c *HTTPClient) GetLastModified(ctx context.Context, uri DocumentURI) (string, error) {
	return c.property(ctx, "get_last_modified", uri, "last-modified")
}

// GetProperty reads a named property from the properties document.
func (c *HTTPClient) GetProperty(ctx context.Context, uri DocumentURI, name string) (string, error) {
	return c.property(ctx, "get_property", uri, name)
}

func (c *HTTPClient) property(ctx context.Context, op string, uri DocumentURI, name string) (string, error) {
	resp, err := c.send(ctx, request{
		op:     op,
		method: http.MethodGet,
		path:   documentsPath + "/",
		query:  documentQuery(uri, "category", "properties", "format", "xml"),
		accept: "text/xml",
	})
	if err != nil {
		return "", err
	}
	root, err := xmltools.Parse(resp.body)
	if err != nil {
		return "", &TransportError{
			Category:   ErrorBadData,
			Operation:  op,
			StatusCode: resp.status,
			Message:    "unreadable properties document",
			Underlying: err,
		}
	}
	value, _ := xmltools.GetPropertyValue(root, name)
	return value, nil
}

// RenderHTML asks the store to transform the document into HTML.
func (c *HTTPClient) RenderHTML(ctx context.Context, uri DocumentURI) ([]byte, error) {
	resp, err := c.send(ctx, request{
		op:     "render_html",
		method: http.MethodGet,
		path:   documentsPath + "/",
		query:  documentQuery(uri, "transform", htmlTransform),
		accept: "text/html",
	})
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// Search invokes the search module. MarkLogic answers invoke calls with
// multipart/mixed; the first part is the search:response document.
func (c *HTTPClient) Search(ctx context.Context, params SearchParameters) ([]byte, error) {
	vars, err := json.Marshal(params.Vars())
	if err != nil {
		return nil, NewTransportError(ErrorInternal, "search", "encode search vars", err)
	}
	form := url.Values{
		"module": {searchModule},
		"vars":   {string(vars)},
	}

	resp, err := c.send(ctx, request{
		op:          "search",
		method:      http.MethodPost,
		path:        invokePath,
		accept:      "multipart/mixed",
		contentType: "application/x-www-form-urlencoded",
		body:        []byte(form.Encode()),
	})
	if err != nil {
		return nil, err
	}

	body, err := firstPart(resp.header.Get("Content-Type"), resp.body)
	if err != nil {
		return nil, &TransportError{
			Category:   ErrorBadData,
			Operation:  "search",
			StatusCode: resp.status,
			Message:    "unreadable multipart response",
			Underlying: err,
		}
	}
	return body, nil
}

// JudgmentsIndex lists stored judgments one page at a time through the
// search endpoint. page is 1-based.
func (c *HTTPClient) JudgmentsIndex(ctx context.Context, page int) ([]byte, error) {
	start := (max(page, 1)-1)*IndexPageLength + 1
	resp, err := c.send(ctx, request{
		op:     "judgments_index",
		method: http.MethodGet,
		path:   searchPath,
		query: url.Values{
			"view":       {"results"},
			"start":      {strconv.Itoa(start)},
			"pageLength": {strconv.Itoa(IndexPageLength)},
		},
		accept: "multipart/mixed",
	})
	if err != nil {
		return nil, err
	}

	body, err := firstPart(resp.header.Get("Content-Type"), resp.body)
	if err != nil {
		return nil, &TransportError{
			Category:   ErrorBadData,
			Operation:  "judgments_index",
			StatusCode: resp.status,
			Message:    "unreadable multipart response",
			Underlying: err,
		}
	}
	return body, nil
}

// documentQuery addresses uri on the documents endpoint. extra holds
// key/value pairs. Values are encoded, so an identifier cannot add parameters.
func documentQuery(uri DocumentURI, extra ...string) url.Values {
	q := url.Values{"uri": {uri.StorePath()}}
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	return q
}

// -----------------------------------------------------------------------------
// Transport
// -----------------------------------------------------------------------------

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	accept      string
	contentType string
	body        []byte
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *HTTPClient) send(ctx context.Context, req request) (_ *response, err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "marklogic."+req.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.method),
			attribute.String("marklogic.path", req.path),
		),
	)
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(GetCategory(err))
			if errors.Is(err, sentinel.ErrNotFound) {
				outcome = "not_found"
			} else {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
		}
		requestDuration.WithLabelValues(req.op, outcome).Observe(time.Since(start).Seconds())
		span.End()
	}()

	if !c.breaker.Allow() {
		return nil, NewTransportError(ErrorProviderOutage, req.op, "document store marked unavailable", ErrCircuitOpen)
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, NewTransportError(ErrorInternal, req.op, "build request", err)
	}
	httpReq.SetBasicAuth(c.user, c.password)
	if req.accept != "" {
		httpReq.Header.Set("Accept", req.accept)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-type", req.contentType)
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportFailure(ctx, req.op, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.transportFailure(ctx, req.op, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", httpResp.StatusCode))

	resp := &response{status: httpResp.StatusCode, header: httpResp.Header, body: data}
	if err := c.checkStatus(req.op, req.path, resp); err != nil {
		return nil, err
	}
	c.breaker.RecordSuccess()
	return resp, nil
}

func (c *HTTPClient) checkStatus(op, path string, resp *response) error {
	switch {
	case resp.status >= 200 && resp.status < 300:
		return nil
	case resp.status == http.StatusNotFound:
		c.breaker.RecordSuccess()
		return fmt.Errorf("marklogic %s %s: %w", op, path, sentinel.ErrNotFound)
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		c.breaker.RecordSuccess()
		return &TransportError{
			Category:   ErrorAuthentication,
			Operation:  op,
			StatusCode: resp.status,
			Message:    "credentials rejected",
		}
	case resp.status >= 500:
		c.breaker.RecordFailure()
		return &TransportError{
			Category:   ErrorProviderOutage,
			Operation:  op,
			StatusCode: resp.status,
			Message:    "document store error",
			Underlying: sentinel.ErrUnavailable,
			Retryable:  true,
		}
	default:
		c.breaker.RecordSuccess()
		return &TransportError{
			Category:   ErrorBadStatus,
			Operation:  op,
			StatusCode: resp.status,
			Message:    "unexpected status",
		}
	}
}

func (c *HTTPClient) transportFailure(ctx context.Context, op string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return NewTransportError(ErrorInternal, op, "request cancelled", err)
	case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()):
		c.breaker.RecordFailure()
		return NewTransportError(ErrorTimeout, op, "request timed out", err)
	default:
		c.breaker.RecordFailure()
		c.logger.WarnContext(ctx, "document store unreachable",
			"operation", op,
			"error", err,
		)
		return NewTransportError(ErrorProviderOutage, op, "request failed", err)
	}
}

func firstPart(contentType string, body []byte) ([]byte, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return body, nil
	}
	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	part, err := mr.NextPart()
	if err != nil {
		return nil, fmt.Errorf("read first part: %w", err)
	}
	defer part.Close()
	return io.ReadAll(part)
}
