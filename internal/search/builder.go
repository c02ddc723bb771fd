package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/beevik/etree"

	"caselaw/internal/courts"
	"caselaw/internal/marklogic"
	"caselaw/internal/search/metrics"
	"caselaw/internal/xmltools"
)

// MetadataSource supplies the result fields that live in the document store
// rather than in the search response.
type MetadataSource interface {
	GetLastModified(ctx context.Context, uri marklogic.DocumentURI) (string, error)
	GetProperty(ctx context.Context, uri marklogic.DocumentURI, name string) (string, error)
}

// Builder builds SearchResults. It holds no mutable state and is safe for
// concurrent use.
type Builder struct {
	source      MetadataSource
	courts      *courts.Registry
	logger      *slog.Logger
	metrics     *metrics.Metrics
	concurrency int
}

// Option configures a Builder.
type Option func(*Builder)

// WithCourts replaces the embedded court registry.
func WithCourts(registry *courts.Registry) Option {
	return func(b *Builder) {
		b.courts = registry
	}
}

// WithMetrics records date parse failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}

// WithConcurrency bounds how many hits of one response are built at once.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		b.concurrency = max(n, 1)
	}
}

// NewBuilder creates a Builder reading store-held fields from source.
func NewBuilder(source MetadataSource, logger *slog.Logger, opts ...Option) *Builder {
	b := &Builder{
		source:      source,
		courts:      courts.Default(),
		logger:      logger,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build reads one search:result hit.
//
// Missing optional fields become nil. A missing uri or name fails with
// *xmltools.MissingMetadataError. Errors from the metadata source are
// returned unchanged.
func (b *Builder) Build(ctx context.Context, hit *etree.Element) (*SearchResult, error) {
	rawURI, ok := xmltools.Attr(hit, "uri")
	if !ok {
		return nil, &xmltools.MissingMetadataError{Field: "uri"}
	}
	uri := marklogic.ParseDocumentURI(rawURI)
	extracted := xmltools.FindChild(hit, xmltools.NamespaceSearch, "extracted")

	name, err := resultName(extracted, uri)
	if err != nil {
		return nil, err
	}

	lastModified, err := b.source.GetLastModified(ctx, uri)
	if err != nil {
		return nil, err
	}
	author, err := b.source.GetProperty(ctx, uri, "author")
	if err != nil {
		return nil, err
	}

	matches := xmltools.GetSearchMatches(hit)
	if matches == nil {
		matches = []string{}
	}

	decisionDate, _ := xmltools.FindFRBRDate(extracted, "decision")

	return &SearchResult{
		URI:                uri,
		NeutralCitation:    optional(resultCitation(extracted)),
		Name:               name,
		Matches:            matches,
		Court:              b.resultCourt(extracted),
		Date:               b.documentDate(ctx, uri, decisionDate),
		Author:             optional(author, true),
		LastModified:       optional(lastModified, true),
		ContentHash:        optional(xmltools.FindChildText(extracted, xmltools.NamespaceUK, "hash")),
		TransformationDate: optional(xmltools.FindFRBRDate(extracted, "transform")),
	}, nil
}

// resultName prefers FRBRname/@value and falls back to docTitle.
func resultName(extracted *etree.Element, uri marklogic.DocumentURI) (string, error) {
	if name, ok := xmltools.Attr(xmltools.FindChild(extracted, xmltools.NamespaceAKN, "FRBRname"), "value"); ok {
		return name, nil
	}
	if title, ok := xmltools.FindChildText(extracted, xmltools.NamespaceAKN, "docTitle"); ok {
		return title, nil
	}
	return "", &xmltools.MissingMetadataError{URI: uri.String(), Field: "name"}
}

// resultCitation prefers uk:cite and falls back to akn:neutralCitation.
func resultCitation(extracted *etree.Element) (string, bool) {
	if cite, ok := xmltools.FindChildText(extracted, xmltools.NamespaceUK, "cite"); ok {
		return cite, true
	}
	return xmltools.FindChildText(extracted, xmltools.NamespaceAKN, "neutralCitation")
}

func (b *Builder) resultCourt(extracted *etree.Element) *courts.Court {
	code, ok := xmltools.FindChildText(extracted, xmltools.NamespaceUK, "court")
	if !ok {
		return nil
	}
	return b.courts.ByCode(code)
}

func (b *Builder) documentDate(ctx context.Context, uri marklogic.DocumentURI, raw string) *time.Time {
	date := ParseDocumentDate(ctx, b.logger, uri, raw)
	if date == nil && raw != "" {
		b.metrics.IncrementDateParseFailure()
	}
	return date
}
