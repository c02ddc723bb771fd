// Package marklogic is the client for the MarkLogic document store that holds
// judgment XML. Client is the contract the rest of the service depends on;
// HTTPClient speaks the MarkLogic REST API and CachingClient puts Redis in
// front of it.
package marklogic

import (
	"context"
	"strconv"
	"strings"
)

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks Client

// Client is the document store contract. Every method returns a
// *TransportError for network or backend failures; GetDocument, RenderHTML
// and PutDocument wrap sentinel.ErrNotFound when the store has no document.
type Client interface {
	GetDocument(ctx context.Context, uri DocumentURI) ([]byte, error)
	PutDocument(ctx context.Context, uri DocumentURI, xml []byte) error
	DocumentExists(ctx context.Context, uri DocumentURI) (bool, error)
	// GetLastModified returns the raw last-modified property, or "" when unset.
	GetLastModified(ctx context.Context, uri DocumentURI) (string, error)
	// GetProperty returns a named document property, or "" when unset.
	GetProperty(ctx context.Context, uri DocumentURI, name string) (string, error)
	// RenderHTML returns the document transformed to HTML by the store.
	RenderHTML(ctx context.Context, uri DocumentURI) ([]byte, error)
	// Search runs the search module and returns a search:response document.
	Search(ctx context.Context, params SearchParameters) ([]byte, error)
	// JudgmentsIndex returns one page of the judgments index as a
	// search:response document.
	JudgmentsIndex(ctx context.Context, page int) ([]byte, error)
}

// SearchParameters is the query-parameter bag passed to the search module.
// Empty optional fields are omitted from the request.
type SearchParameters struct {
	Query           string
	Court           []string
	Judge           string
	Party           string
	NeutralCitation string
	SpecificKeyword string
	DateFrom        string
	DateTo          string
	Page            int
	PerPage         int
	Order           string
}

// Vars renders the parameters as the external variables of the search module.
func (p SearchParameters) Vars() map[string]string {
	vars := map[string]string{
		"page":      strconv.Itoa(max(p.Page, 1)),
		"page-size": strconv.Itoa(max(p.PerPage, 1)),
	}
	set := func(key, value string) {
		if value != "" {
			vars[key] = value
		}
	}
	set("q", p.Query)
	set("court", joinNonEmpty(p.Court))
	set("judge", p.Judge)
	set("party", p.Party)
	set("neutral_citation", p.NeutralCitation)
	set("specific_keyword", p.SpecificKeyword)
	set("from", p.DateFrom)
	set("to", p.DateTo)
	set("order", p.Order)
	return vars
}

func joinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ",")
}
