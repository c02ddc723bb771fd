package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"caselaw/internal/marklogic"
	"caselaw/internal/search"
	platformstrings "caselaw/pkg/platform/strings"
)

const maxPerPage = 100

// parseIndexRequest maps GET /judgments query parameters. The index page
// length is fixed by the store client.
func parseIndexRequest(q url.Values) (marklogic.SearchParameters, error) {
	page, err := positiveInt(q, "page", search.DefaultPage)
	if err != nil {
		return marklogic.SearchParameters{}, err
	}
	return marklogic.SearchParameters{Page: page, PerPage: marklogic.IndexPageLength}, nil
}

// parseResultsRequest maps GET /judgments/results query parameters.
func parseResultsRequest(q url.Values) (marklogic.SearchParameters, error) {
	page, perPage, err := parsePaging(q)
	if err != nil {
		return marklogic.SearchParameters{}, err
	}
	return marklogic.SearchParameters{
		Query:   search.PreprocessQuery(q.Get("query")),
		Page:    page,
		PerPage: perPage,
		Order:   valueOr(q.Get("order"), search.OrderRelevanceDesc),
	}, nil
}

// parseAdvancedSearchRequest maps GET /judgments/advanced_search query
// parameters. court may repeat; repeats are collapsed.
func parseAdvancedSearchRequest(q url.Values) (marklogic.SearchParameters, error) {
	page, perPage, err := parsePaging(q)
	if err != nil {
		return marklogic.SearchParameters{}, err
	}
	return marklogic.SearchParameters{
		Query:           search.PreprocessQuery(q.Get("query")),
		Court:           platformstrings.DedupeLower(q["court"]),
		Judge:           strings.TrimSpace(q.Get("judge")),
		Party:           strings.TrimSpace(q.Get("party")),
		NeutralCitation: strings.TrimSpace(q.Get("neutral_citation")),
		SpecificKeyword: strings.TrimSpace(q.Get("specific_keyword")),
		DateFrom:        strings.TrimSpace(q.Get("from")),
		DateTo:          strings.TrimSpace(q.Get("to")),
		Page:            page,
		PerPage:         perPage,
		Order:           valueOr(q.Get("order"), search.OrderRelevance),
	}, nil
}

func parsePaging(q url.Values) (page, perPage int, err error) {
	page, err = positiveInt(q, "page", search.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	perPage, err = positiveInt(q, "per_page", search.DefaultPerPage)
	if err != nil {
		return 0, 0, err
	}
	return page, min(perPage, maxPerPage), nil
}

func positiveInt(q url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func valueOr(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
