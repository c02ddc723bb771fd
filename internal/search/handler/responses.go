package handler

import (
	"caselaw/internal/courts"
	"caselaw/internal/marklogic"
	"caselaw/internal/search"
)

// SearchResponse is the HTTP response for every search endpoint.
type SearchResponse struct {
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"per_page"`
	Query   string                 `json:"query,omitempty"`
	Court   *courts.Court          `json:"court,omitempty"`
	Year    int                    `json:"year,omitempty"`
	Results []*search.SearchResult `json:"results"`
}

// FromResults converts search results to an HTTP response.
func FromResults(params marklogic.SearchParameters, results *search.SearchResults, court *courts.Court, year int) *SearchResponse {
	resp := &SearchResponse{
		Total:   results.Total,
		Page:    params.Page,
		PerPage: params.PerPage,
		Query:   params.Query,
		Court:   court,
		Year:    year,
		Results: results.Results,
	}
	if resp.Results == nil {
		resp.Results = []*search.SearchResult{}
	}
	return resp
}
