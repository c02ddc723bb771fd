// Package search turns MarkLogic search responses into typed results.
//
// Builder.Build reads one search:result hit; Builder.Parse reads a whole
// search:response. Optional fields that are absent or empty come back nil.
// Required fields (uri, name) fail with *xmltools.MissingMetadataError.
package search

import (
	"time"

	"caselaw/internal/courts"
	"caselaw/internal/marklogic"
)

// SearchResult is one hit of a search response.
type SearchResult struct {
	URI                marklogic.DocumentURI `json:"uri"`
	NeutralCitation    *string               `json:"neutral_citation,omitempty"`
	Name               string                `json:"name"`
	Matches            []string              `json:"matches"`
	Court              *courts.Court         `json:"court,omitempty"`
	Date               *time.Time            `json:"date,omitempty"`
	Author             *string               `json:"author,omitempty"`
	LastModified       *string               `json:"last_modified,omitempty"`
	ContentHash        *string               `json:"content_hash,omitempty"`
	TransformationDate *string               `json:"transformation_date,omitempty"`
}

// SearchResults is the total hit count plus the hits of one page, in the
// order the store returned them.
type SearchResults struct {
	Total   int
	Results []*SearchResult
}

func optional(value string, ok bool) *string {
	if !ok || value == "" {
		return nil
	}
	return &value
}
