package search

import (
	"fmt"
	"strconv"
	"strings"

	"caselaw/internal/courts"
	"caselaw/internal/marklogic"
)

// Defaults applied to search requests.
const (
	DefaultPage        = 1
	DefaultPerPage     = 10
	OrderRelevance     = "relevance"
	OrderRelevanceDesc = "-relevance"
	OrderDateDesc      = "-date"
)

const (
	browseYearDigits   = 4
	maxQueryRuneLength = 1000
)

var quoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`,
	"‘", "'", "’", "'", "‚", "'",
)

// PreprocessQuery normalises a free-text query before it reaches the store:
// typographic quotes become straight quotes, whitespace runs collapse to one
// space, and overlong queries are truncated.
func PreprocessQuery(query string) string {
	query = quoteReplacer.Replace(query)
	query = strings.Join(strings.Fields(query), " ")
	if runes := []rune(query); len(runes) > maxQueryRuneLength {
		query = strings.TrimSpace(string(runes[:maxQueryRuneLength]))
	}
	return query
}

// BrowseParameters returns the search for every judgment of court decided in year.
func BrowseParameters(court *courts.Court, year int) marklogic.SearchParameters {
	return marklogic.SearchParameters{
		Court:    []string{court.Param},
		DateFrom: fmt.Sprintf("%04d-01-01", year),
		DateTo:   fmt.Sprintf("%04d-12-31", year),
		Order:    OrderDateDesc,
		Page:     DefaultPage,
		PerPage:  DefaultPerPage,
	}
}

// MatchBrowsePath reports whether path names a court and year, as in
// "ewhc/ch/2022". The court part is matched against the registry's params.
func MatchBrowsePath(registry *courts.Registry, path string) (*courts.Court, int, bool) {
	path = strings.Trim(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return nil, 0, false
	}
	yearPart := path[i+1:]
	if len(yearPart) != browseYearDigits || strings.Trim(yearPart, "0123456789") != "" {
		return nil, 0, false
	}
	court := registry.ByParam(path[:i])
	if court == nil {
		return nil, 0, false
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return nil, 0, false
	}
	return court, year, true
}
