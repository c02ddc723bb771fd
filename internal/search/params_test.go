package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caselaw/internal/courts"
	"caselaw/internal/marklogic"
)

func TestPreprocessQuery(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"waltham forest", "waltham forest"},
		{"  waltham \t\n forest  ", "waltham forest"},
		{"“waltham forest”", `"waltham forest"`},
		{"Hussain’s appeal", "Hussain's appeal"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PreprocessQuery(tc.in), tc.in)
	}

	long := strings.Repeat("a", maxQueryRuneLength+50)
	assert.Len(t, PreprocessQuery(long), maxQueryRuneLength)
}

func TestBrowseParameters(t *testing.T) {
	court := courts.Default().ByParam("ewhc/ch")
	require.NotNil(t, court)

	assert.Equal(t, marklogic.SearchParameters{
		Court:    []string{"ewhc/ch"},
		DateFrom: "2022-01-01",
		DateTo:   "2022-12-31",
		Order:    "-date",
		Page:     1,
		PerPage:  10,
	}, BrowseParameters(court, 2022))
}

func TestMatchBrowsePath(t *testing.T) {
	registry := courts.Default()

	t.Run("court and year", func(t *testing.T) {
		court, year, ok := MatchBrowsePath(registry, "/ewhc/ch/2022")
		require.True(t, ok)
		assert.Equal(t, "EWHC-Chancery", court.Code)
		assert.Equal(t, 2022, year)
	})

	t.Run("single segment court", func(t *testing.T) {
		court, year, ok := MatchBrowsePath(registry, "uksc/2019")
		require.True(t, ok)
		assert.Equal(t, "UKSC", court.Code)
		assert.Equal(t, 2019, year)
	})

	for _, path := range []string{
		"ewca/civ/2004/632",
		"uksc/2024/1/press-summary/1",
		"unknown/2022",
		"uksc/22",
		"uksc/+202",
		"2022",
		"",
	} {
		t.Run("rejects "+path, func(t *testing.T) {
			_, _, ok := MatchBrowsePath(registry, path)
			assert.False(t, ok)
		})
	}
}
