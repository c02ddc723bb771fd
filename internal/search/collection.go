package search

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"caselaw/internal/xmltools"
)

// Parse reads a search:response document into its total and its results.
//
// Hits are built concurrently and stored by position, so results keep the
// response order. The first hit that fails to build fails the whole
// response; no hit is dropped.
func (b *Builder) Parse(ctx context.Context, data []byte) (*SearchResults, error) {
	root, err := xmltools.Parse(data)
	if err != nil {
		return nil, &MalformedSearchResponseError{Reason: "unreadable xml", Err: err}
	}

	rawTotal, ok := xmltools.GetSearchTotal(root)
	if !ok {
		return nil, &MalformedSearchResponseError{Reason: "missing total"}
	}
	total, err := strconv.Atoi(rawTotal)
	if err != nil || total < 0 {
		return nil, &MalformedSearchResponseError{Reason: fmt.Sprintf("invalid total %q", rawTotal), Err: err}
	}

	hits := xmltools.GetSearchResults(root)
	results := make([]*SearchResult, len(hits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, hit := range hits {
		i, hit := i, hit
		g.Go(func() error {
			result, err := b.Build(gctx, hit)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SearchResults{Total: total, Results: results}, nil
}
