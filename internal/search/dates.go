package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"caselaw/internal/marklogic"
)

var errUnrecognisedDate = errors.New("unrecognised date")

// ukDateOrder reads slashed dates day first, as UK documents write them.
var ukDateOrder = []dateparse.ParserOption{
	dateparse.PreferMonthFirst(false),
	dateparse.RetryAmbiguousDateWithSwap(true),
}

// ParseDocumentDate parses a raw decision date in UTC.
//
// An empty value is "no data" and returns nil silently. A non-empty value
// that cannot be parsed is corrupt data: it returns nil and logs one warning
// carrying the document uri and the raw value.
func ParseDocumentDate(ctx context.Context, logger *slog.Logger, uri marklogic.DocumentURI, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := parseDate(raw)
	if err != nil {
		logger.WarnContext(ctx, "Unable to parse document date",
			"uri", uri.String(),
			"date", raw,
			"error", err,
		)
		return nil
	}
	return &t
}

func parseDate(raw string) (t time.Time, err error) {
	// dateparse can panic on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errUnrecognisedDate, r)
		}
	}()
	t, err = dateparse.ParseIn(raw, time.UTC, ukDateOrder...)
	if err != nil {
		return time.Time{}, err
	}
	if t.IsZero() {
		return time.Time{}, errUnrecognisedDate
	}
	return t.UTC(), nil
}
