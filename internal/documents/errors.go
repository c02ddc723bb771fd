package documents

import (
	"errors"

	"caselaw/internal/marklogic"
)

// DocumentNotFoundError reports an identifier with no stored document.
type DocumentNotFoundError struct {
	URI marklogic.DocumentURI
}

func (e *DocumentNotFoundError) Error() string {
	return "document not found: " + e.URI.String()
}

var (
	// ErrInvalidPDF is wrapped when bytes fail PDF validation.
	ErrInvalidPDF = errors.New("invalid pdf")

	// ErrPDFServiceNotConfigured is returned by generation when no PDF service URL is set.
	ErrPDFServiceNotConfigured = errors.New("pdf service not configured")
)
