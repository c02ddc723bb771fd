package marklogic

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalised failure taxonomy of the document store.
type ErrorCategory string

const (
	// ErrorTimeout indicates the store took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the store returned a body we could not read
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or permission issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage indicates the store is unavailable
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorBadStatus indicates an unexpected non-2xx status
	ErrorBadStatus ErrorCategory = "bad_status"

	// ErrorInternal indicates an unexpected client-side error
	ErrorInternal ErrorCategory = "internal"
)

// TransportError wraps document store failures with a normalised category.
// The core never retries; Retryable is informational for outer layers.
type TransportError struct {
	Category   ErrorCategory
	Operation  string
	StatusCode int
	Message    string
	Underlying error
	Retryable  bool
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("marklogic %s [%s]: %s", e.Operation, e.Category, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Underlying != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// NewTransportError creates a new normalised transport error.
func NewTransportError(category ErrorCategory, operation, message string, underlying error) *TransportError {
	retryable := category == ErrorTimeout || category == ErrorProviderOutage

	return &TransportError{
		Category:   category,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is worth retrying by an outer layer.
func IsRetryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error.
func GetCategory(err error) ErrorCategory {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Category
	}
	return ErrorInternal
}

// ErrCircuitOpen is wrapped by transport errors returned while the breaker is open.
var ErrCircuitOpen = errors.New("circuit open")
