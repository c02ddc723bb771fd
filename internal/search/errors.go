package search

import "fmt"

// MalformedSearchResponseError reports a search response that breaks the
// response contract, such as a missing or non-numeric total.
type MalformedSearchResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedSearchResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed search response: %s: %v", e.Reason, e.Err)
	}
	return "malformed search response: " + e.Reason
}

func (e *MalformedSearchResponseError) Unwrap() error {
	return e.Err
}
