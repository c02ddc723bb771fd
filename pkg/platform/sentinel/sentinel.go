package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Backend clients and caches return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: the document store has no resource at that URI
// - ErrUnavailable: backend or cache temporarily unavailable
// - ErrInvalidState: response in a shape the caller cannot use
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
