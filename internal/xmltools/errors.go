package xmltools

import "fmt"

// MissingMetadataError reports a required element or attribute absent from a
// document or search hit. It is fatal for the unit being parsed.
type MissingMetadataError struct {
	URI   string
	Field string
}

func (e *MissingMetadataError) Error() string {
	if e.URI == "" {
		return fmt.Sprintf("missing metadata: %s", e.Field)
	}
	return fmt.Sprintf("missing metadata for %s: %s", e.URI, e.Field)
}
