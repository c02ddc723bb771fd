// Package strings holds small helpers for cleaning repeated query values.
package strings

import (
	"strings"
)

// DedupeLower trims and lowercases each value, dropping blanks and repeats.
// Order of first appearance is kept. Nil is returned when nothing remains.
//
//	DedupeLower([]string{" EWHC/Ch ", "ewca/civ", "ewhc/ch", ""})
//	// []string{"ewhc/ch", "ewca/civ"}
func DedupeLower(values []string) []string {
	var result []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
