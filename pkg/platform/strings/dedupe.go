// Package strings holds small string helpers shared by request decoders.
package strings

import (
	"strings"
)

// DedupeAndTrimLower trims and lowercases each value, dropping empties and
// repeats. Order of first appearance is kept. Suited to case-insensitive
// identifiers such as account ids.
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
