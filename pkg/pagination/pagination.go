// Package pagination slices append-only logs into pages.
package pagination

import (
	dErrors "landregistry/pkg/domain-errors"
)

// Page returns items[offset : offset+limit], clipped to the available length.
// An offset equal to the length yields an empty page; a larger offset fails
// with "invalid offset". A zero limit yields an empty page.
func Page[T any](items []T, offset, limit int) ([]T, error) {
	if offset < 0 || offset > len(items) {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid offset")
	}
	if limit < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid limit")
	}
	end := offset + limit
	if end > len(items) || end < offset {
		end = len(items)
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out, nil
}
