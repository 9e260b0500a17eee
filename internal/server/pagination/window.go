package pagination

import "time"

// Keyset returns up to limit items of rows, which must be sorted newest
// first, whose key is strictly before cursor. A nil cursor starts at the
// newest item.
func Keyset[T any](rows []T, limit int, cursor *time.Time, key func(T) time.Time) []T {
	if limit < 1 {
		return []T{}
	}
	out := make([]T, 0, min(limit, len(rows)))
	for _, r := range rows {
		if len(out) == limit {
			break
		}
		if cursor != nil && !key(r).Before(*cursor) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Window returns the 1-based page of size limit from rows.
func Window[T any](rows []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return []T{}
	}
	start := skip(page, limit)
	if start >= len(rows) {
		return []T{}
	}
	end := start + min(limit, len(rows)-start)
	return rows[start:end]
}

// NextCursor is the key of the last item of a page, or nil for an empty page.
func NextCursor[T any](page []T, key func(T) time.Time) *time.Time {
	if len(page) == 0 {
		return nil
	}
	ts := key(page[len(page)-1])
	return &ts
}
