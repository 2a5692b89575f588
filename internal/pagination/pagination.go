package pagination

import (
	"errors"

	"chat-sentry/internal/storage"
)

// ErrInvalidPageSize rejects non-positive page sizes.
var ErrInvalidPageSize = errors.New("pagination: page size must be positive")

// Page is a bounded view over a result set. It is recomputed on demand
// and never stored.
type Page struct {
	Items       []storage.Record
	Index       int
	Count       int
	HasPrevious bool
	HasNext     bool
}

// Paginate slices records into fixed-size pages and returns the one at
// pageIndex. The index is clamped into the valid range, so callers must
// read Page.Index back rather than assume their request was honored.
func Paginate(records []storage.Record, pageSize, pageIndex int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, ErrInvalidPageSize
	}
	count := (len(records) + pageSize - 1) / pageSize
	index := Clamp(pageIndex, count)
	start := index * pageSize
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	var items []storage.Record
	if start < end {
		items = records[start:end]
	}
	return Page{
		Items:       items,
		Index:       index,
		Count:       count,
		HasPrevious: index > 0,
		HasNext:     index < count-1,
	}, nil
}

// Clamp forces a page index into [0, max(count-1, 0)].
func Clamp(index, count int) int {
	if index < 0 {
		return 0
	}
	if count > 0 && index > count-1 {
		return count - 1
	}
	if count == 0 {
		return 0
	}
	return index
}
