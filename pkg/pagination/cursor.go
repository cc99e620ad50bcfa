package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Cursor represents a pagination cursor over an ordered, immutable list.
type Cursor struct {
	// ID of the last item returned
	ID string `json:"id"`
	// Offset of the next item in the list
	Offset int `json:"offset"`
}

// Encode encodes the cursor to a base64 string
func (c *Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor decodes a base64 cursor string
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, err
	}
	if cursor.Offset < 0 {
		return nil, errors.New("negative cursor offset")
	}

	return &cursor, nil
}

// NormalizeLimit ensures limit is within bounds
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Slice returns the page of items starting at cursor along with the cursor
// for the following page (nil on the last page). idOf identifies an item;
// a cursor whose ID no longer matches its offset restarts from the ID's
// current position, or from the start if the ID is gone.
func Slice[T any](items []T, cursor *Cursor, limit int, idOf func(T) string) ([]T, *Cursor) {
	limit = NormalizeLimit(limit)

	start := 0
	if cursor != nil {
		start = cursor.Offset
		if start > len(items) || (start > 0 && idOf(items[start-1]) != cursor.ID) {
			start = 0
			for i, item := range items {
				if idOf(item) == cursor.ID {
					start = i + 1
					break
				}
			}
		}
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	page := items[start:end]

	if end >= len(items) || len(page) == 0 {
		return page, nil
	}
	return page, &Cursor{ID: idOf(page[len(page)-1]), Offset: end}
}
