package pagination

import (
	"strconv"
	"testing"
)

func TestCursorEncodeDecode(t *testing.T) {
	cursor := &Cursor{
		ID:     "lunch_002",
		Offset: 5,
	}

	encoded := cursor.Encode()
	decoded, err := DecodeCursor(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded == nil {
		t.Fatalf("decoded cursor is nil")
	}
	if decoded.ID != cursor.ID || decoded.Offset != cursor.Offset {
		t.Fatalf("decoded cursor mismatch: %+v", decoded)
	}
}

func TestDecodeCursorInvalid(t *testing.T) {
	if _, err := DecodeCursor("bad!=base64"); err == nil {
		t.Fatalf("expected error for invalid base64")
	}

	negative := (&Cursor{ID: "x", Offset: -1}).Encode()
	if _, err := DecodeCursor(negative); err == nil {
		t.Fatalf("expected error for negative offset")
	}
}

func TestDecodeCursorEmpty(t *testing.T) {
	cursor, err := DecodeCursor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != nil {
		t.Fatalf("expected nil cursor, got %+v", cursor)
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-10, DefaultLimit},
		{MaxLimit + 1, MaxLimit},
		{50, 50},
	}

	for _, tt := range tests {
		if got := NormalizeLimit(tt.in); got != tt.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	items := make([]string, 7)
	for i := range items {
		items[i] = "m" + strconv.Itoa(i)
	}
	id := func(s string) string { return s }

	page, next := Slice(items, nil, 3, id)
	if len(page) != 3 || page[0] != "m0" || next == nil || next.ID != "m2" || next.Offset != 3 {
		t.Fatalf("unexpected first page %v next=%+v", page, next)
	}

	page, next = Slice(items, next, 3, id)
	if len(page) != 3 || page[0] != "m3" || next == nil {
		t.Fatalf("unexpected second page %v next=%+v", page, next)
	}

	page, next = Slice(items, next, 3, id)
	if len(page) != 1 || page[0] != "m6" || next != nil {
		t.Fatalf("unexpected last page %v next=%+v", page, next)
	}
}

func TestSlice_StaleCursor(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	id := func(s string) string { return s }

	// offset points elsewhere, ID still present
	page, _ := Slice(items, &Cursor{ID: "b", Offset: 3}, 10, id)
	if len(page) != 2 || page[0] != "c" {
		t.Fatalf("expected to resume after b, got %v", page)
	}

	// ID gone and offset out of range
	page, _ = Slice(items, &Cursor{ID: "zzz", Offset: 40}, 10, id)
	if len(page) != 4 || page[0] != "a" {
		t.Fatalf("expected restart from beginning, got %v", page)
	}
}

func TestSlice_Empty(t *testing.T) {
	page, next := Slice([]string{}, nil, 5, func(s string) string { return s })
	if len(page) != 0 || next != nil {
		t.Fatalf("expected empty page, got %v %+v", page, next)
	}
}
