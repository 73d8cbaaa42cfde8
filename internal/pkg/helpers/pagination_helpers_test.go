package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, size int
		offset     uint64
		limit      int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 10, 0, 10},
		{-5, 10, 0, 10},
		{2, 0, 10, DefaultPageSize},
		{1, MaxPageSize + 1, 0, DefaultPageSize},
	}

	for _, tc := range cases {
		offset, limit := CalculateOffsetLimit(tc.page, tc.size)
		if offset != tc.offset || limit != tc.limit {
			t.Fatalf("page=%d size=%d: got offset=%d limit=%d, want offset=%d limit=%d",
				tc.page, tc.size, offset, limit, tc.offset, tc.limit)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	if info.TotalPages != 3 || info.CurrentPage != 2 || info.TotalItems != 25 {
		t.Fatalf("unexpected pagination: %+v", info)
	}

	// Empty result set still counts as one page
	info = NewPaginationInfo(0, 1, 10)
	if info.TotalPages != 1 || info.CurrentPage != 1 {
		t.Fatalf("unexpected empty pagination: %+v", info)
	}

	// Page beyond the end is clamped
	info = NewPaginationInfo(5, 9, 10)
	if info.CurrentPage != 1 {
		t.Fatalf("expected clamped page 1, got %d", info.CurrentPage)
	}
}
