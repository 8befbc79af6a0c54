package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Params
		expected Params
	}{
		{
			name:     "Defaults when empty",
			in:       Params{},
			expected: Params{PageNumber: 1, PageSize: 10},
		},
		{
			name:     "Trims filters",
			in:       Params{Name: "  Paris ", SearchQuery: " park "},
			expected: Params{Name: "Paris", SearchQuery: "park", PageNumber: 1, PageSize: 10},
		},
		{
			name:     "Whitespace-only filters become absent",
			in:       Params{Name: "   ", SearchQuery: "\t"},
			expected: Params{PageNumber: 1, PageSize: 10},
		},
		{
			name:     "Page size clamped to max",
			in:       Params{PageNumber: 2, PageSize: 100},
			expected: Params{PageNumber: 2, PageSize: 20},
		},
		{
			name:     "Page size at max untouched",
			in:       Params{PageNumber: 1, PageSize: 20},
			expected: Params{PageNumber: 1, PageSize: 20},
		},
		{
			name:     "Negative values fall back",
			in:       Params{PageNumber: -3, PageSize: -1},
			expected: Params{PageNumber: 1, PageSize: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Normalize())
		})
	}
}

func TestParams_Normalize_ClampProperty(t *testing.T) {
	// Any requested size above the cap ends up at exactly the cap
	for size := 21; size <= 1000; size += 37 {
		got := Params{PageSize: size}.Normalize()
		assert.Equal(t, 20, got.PageSize, "pageSize %d should clamp to 20", size)
	}
}

func TestParams_Offset(t *testing.T) {
	p := Params{PageNumber: 3, PageSize: 10}.Normalize()
	assert.Equal(t, 20, p.Offset())

	p = Params{}.Normalize()
	assert.Equal(t, 0, p.Offset())
}

func TestNewMetadata(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		params     Params
		totalPages int
	}{
		{name: "Exact division", total: 40, params: Params{PageNumber: 1, PageSize: 10}, totalPages: 4},
		{name: "Remainder adds a page", total: 41, params: Params{PageNumber: 1, PageSize: 10}, totalPages: 5},
		{name: "Empty set", total: 0, params: Params{PageNumber: 1, PageSize: 10}, totalPages: 0},
		{name: "Single partial page", total: 3, params: Params{PageNumber: 1, PageSize: 10}, totalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := NewMetadata(tt.total, tt.params)
			assert.Equal(t, tt.total, md.TotalItemCount)
			assert.Equal(t, tt.params.PageSize, md.PageSize)
			assert.Equal(t, tt.params.PageNumber, md.CurrentPage)
			assert.Equal(t, tt.totalPages, md.TotalPages)
		})
	}
}

func TestNewMetadata_CeilProperty(t *testing.T) {
	// totalPages == ceil(N/P) for a spread of collection sizes and page sizes
	for total := 0; total <= 100; total += 7 {
		for _, size := range []int{1, 3, 10, 20} {
			params := Params{PageNumber: 1, PageSize: size}.Normalize()
			md := NewMetadata(total, params)

			expected := total / size
			if total%size != 0 {
				expected++
			}
			assert.Equal(t, expected, md.TotalPages, "total=%d size=%d", total, size)
		}
	}
}
