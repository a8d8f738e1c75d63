package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page      int
		pageSize  int
		wantItems []int
		wantPages int
	}{
		{name: "first page", total: 45, page: 0, pageSize: 20, wantItems: seq(20), wantPages: 3},
		{name: "last partial page", total: 45, page: 2, pageSize: 20, wantItems: []int{40, 41, 42, 43, 44}, wantPages: 3},
		{name: "past the end", total: 45, page: 3, pageSize: 20, wantItems: []int{}, wantPages: 3},
		{name: "empty collection", total: 0, page: 0, pageSize: 20, wantItems: []int{}, wantPages: 0},
		{name: "exact multiple", total: 40, page: 1, pageSize: 20, wantItems: seq(40)[20:], wantPages: 2},
		{name: "page size one", total: 3, page: 2, pageSize: 1, wantItems: []int{2}, wantPages: 3},
		{name: "page size larger than collection", total: 3, page: 0, pageSize: 50, wantItems: seq(3), wantPages: 1},
		{name: "page size above one hundred", total: 150, page: 0, pageSize: 101, wantItems: seq(101), wantPages: 2},
		{name: "second page with large page size", total: 150, page: 1, pageSize: 101, wantItems: seq(150)[101:], wantPages: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Paginate(seq(tt.total), tt.page, tt.pageSize)
			require.NoError(t, err)
			assert.Equal(t, tt.wantItems, resp.Items)
			assert.Equal(t, tt.page, resp.Page)
			assert.Equal(t, tt.pageSize, resp.PageSize)
			assert.Equal(t, tt.total, resp.TotalItems)
			assert.Equal(t, tt.wantPages, resp.TotalPages)
		})
	}
}

func TestPaginate_CoversEveryItemOnce(t *testing.T) {
	for _, total := range []int{0, 1, 19, 20, 21, 99, 100, 101} {
		for _, pageSize := range []int{1, 7, 20, 100} {
			items := seq(total)
			first, err := Paginate(items, 0, pageSize)
			require.NoError(t, err)

			var seen []int
			for page := 0; page < first.TotalPages; page++ {
				resp, err := Paginate(items, page, pageSize)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(resp.Items), pageSize)
				seen = append(seen, resp.Items...)
			}
			if total == 0 {
				assert.Empty(t, seen)
				continue
			}
			assert.Equal(t, items, seen, "total=%d pageSize=%d", total, pageSize)
		}
	}
}

func TestPaginate_HugePageDoesNotOverflow(t *testing.T) {
	resp, err := Paginate(seq(5), math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.NotNil(t, resp.Items)
}

func TestPaginate_RejectsBadInput(t *testing.T) {
	for _, tc := range []struct{ page, pageSize int }{{-1, 20}, {0, 0}, {0, -5}, {-3, -3}} {
		_, err := Paginate(seq(5), tc.page, tc.pageSize)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
}
