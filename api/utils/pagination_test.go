package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/dash/rankings/partner", nil)
	params, err := ExtractPagination(r)
	require.NoError(t, err)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, 0, params.Offset)

	r = httptest.NewRequest("GET", "/dash/rankings/partner?page=3&limit=5", nil)
	params, err = ExtractPagination(r)
	require.NoError(t, err)
	assert.Equal(t, 10, params.Offset)

	r = httptest.NewRequest("GET", "/dash/rankings/partner?page=zero", nil)
	_, err = ExtractPagination(r)
	assert.Error(t, err)

	r = httptest.NewRequest("GET", "/dash/rankings/partner?limit=-1", nil)
	_, err = ExtractPagination(r)
	assert.Error(t, err)
}

func TestPaginationStatsAndBounds(t *testing.T) {
	p := PaginationParams{Page: 2, Limit: 10, Offset: 10}
	p.SetPaginationStats(25)
	assert.Equal(t, 25, p.TotalRecords)
	assert.Equal(t, 3, p.TotalPages)

	start, end := p.Bounds(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	// Past the last page: empty window, never out of range.
	p = PaginationParams{Page: 9, Limit: 10, Offset: 80}
	start, end = p.Bounds(25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)

	p.SetPaginationStats(0)
	assert.Equal(t, 0, p.TotalPages)
}
