// internal/utils/pagination_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 10}
	result := CreatePaginationResult([]string{"a"}, 25, params)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}

func TestDescriptorMiddlePage(t *testing.T) {
	result := CreatePaginationResult(nil, 25, PaginationParams{Page: 2, Limit: 10})
	desc := result.Descriptor()

	require.Contains(t, desc, "next")
	require.Contains(t, desc, "prev")
	assert.Equal(t, PageRef{Page: 3, Limit: 10}, desc["next"])
	assert.Equal(t, PageRef{Page: 1, Limit: 10}, desc["prev"])
}

func TestDescriptorFirstPage(t *testing.T) {
	result := CreatePaginationResult(nil, 25, PaginationParams{Page: 1, Limit: 10})
	desc := result.Descriptor()

	assert.Contains(t, desc, "next")
	assert.NotContains(t, desc, "prev")
}

func TestDescriptorLastPage(t *testing.T) {
	result := CreatePaginationResult(nil, 25, PaginationParams{Page: 3, Limit: 10})
	desc := result.Descriptor()

	assert.NotContains(t, desc, "next")
	assert.Contains(t, desc, "prev")
}

func TestDescriptorExactBoundary(t *testing.T) {
	// Page 2 of 20 rows at limit 10 ends exactly at the total
	result := CreatePaginationResult(nil, 20, PaginationParams{Page: 2, Limit: 10})
	desc := result.Descriptor()

	assert.NotContains(t, desc, "next")
	assert.Contains(t, desc, "prev")
}

func TestDescriptorSinglePage(t *testing.T) {
	result := CreatePaginationResult(nil, 5, PaginationParams{Page: 1, Limit: 10})
	desc := result.Descriptor()

	assert.NotContains(t, desc, "next")
	assert.NotContains(t, desc, "prev")
}

func TestDescriptorEmptyResult(t *testing.T) {
	result := CreatePaginationResult(nil, 0, PaginationParams{Page: 1, Limit: 10})
	desc := result.Descriptor()

	assert.NotContains(t, desc, "next")
	assert.NotContains(t, desc, "prev")
	assert.Equal(t, int64(0), desc["total"])
}
