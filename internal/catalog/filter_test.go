// internal/catalog/filter_test.go
package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = Options{
	Fields: map[string]string{
		"price": "price",
		"stock": "stock",
	},
	SetFields: map[string]string{
		"publisher": "publisher",
	},
	ArraySetFields: map[string]string{
		"genre": "genres",
	},
	SearchColumns: []string{"title", "description"},
}

func TestTranslateEquality(t *testing.T) {
	values := url.Values{"price": {"19.99"}}

	conds := Translate(values, testOptions)
	require.Len(t, conds, 1)
	assert.Equal(t, "price = ?", conds[0].Expr)
	assert.Equal(t, []interface{}{"19.99"}, conds[0].Args)
}

func TestTranslateComparisonOperators(t *testing.T) {
	tests := []struct {
		key  string
		expr string
	}{
		{"price[gt]", "price > ?"},
		{"price[gte]", "price >= ?"},
		{"price[lt]", "price < ?"},
		{"price[lte]", "price <= ?"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			conds := Translate(url.Values{tt.key: {"10"}}, testOptions)
			require.Len(t, conds, 1)
			assert.Equal(t, tt.expr, conds[0].Expr)
		})
	}
}

func TestTranslateInOperator(t *testing.T) {
	values := url.Values{"stock[in]": {"1, 2,3"}}

	conds := Translate(values, testOptions)
	require.Len(t, conds, 1)
	assert.Equal(t, "stock IN ?", conds[0].Expr)
	assert.Equal(t, []interface{}{[]string{"1", "2", "3"}}, conds[0].Args)
}

func TestTranslateSetFieldAnchorsPattern(t *testing.T) {
	values := url.Values{"publisher": {"Valve"}}

	conds := Translate(values, testOptions)
	require.Len(t, conds, 1)
	assert.Equal(t, "publisher ~* ANY(?)", conds[0].Expr)
}

func TestTranslateArraySetField(t *testing.T) {
	values := url.Values{"genre": {"rpg,indie"}}

	conds := Translate(values, testOptions)
	require.Len(t, conds, 1)
	assert.Contains(t, conds[0].Expr, "unnest(genres)")
	assert.Contains(t, conds[0].Expr, "~* ANY(?)")
}

func TestTranslateSearch(t *testing.T) {
	values := url.Values{"search": {"zelda"}}

	conds := Translate(values, testOptions)
	require.Len(t, conds, 1)
	assert.Equal(t, "(title ILIKE ? OR description ILIKE ?)", conds[0].Expr)
	assert.Equal(t, []interface{}{"%zelda%", "%zelda%"}, conds[0].Args)
}

func TestTranslateSearchEscapesWildcards(t *testing.T) {
	values := url.Values{"search": {"100%_done"}}

	conds := Translate(values, testOptions)
	require.Len(t, conds, 1)
	assert.Equal(t, `%100\%\_done%`, conds[0].Args[0])
}

func TestTranslateIgnoresReservedAndUnknownKeys(t *testing.T) {
	values := url.Values{
		"page":    {"3"},
		"limit":   {"50"},
		"sort":    {"price"},
		"order":   {"asc"},
		"select":  {"title"},
		"unknown": {"whatever"},
	}

	conds := Translate(values, testOptions)
	assert.Empty(t, conds)
}

func TestTranslateDeterministicOrder(t *testing.T) {
	values := url.Values{
		"price":     {"10"},
		"genre":     {"rpg"},
		"publisher": {"Valve"},
	}

	first := Translate(values, testOptions)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Translate(values, testOptions))
	}
}

func TestTranslateBlankSearchSkipped(t *testing.T) {
	conds := Translate(url.Values{"search": {"   "}}, testOptions)
	assert.Empty(t, conds)
}

func TestSplitOperatorRejectsUnknown(t *testing.T) {
	field, op := splitOperator("price[ne]")
	assert.Equal(t, "price[ne]", field)
	assert.Equal(t, "", op)

	field, op = splitOperator("price[gte]")
	assert.Equal(t, "price", field)
	assert.Equal(t, "gte", op)
}
