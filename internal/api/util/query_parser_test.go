package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []QueryFilter
		wantErr  bool
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "implicit equality",
			input:    "active|true",
			expected: []QueryFilter{{Field: "active", Operator: OpEq, Value: "true"}},
		},
		{
			name:     "null check",
			input:    "brand_id|isnull",
			expected: []QueryFilter{{Field: "brand_id", Operator: OpIsNull}},
		},
		{
			name:  "explicit operators",
			input: "price|gte|10, price|lt|99.50",
			expected: []QueryFilter{
				{Field: "price", Operator: OpGte, Value: "10"},
				{Field: "price", Operator: OpLt, Value: "99.50"},
			},
		},
		{
			name:     "in list",
			input:    "discount_type|in|percent;fixed",
			expected: []QueryFilter{{Field: "discount_type", Operator: OpIn, Values: []string{"percent", "fixed"}}},
		},
		{
			name:    "unknown operator",
			input:   "price|between|1",
			wantErr: true,
		},
		{
			name:    "too many parts",
			input:   "a|eq|b|c",
			wantErr: true,
		},
		{
			name:    "missing field",
			input:   "|value",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueryString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseOrderString(t *testing.T) {
	orders, err := ParseOrderString("name|ASC,created_at|desc")
	require.NoError(t, err)
	assert.Equal(t, []OrderClause{
		{Field: "name", Direction: OrderAsc},
		{Field: "created_at", Direction: OrderDesc},
	}, orders)

	_, err = ParseOrderString("name|sideways")
	assert.Error(t, err)

	_, err = ParseOrderString("name")
	assert.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	query := "name|shoe,price|gte|10,brand_id|isnotnull,code|nin|A;B"
	filters, err := ParseQueryString(query)
	require.NoError(t, err)
	assert.Equal(t, query, FormatQueryString(filters))

	order := "name|asc,id|desc"
	orders, err := ParseOrderString(order)
	require.NoError(t, err)
	assert.Equal(t, order, FormatOrderString(orders))
}

func TestValidateFields(t *testing.T) {
	filters := []QueryFilter{{Field: "name", Operator: OpEq, Value: "x"}}
	assert.NoError(t, ValidateFilterFields(filters, []string{"name", "sku"}))
	assert.Error(t, ValidateFilterFields(filters, []string{"sku"}))

	orders := []OrderClause{{Field: "secret", Direction: OrderAsc}}
	assert.Error(t, ValidateOrderFields(orders, []string{"name"}))
}

func TestListFilterNormalize(t *testing.T) {
	f := ListFilter{Page: -3, PerPage: 0}
	f.Normalize(25)
	assert.Equal(t, 0, f.Page)
	assert.Equal(t, 25, f.PerPage)

	f = ListFilter{PerPage: 1000}
	f.Normalize(25)
	assert.Equal(t, MaxPerPage, f.PerPage)

	f = ListFilter{}
	f.Normalize(0)
	assert.Equal(t, DefaultPerPage, f.PerPage)

	f = ListFilter{PerPage: -5}
	f.Normalize(25)
	assert.Equal(t, 1, f.PerPage)
}

func TestClampPerPage(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{50, 50},
		{MaxPerPage + 1, MaxPerPage},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampPerPage(tt.in), "ClampPerPage(%d)", tt.in)
	}
}
