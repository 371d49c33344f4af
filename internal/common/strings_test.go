package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref    string
		table  string
		column string
	}{
		{"customers.id", "customers", "id"},
		{"customers", "customers", ""},
		{" orders.items.sku ", "orders", "items.sku"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			table, column := SplitRef(tt.ref)
			assert.Equal(t, tt.table, table)
			assert.Equal(t, tt.column, column)
		})
	}
}

func TestJoinRef(t *testing.T) {
	assert.Equal(t, "customers.id", JoinRef("customers", "id"))
	assert.Equal(t, "customers", JoinRef("customers", ""))
}
