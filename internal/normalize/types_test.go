package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogicalFromPhysical(t *testing.T) {
	tests := []struct {
		physical string
		want     string
	}{
		{"VARCHAR(255)", "string"},
		{"bigint", "integer"},
		{"NUMERIC(10, 2)", "number"},
		{"boolean", "boolean"},
		{"timestamp with time zone", "timestamp"},
		{"TIMESTAMPTZ", "timestamp"},
		{"date", "date"},
		{"jsonb", "object"},
		{"struct<a:int>", "object"},
		{"int[]", "array"},
		{"array<string>", "array"},
		{"geometry", "string"},
	}

	for _, tt := range tests {
		t.Run(tt.physical, func(t *testing.T) {
			assert.Equal(t, tt.want, LogicalFromPhysical(tt.physical))
		})
	}
}

func TestPhysicalFromLogical(t *testing.T) {
	assert.Equal(t, "varchar", PhysicalFromLogical("string"))
	assert.Equal(t, "numeric", PhysicalFromLogical("Number"))
	assert.Equal(t, "array", PhysicalFromLogical("array"))
	assert.Equal(t, "geography", PhysicalFromLogical("geography"))
}
