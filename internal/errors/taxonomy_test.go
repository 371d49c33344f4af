package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "malformed with position",
			err:  &MalformedDocumentError{Line: 3, Column: 7, Reason: "mapping values are not allowed"},
			want: "malformed document at line 3, column 7: mapping values are not allowed",
		},
		{
			name: "malformed without position",
			err:  &MalformedDocumentError{Reason: "empty document"},
			want: "malformed document: empty document",
		},
		{
			name: "missing field",
			err:  &MissingFieldError{Entry: "schema[2]", Index: 2, Field: "name"},
			want: `schema[2]: required field "name" is missing`,
		},
		{
			name: "unresolved reference",
			err:  &UnresolvedReferenceError{Entry: "schema[0].properties[1]", Reference: "customers.id", Table: "customers"},
			want: `schema[0].properties[1]: relationship target "customers.id" references unknown table "customers"`,
		},
		{
			name: "identity conflict",
			err:  &IdentityConflictError{ID: "abc", First: "table orders", Second: "table users"},
			want: "identifier abc claimed by both table orders and table users",
		},
		{
			name: "capability version",
			err:  &CapabilityUnavailableError{Reason: "incompatible version", Version: "2.1.0", Constraint: ">=1.0.0, <2.0.0"},
			want: "transformation engine unavailable: incompatible version (engine 2.1.0 does not satisfy >=1.0.0, <2.0.0)",
		},
		{
			name: "serialization",
			err:  &SerializationError{Entity: "column orders.items", Reason: "cyclic parent reference"},
			want: "cannot serialize column orders.items: cyclic parent reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestTaxonomyAsThroughWrap(t *testing.T) {
	base := &MissingFieldError{Entry: "schema[0]", Field: "name"}
	err := Wrap(base, "import failed")

	var missing *MissingFieldError
	require.True(t, As(err, &missing))
	assert.Equal(t, "schema[0]", missing.Entry)
	assert.Contains(t, err.Error(), "import failed")

	inner := New("no such file")
	capErr := &CapabilityUnavailableError{Reason: "load", Err: inner}
	assert.True(t, Is(capErr, inner))
}
