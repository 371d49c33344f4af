package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarHelpers(t *testing.T) {
	root, err := Parse([]byte(`
a: "3"
b: 4
c: "true"
d: false
e: null
f: ""
g: []
h: {}
i: [x, y, {z: 1}]
j: text
`))
	require.NoError(t, err)

	i, ok := ScalarInt(Lookup(root, "a"))
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	i, ok = ScalarInt(Lookup(root, "b"))
	assert.True(t, ok)
	assert.Equal(t, 4, i)

	_, ok = ScalarInt(Lookup(root, "j"))
	assert.False(t, ok)

	b, ok := ScalarBool(Lookup(root, "c"))
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = ScalarBool(Lookup(root, "d"))
	assert.True(t, ok)
	assert.False(t, b)

	assert.True(t, IsNull(Lookup(root, "e")))
	assert.True(t, IsNull(Lookup(root, "missing")))
	assert.False(t, IsNull(Lookup(root, "f")))

	for _, k := range []string{"e", "f", "g", "h", "missing"} {
		assert.True(t, IsEmpty(Lookup(root, k)), k)
	}

	assert.False(t, IsEmpty(Lookup(root, "i")))
	assert.Equal(t, []string{"x", "y"}, Strings(Lookup(root, "i")))
	assert.Equal(t, []string{"text"}, Strings(Lookup(root, "j")))
	assert.Nil(t, Strings(Lookup(root, "f")))

	assert.Equal(t, []any{"x", "y", map[string]any{"z": 1}}, ToAny(Lookup(root, "i")))
	assert.Nil(t, ToAny(nil))

	keys := make([]string, 0)
	for _, p := range Pairs(root) {
		keys = append(keys, p.Key)
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, keys)
}
