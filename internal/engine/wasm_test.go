package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyModule is a valid WebAssembly binary with no sections.
var emptyModule = []byte("\x00asm\x01\x00\x00\x00")

func TestNewWASMInvalidBytes(t *testing.T) {
	_, err := NewWASM(context.Background(), []byte("not wasm"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wasm compile")
}

func TestNewWASMMissingExports(t *testing.T) {
	_, err := NewWASM(context.Background(), emptyModule)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing export "wasm_alloc"`)
}

func TestWASMFileMissing(t *testing.T) {
	l := NewLoader(WASMFile(filepath.Join(t.TempDir(), "engine.wasm")), "")

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read engine module")
}

func TestEngineResult(t *testing.T) {
	out, err := engineResult(fnParse, []byte("schema: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "schema: []\n", string(out))

	_, err = engineResult(fnParse, []byte("error: bad input "))
	require.Error(t, err)
	assert.Equal(t, "engine contract_parse: bad input", err.Error())
}
