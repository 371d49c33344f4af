package codec

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"contract-mapper/internal/document"
	"contract-mapper/internal/engine"
	"contract-mapper/internal/errors"
	"contract-mapper/model"
)

// passthroughEngine accepts canonical documents only, like a real engine
// would after its own conversion.
type passthroughEngine struct {
	version    string
	parseErr   error
	parsed     atomic.Int32
	serialized atomic.Int32
}

func (e *passthroughEngine) Version() string { return e.version }

func (e *passthroughEngine) ParseNative(_ context.Context, text []byte) (*yaml.Node, error) {
	e.parsed.Add(1)

	if e.parseErr != nil {
		return nil, e.parseErr
	}

	return document.Parse(text)
}

func (e *passthroughEngine) SerializeNative(_ context.Context, tree *yaml.Node) ([]byte, error) {
	e.serialized.Add(1)

	out, err := document.Emit(tree)
	if err != nil {
		return nil, err
	}

	return append([]byte("# rendered by engine\n"), out...), nil
}

const minimalContract = `
schema:
  - id: 0b6b0bbf-5f38-4f07-8e49-0c5a43b5a0d1
    name: orders
    properties:
      - id: 7f1e2d3c-4b5a-4968-8776-655443322110
        name: id
        logicalType: integer
        physicalType: bigint
        required: true
        primaryKey: true
      - id: 8b9c0d1e-2f3a-4b4c-8d5e-6f7a8b9c0d1e
        name: note
        logicalType: string
        physicalType: text
        customProperties:
          - property: pii
            value: false
`

func withEngine(e engine.Capability, constraint string) *Codec {
	return New(Options{Engine: engine.NewLoader(engine.Static(e), constraint)})
}

func TestFallbackEquivalence(t *testing.T) {
	fake := &passthroughEngine{version: "1.3.0"}

	native := mustImport(t, withEngine(fake, ""), []byte(minimalContract))
	fallback := mustImport(t, New(Options{}), []byte(minimalContract))

	assert.True(t, native.Native)
	assert.False(t, fallback.Native)
	assert.EqualValues(t, 1, fake.parsed.Load())
	assert.Empty(t, model.Diff(native.Model, fallback.Model))
	assert.False(t, native.Diagnostics.Has(CodeEngineUnavailable))
}

func TestFallbackEquivalenceExamples(t *testing.T) {
	text := readExample(t, "shop")

	native := mustImport(t, withEngine(&passthroughEngine{version: "1.0.0"}, ""), text)
	fallback := mustImport(t, New(Options{}), text)

	require.True(t, native.Native)
	assert.Empty(t, model.Diff(native.Model, fallback.Model))
}

func TestEngineUnavailableFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		codec func() *Codec
		warn  string
	}{
		{
			name: "incompatible version",
			codec: func() *Codec {
				return withEngine(&passthroughEngine{version: "2.1.0"}, "")
			},
			warn: "incompatible engine version",
		},
		{
			name: "parse failure",
			codec: func() *Codec {
				return withEngine(&passthroughEngine{version: "1.0.0", parseErr: errors.New("unsupported dialect")}, "")
			},
			warn: "unsupported dialect",
		},
		{
			name: "load failure",
			codec: func() *Codec {
				return New(Options{Engine: engine.NewLoader(func(context.Context) (engine.Capability, error) {
					return nil, errors.New("no such file")
				}, "")})
			},
			warn: "no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.codec()

			res := mustImport(t, c, []byte(minimalContract))
			assert.False(t, res.Native)
			require.Len(t, res.Model.Tables, 1)

			warnings := res.Diagnostics.WithCode(CodeEngineUnavailable)
			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0].Message, tt.warn)
		})
	}
}

func TestEngineDecodeFailureFallsBack(t *testing.T) {
	// Canonical decoding rejects a scalar where a sequence is required;
	// the heuristic mapper only warns.
	doc := []byte("schema:\n  - name: orders\n    tags: gold\n")

	res := mustImport(t, withEngine(&passthroughEngine{version: "1.0.0"}, ""), doc)
	assert.False(t, res.Native)
	assert.True(t, res.Diagnostics.Has(CodeEngineUnavailable))
	assert.Equal(t, "orders", res.Model.Tables[0].Name)
}

func TestNoEngineConfiguredIsSilent(t *testing.T) {
	res := mustImport(t, New(Options{}), []byte(minimalContract))
	assert.False(t, res.Diagnostics.Has(CodeEngineUnavailable))
}

func TestExportNative(t *testing.T) {
	fake := &passthroughEngine{version: "1.0.0"}
	c := withEngine(fake, "")

	m := mustImport(t, c, []byte(minimalContract)).Model

	out, diags, err := c.ExportNative(context.Background(), m)
	require.NoError(t, err)
	assert.False(t, diags.Has(CodeEngineUnavailable))
	assert.Contains(t, string(out), "# rendered by engine")
	assert.EqualValues(t, 1, fake.serialized.Load())

	plain, err := c.Export(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), string(plain))
}

func TestExportNativeFallsBack(t *testing.T) {
	c := withEngine(&passthroughEngine{version: "0.1.0"}, "")
	m := mustImport(t, New(Options{}), []byte(minimalContract)).Model

	out, diags, err := c.ExportNative(context.Background(), m)
	require.NoError(t, err)
	assert.True(t, diags.Has(CodeEngineUnavailable))

	plain, err := New(Options{}).Export(m)
	require.NoError(t, err)
	assert.Equal(t, string(plain), string(out))
}

func TestExportNativeLogsDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		version string
		native  bool
	}{
		{name: "engine renders", version: "1.0.0", native: true},
		{name: "engine too old", version: "0.1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			c := New(Options{
				Engine: engine.NewLoader(engine.Static(&passthroughEngine{version: tt.version}), ""),
				Logger: zap.New(core).Sugar(),
			})
			m := mustImport(t, New(Options{}), []byte(minimalContract)).Model

			out, diags, err := c.ExportNative(context.Background(), m)
			require.NoError(t, err)
			assert.Equal(t, tt.native, strings.HasPrefix(string(out), "# rendered by engine"))

			exported := logs.FilterField(zap.String("operation", "export"))
			assert.Equal(t, len(diags.All()), exported.Len(), spew.Sdump(logs.All()))
			assert.Equal(t, !tt.native, diags.Has(CodeEngineUnavailable))
		})
	}
}
