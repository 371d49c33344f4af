package engine

import (
	"bytes"
	"context"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"gopkg.in/yaml.v3"

	"contract-mapper/internal/document"
	"contract-mapper/internal/errors"
)

// Exported function names a WASM engine must provide.
const (
	fnAlloc     = "wasm_alloc"
	fnFree      = "wasm_free"
	fnVersion   = "contract_engine_version"
	fnParse     = "contract_parse"
	fnSerialize = "contract_serialize"
)

var requiredExports = []string{fnAlloc, fnFree, fnVersion, fnParse, fnSerialize}

// errorPrefix marks an engine-reported failure in a result string.
var errorPrefix = []byte("error:")

// WASM is a Capability backed by a WebAssembly module. A single module
// instance is reused for all calls; access is serialized by a mutex.
type WASM struct {
	runtime wazero.Runtime
	mod     api.Module
	version string

	mu sync.Mutex
}

// WASMFile returns a Factory loading the module at path.
func WASMFile(path string) Factory {
	return func(ctx context.Context) (Capability, error) {
		wasmBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read engine module %s", path)
		}

		return NewWASM(ctx, wasmBytes)
	}
}

// NewWASM compiles and instantiates wasmBytes and queries the engine
// version.
func NewWASM(ctx context.Context, wasmBytes []byte) (*WASM, error) {
	r := wazero.NewRuntime(ctx)

	compiled, err := r.CompileModule(ctx, wasmBytes)
	if err != nil {
		_ = r.Close(ctx)
		return nil, errors.Wrap(err, "wasm compile")
	}

	mod, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("contract-engine"))
	if err != nil {
		_ = r.Close(ctx)
		return nil, errors.Wrap(err, "wasm instantiate")
	}

	for _, name := range requiredExports {
		if mod.ExportedFunction(name) == nil {
			_ = r.Close(ctx)
			return nil, errors.Newf("wasm: missing export %q", name)
		}
	}

	if mod.Memory() == nil {
		_ = r.Close(ctx)
		return nil, errors.New("wasm: module exports no memory")
	}

	e := &WASM{runtime: r, mod: mod}

	version, err := e.callNoArgs(ctx, fnVersion)
	if err != nil {
		_ = r.Close(ctx)
		return nil, err
	}

	e.version = string(bytes.TrimSpace(version))

	return e, nil
}

// Version implements Capability.
func (e *WASM) Version() string {
	return e.version
}

// ParseNative implements Capability.
func (e *WASM) ParseNative(ctx context.Context, text []byte) (*yaml.Node, error) {
	out, err := e.call(ctx, fnParse, text)
	if err != nil {
		return nil, err
	}

	return document.Parse(out)
}

// SerializeNative implements Capability.
func (e *WASM) SerializeNative(ctx context.Context, tree *yaml.Node) ([]byte, error) {
	text, err := document.Emit(tree)
	if err != nil {
		return nil, err
	}

	return e.call(ctx, fnSerialize, text)
}

// Close releases all WASM resources.
func (e *WASM) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

func (e *WASM) call(ctx context.Context, fnName string, input []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out, err := callBytesFn(ctx, e.mod, fnName, input)
	if err != nil {
		return nil, err
	}

	return engineResult(fnName, out)
}

func (e *WASM) callNoArgs(ctx context.Context, fnName string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	packed, err := e.mod.ExportedFunction(fnName).Call(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "wasm call %s", fnName)
	}

	out, err := readResult(ctx, e.mod, fnName, packed[0])
	if err != nil {
		return nil, err
	}

	return engineResult(fnName, out)
}

func engineResult(fnName string, out []byte) ([]byte, error) {
	if msg, failed := bytes.CutPrefix(out, errorPrefix); failed {
		return nil, errors.Newf("engine %s: %s", fnName, string(bytes.TrimSpace(msg)))
	}

	return out, nil
}

// callBytesFn writes input into module memory, calls fnName with
// (ptr, len) and reads the packed result.
func callBytesFn(ctx context.Context, mod api.Module, fnName string, input []byte) ([]byte, error) {
	allocFn := mod.ExportedFunction(fnAlloc)
	freeFn := mod.ExportedFunction(fnFree)
	targetFn := mod.ExportedFunction(fnName)

	inputSize := uint64(len(input))

	var inputPtr uint64

	if inputSize > 0 {
		results, err := allocFn.Call(ctx, inputSize)
		if err != nil {
			return nil, errors.Wrapf(err, "wasm alloc for %s (size=%d)", fnName, inputSize)
		}

		inputPtr = results[0]
		if inputPtr == 0 {
			return nil, errors.Newf("wasm alloc returned null for %s (size=%d)", fnName, inputSize)
		}

		if !mod.Memory().Write(uint32(inputPtr), input) {
			_, _ = freeFn.Call(ctx, inputPtr, inputSize)
			return nil, errors.Newf("wasm %s memory write out of range at ptr=%d size=%d", fnName, inputPtr, inputSize)
		}
	}

	results, err := targetFn.Call(ctx, inputPtr, inputSize)

	if inputSize > 0 {
		if _, freeErr := freeFn.Call(ctx, inputPtr, inputSize); freeErr != nil && err == nil {
			return nil, errors.Wrapf(freeErr, "wasm %s: free input at ptr=%d size=%d", fnName, inputPtr, inputSize)
		}
	}

	if err != nil {
		return nil, errors.Wrapf(err, "wasm call %s", fnName)
	}

	return readResult(ctx, mod, fnName, results[0])
}

// readResult unpacks (ptr << 32) | len, copies the bytes out and frees them.
func readResult(ctx context.Context, mod api.Module, fnName string, packed uint64) ([]byte, error) {
	resultPtr := uint32(packed >> 32)
	resultLen := uint32(packed & 0xFFFFFFFF)

	if resultPtr == 0 || resultLen == 0 {
		return nil, errors.Newf("wasm %s returned null result (ptr=%d, len=%d)", fnName, resultPtr, resultLen)
	}

	view, ok := mod.Memory().Read(resultPtr, resultLen)
	if !ok {
		return nil, errors.Newf("wasm %s memory read out of range at ptr=%d len=%d", fnName, resultPtr, resultLen)
	}

	// The view aliases module memory and is invalid after free.
	out := bytes.Clone(view)

	if _, err := mod.ExportedFunction(fnFree).Call(ctx, uint64(resultPtr), uint64(resultLen)); err != nil {
		return nil, errors.Wrapf(err, "wasm %s: free result at ptr=%d size=%d", fnName, resultPtr, resultLen)
	}

	return out, nil
}
