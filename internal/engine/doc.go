// Package engine defines the optional external transformation engine and
// loads it once.
//
// The engine is consumed through the Capability interface. A Loader builds
// the capability lazily on first use, checks its reported version against a
// semver constraint exactly once, and caches the outcome. Concurrent callers
// share a single in-flight load. An absent or incompatible engine is
// reported as a CapabilityUnavailableError so callers can fall back to the
// heuristic mapper.
//
// # WASM engines
//
// WASM hosts an engine compiled to WebAssembly with wazero. The module must
// export:
//
//	wasm_alloc(size u32) -> ptr u32
//	wasm_free(ptr u32, size u32)
//	contract_engine_version() -> u64
//	contract_parse(ptr u32, len u32) -> u64
//	contract_serialize(ptr u32, len u32) -> u64
//
// Strings cross the boundary as (ptr, len) pairs in linear memory. Results
// are packed as (ptr << 32) | len. A result starting with "error:" reports a
// failure; the remainder is the message.
package engine
