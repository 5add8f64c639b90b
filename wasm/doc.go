// Package wasm encodes the WebAssembly core module sections
// internal/wasmgen assembles: function types, imports, the function and
// code sections, an optional linear memory, and exports.
//
// This package only writes binary modules; it does not parse or validate
// one. cmd/ariac run and internal/wasmgen's own tests load the resulting
// bytes into wazero, which does its own validation on compile.
//
// # Building a module
//
//	m := &wasm.Module{}
//	typeIdx := m.AddType(wasm.FuncType{Params: ..., Results: ...})
//	m.Funcs = append(m.Funcs, typeIdx)
//	m.Code = append(m.Code, wasm.FuncBody{Code: wasm.EncodeInstructions(instrs)})
//	bin := m.Encode()
package wasm
