// Package wasm assembles small WebAssembly core modules from raw
// instruction bytes.
//
// Only what the compatibility evaluator needs is supported: exported
// functions with a signature and a body, no imports, memory or tables.
//
// This package is internal to compat and should not be used directly.
package wasm

import (
	"github.com/tetratelabs/wazero/api"
)

// Opcodes used by the evaluator bodies.
const (
	OpEnd      byte = 0x0b
	OpLocalGet byte = 0x20
	OpI32Const byte = 0x41
	OpI32Sub   byte = 0x6b
	OpI32And   byte = 0x71
	OpI32Or    byte = 0x72
	OpI32Xor   byte = 0x73
	OpI32Shl   byte = 0x74
	OpI32ShrU  byte = 0x76
)

// ModuleBuilder builds a module exporting functions with inline bodies.
type ModuleBuilder struct {
	funcs []moduleFunc
}

type moduleFunc struct {
	name        string
	paramTypes  []api.ValueType
	resultTypes []api.ValueType
	body        []byte
}

// NewModuleBuilder creates an empty builder.
func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{}
}

// AddFunc adds an exported function. body holds the instructions without the
// trailing end opcode.
func (b *ModuleBuilder) AddFunc(name string, params, results []api.ValueType, body []byte) {
	b.funcs = append(b.funcs, moduleFunc{
		name:        name,
		paramTypes:  params,
		resultTypes: results,
		body:        body,
	})
}

// Len returns the number of functions added.
func (b *ModuleBuilder) Len() int {
	return len(b.funcs)
}

// Build generates the module bytes. It returns nil when no function was added.
func (b *ModuleBuilder) Build() []byte {
	if len(b.funcs) == 0 {
		return nil
	}

	var wasm []byte

	// Magic and version
	wasm = append(wasm, 0x00, 0x61, 0x73, 0x6d)
	wasm = append(wasm, 0x01, 0x00, 0x00, 0x00)

	wasm = append(wasm, section(0x01, b.buildTypeSection())...)
	wasm = append(wasm, section(0x03, b.buildFuncSection())...)
	wasm = append(wasm, section(0x07, b.buildExportSection())...)
	wasm = append(wasm, section(0x0a, b.buildCodeSection())...)

	return wasm
}

// Each function gets its own type entry; index i is both type and function index.
func (b *ModuleBuilder) buildTypeSection() []byte {
	var sec []byte
	sec = append(sec, EncodeULEB128(uint32(len(b.funcs)))...)

	for _, f := range b.funcs {
		sec = append(sec, 0x60)
		sec = append(sec, EncodeULEB128(uint32(len(f.paramTypes)))...)
		for _, t := range f.paramTypes {
			sec = append(sec, ValTypeToWasm(t))
		}
		sec = append(sec, EncodeULEB128(uint32(len(f.resultTypes)))...)
		for _, t := range f.resultTypes {
			sec = append(sec, ValTypeToWasm(t))
		}
	}

	return sec
}

func (b *ModuleBuilder) buildFuncSection() []byte {
	var sec []byte
	sec = append(sec, EncodeULEB128(uint32(len(b.funcs)))...)
	for i := range b.funcs {
		sec = append(sec, EncodeULEB128(uint32(i))...)
	}
	return sec
}

func (b *ModuleBuilder) buildExportSection() []byte {
	var sec []byte
	sec = append(sec, EncodeULEB128(uint32(len(b.funcs)))...)
	for i, f := range b.funcs {
		sec = append(sec, name(f.name)...)
		sec = append(sec, 0x00)
		sec = append(sec, EncodeULEB128(uint32(i))...)
	}
	return sec
}

func (b *ModuleBuilder) buildCodeSection() []byte {
	var sec []byte
	sec = append(sec, EncodeULEB128(uint32(len(b.funcs)))...)
	for _, f := range b.funcs {
		body := b.buildFuncBody(f)
		sec = append(sec, EncodeULEB128(uint32(len(body)))...)
		sec = append(sec, body...)
	}
	return sec
}

func (b *ModuleBuilder) buildFuncBody(f moduleFunc) []byte {
	var body []byte
	body = append(body, 0x00) // no locals beyond params
	body = append(body, f.body...)
	body = append(body, OpEnd)
	return body
}

// LocalGet returns the instruction reading parameter idx.
func LocalGet(idx uint32) []byte {
	return append([]byte{OpLocalGet}, EncodeULEB128(idx)...)
}

// I32Const returns the instruction pushing v.
func I32Const(v int32) []byte {
	return append([]byte{OpI32Const}, EncodeSLEB128(v)...)
}

// Seq concatenates instruction fragments.
func Seq(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
