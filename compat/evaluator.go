// Package compat reproduces 32-bit machine-integer bitwise semantics as a
// reference for comparing against the exact evaluator in package bitwise.
//
// Operands are truncated to 32 bits (ToInt32). AND, OR, XOR, NOT and the
// left shift produce signed 32-bit results; the right shift is a logical
// shift producing an unsigned result. The width mask is (1 << w) - 1 with the
// shift count taken modulo 32, so a width of 32 masks NOT and SHL to zero.
// Results are only meaningful for widths up to 32.
//
// The operations run as i32 instructions of a WebAssembly module assembled at
// startup and executed by wazero, which gives exactly these semantics.
package compat

import (
	"context"
	"math/big"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/bitwise"
	"github.com/wippyai/bitlab/compat/internal/wasm"
	"github.com/wippyai/bitlab/errors"
)

const moduleName = "bitlab-compat32"

// Each export takes (a, b, width) as i32 and returns an i32.
var exports = map[bitwise.Op]struct {
	name string
	body []byte
}{
	bitwise.AND: {"and", wasm.Seq(wasm.LocalGet(0), wasm.LocalGet(1), []byte{wasm.OpI32And})},
	bitwise.OR:  {"or", wasm.Seq(wasm.LocalGet(0), wasm.LocalGet(1), []byte{wasm.OpI32Or})},
	bitwise.XOR: {"xor", wasm.Seq(wasm.LocalGet(0), wasm.LocalGet(1), []byte{wasm.OpI32Xor})},
	bitwise.NOT: {"not", wasm.Seq(
		wasm.LocalGet(0), wasm.I32Const(-1), []byte{wasm.OpI32Xor},
		widthMask(),
		[]byte{wasm.OpI32And},
	)},
	bitwise.SHL: {"shl", wasm.Seq(
		wasm.LocalGet(0), wasm.I32Const(1), []byte{wasm.OpI32Shl},
		widthMask(),
		[]byte{wasm.OpI32And},
	)},
	bitwise.SHR: {"shr", wasm.Seq(wasm.LocalGet(0), wasm.I32Const(1), []byte{wasm.OpI32ShrU})},
}

// widthMask pushes (1 << width) - 1.
func widthMask() []byte {
	return wasm.Seq(
		wasm.I32Const(1), wasm.LocalGet(2), []byte{wasm.OpI32Shl},
		wasm.I32Const(1), []byte{wasm.OpI32Sub},
	)
}

// Module returns the bytes of the reference module.
func Module() []byte {
	params := []api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32}
	results := []api.ValueType{api.ValueTypeI32}

	b := wasm.NewModuleBuilder()
	for _, op := range bitwise.Ops {
		e := exports[op]
		b.AddFunc(e.name, params, results, e.body)
	}
	return b.Build()
}

// Evaluator runs the reference module. Calls are serialized.
type Evaluator struct {
	mu      sync.Mutex
	runtime wazero.Runtime
	module  api.Module
	funcs   map[bitwise.Op]api.Function
}

// New compiles and instantiates the reference module.
func New(ctx context.Context) (*Evaluator, error) {
	rt := wazero.NewRuntime(ctx)

	compiled, err := rt.CompileModule(ctx, Module())
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInstantiation, err, "compile reference module")
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(moduleName))
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Instantiation(err)
	}

	funcs := make(map[bitwise.Op]api.Function, len(exports))
	for op, e := range exports {
		fn := mod.ExportedFunction(e.name)
		if fn == nil {
			rt.Close(ctx)
			return nil, errors.NotFound(errors.PhaseRuntime, "export", e.name)
		}
		funcs[op] = fn
	}

	Logger().Debug("reference module ready",
		zap.String("module", moduleName),
		zap.Int("exports", len(funcs)),
	)

	return &Evaluator{runtime: rt, module: mod, funcs: funcs}, nil
}

// Apply evaluates op the way 32-bit machine integers do. The returned value is
// signed for every operation except SHR.
func (e *Evaluator) Apply(ctx context.Context, op bitwise.Op, a, b *big.Int, w bitlab.Width) (int64, error) {
	if err := w.Check(errors.PhaseEvaluate); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.runtime == nil {
		return 0, errors.NotInitialized(errors.PhaseRuntime, "compat evaluator")
	}
	fn, ok := e.funcs[op]
	if !ok {
		return 0, errors.New(errors.PhaseEvaluate, errors.KindUnsupported).
			Value(int(op)).
			Detail("unknown operation %d", int(op)).
			Build()
	}

	var bv uint32
	if b != nil {
		bv = ToUint32(b)
	}
	res, err := fn.Call(ctx, uint64(ToUint32(a)), uint64(bv), uint64(w))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidInput, err, "call "+op.String())
	}

	raw := uint32(res[0])
	if op == bitwise.SHR {
		return int64(raw), nil
	}
	return int64(int32(raw)), nil
}

// Close releases the wazero runtime. Apply fails after Close.
func (e *Evaluator) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.runtime == nil {
		return nil
	}
	err := e.runtime.Close(ctx)
	e.runtime = nil
	e.module = nil
	e.funcs = nil
	return err
}

// ToUint32 truncates v to its low 32 bits in two's complement.
func ToUint32(v *big.Int) uint32 {
	m := new(big.Int).Mod(v, bitlab.Width32.Modulus())
	return uint32(m.Uint64())
}
