package wasmgen

import (
	"fmt"

	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/wasm"
)

// localMap assigns every mir.LocalID a WASM local index. Params occupy
// indices 0..len(Params)-1 in declaration order (WASM requires function
// parameters to be its first locals); every other local (the return
// place at Local(0) and every temporary/binding) gets an index starting
// right after the params, in ascending LocalID order.
type localMap struct {
	index []uint32 // by mir.LocalID
	extra []wasm.ValType
}

func buildLocalMap(fn *mir.Function) localMap {
	lm := localMap{index: make([]uint32, len(fn.Locals))}
	isParam := make([]bool, len(fn.Locals))
	for i, id := range fn.Params {
		lm.index[id] = uint32(i)
		isParam[id] = true
	}
	next := uint32(len(fn.Params))
	for id := range fn.Locals {
		if isParam[mir.LocalID(id)] {
			continue
		}
		lm.index[id] = next
		lm.extra = append(lm.extra, ValType(fn.Locals[id].Type))
		next++
	}
	return lm
}

func (lm localMap) idx(l mir.LocalID) uint32 { return lm.index[l] }

// codegenState carries the per-function state the statement/terminator
// lowering needs: the local map, the other functions' WASM indices for
// direct calls, and the extra "pc" and dispatch-helper locals the
// loop-switch control-flow strategy allocates (codegen.go's own design;
// the original crate's instruction-level MIR->WASM backend did not
// survive retrieval, see the package doc comment).
type codegenState struct {
	fn        *mir.Function
	locals    localMap
	funcIndex map[mir.FunctionID]uint32
	pcLocal   uint32

	// loopDepth is the br depth that reaches the outer dispatch loop from
	// the basic block currently being lowered. It varies per block
	// because each case's code sits at a different nesting depth in the
	// wrapped-block structure lowerDispatch builds (case i is enclosed by
	// n-1-i blocks before the loop); compileFunction's single-block fast
	// path never dispatches, so the field is unused there.
	loopDepth uint32
}

// compileFunction lowers one MIR function body to a wasm.FuncBody.
//
// WASM has no arbitrary goto, so an MIR function with more than one basic
// block compiles via a "loop switch": a pc local holds the current block
// id, the body is an outer loop containing one nested block per basic
// block (nested from the highest id down to block 0), and a br_table at
// the innermost position dispatches by reading pc — branching to depth k
// lands exactly at the start of block k's code, so the branch table is
// simply the identity mapping [0, 1, ..., N-1]. Each block's own code ends
// by either setting pc and branching back to the loop (Goto/SwitchInt) or
// executing a WASM `return` directly (Return), which unwinds out of every
// enclosing block regardless of nesting depth.
func compileFunction(fn *mir.Function, funcIndex map[mir.FunctionID]uint32) (wasm.FuncBody, error) {
	lm := buildLocalMap(fn)
	pcLocal := uint32(len(fn.Params)) + uint32(len(lm.extra))
	lm.extra = append(lm.extra, wasm.ValI32, wasm.ValI32) // pc, switch-discriminant scratch

	st := &codegenState{fn: fn, locals: lm, funcIndex: funcIndex, pcLocal: pcLocal}

	var instrs []wasm.Instruction
	switch {
	case len(fn.Blocks) == 0:
		return wasm.FuncBody{}, fmt.Errorf("function %q has no basic blocks", fn.Name)
	case len(fn.Blocks) == 1:
		body, err := st.lowerBlock(fn.Blocks[0])
		if err != nil {
			return wasm.FuncBody{}, err
		}
		instrs = body
	default:
		body, err := st.lowerDispatch()
		if err != nil {
			return wasm.FuncBody{}, err
		}
		instrs = body
	}

	// Every MIR function has a Return or Unreachable along all paths (the
	// optimizer/CFG builder's own invariant), so control never actually
	// falls off the end of the instruction stream; the trailing
	// unreachable/end pair is just the well-formed function-body
	// terminator WASM's binary format requires.
	instrs = append(instrs, wasm.Instruction{Opcode: wasm.OpUnreachable}, wasm.Instruction{Opcode: wasm.OpEnd})

	locals := make([]wasm.LocalEntry, len(lm.extra))
	for i, vt := range lm.extra {
		locals[i] = wasm.LocalEntry{Count: 1, ValType: vt}
	}

	return wasm.FuncBody{Locals: locals, Code: wasm.EncodeInstructions(instrs)}, nil
}

func (st *codegenState) lowerDispatch() ([]wasm.Instruction, error) {
	n := len(st.fn.Blocks)

	var cases [][]wasm.Instruction
	for i, bb := range st.fn.Blocks {
		st.loopDepth = uint32(n - 1 - i)
		code, err := st.lowerBlock(bb)
		if err != nil {
			return nil, err
		}
		cases = append(cases, code)
	}

	labels := make([]uint32, n)
	for i := range labels {
		labels[i] = uint32(i)
	}
	brTable := wasm.Instruction{Opcode: wasm.OpBrTable, Imm: wasm.BrTableImm{Labels: labels, Default: uint32(n - 1)}}

	// Build from the innermost block outward: block_0 { brTable };
	// wrapped in block_1 { block_0 ; case_0 }; wrapped in
	// block_2 { block_1 ; case_1 }; ... up to block_{n-1}, all inside one
	// outer loop.
	body := []wasm.Instruction{brTable}
	for i := 0; i < n; i++ {
		inner := append([]wasm.Instruction{{Opcode: wasm.OpBlock, Imm: wasm.BlockImm{Type: wasm.BlockTypeVoid}}}, body...)
		inner = append(inner, wasm.Instruction{Opcode: wasm.OpEnd})
		inner = append(inner, cases[i]...)
		body = inner
	}

	loop := []wasm.Instruction{{Opcode: wasm.OpLoop, Imm: wasm.BlockImm{Type: wasm.BlockTypeVoid}}}
	loop = append(loop, body...)
	loop = append(loop, wasm.Instruction{Opcode: wasm.OpEnd})
	return loop, nil
}

func (st *codegenState) gotoTarget(target mir.BlockID) []wasm.Instruction {
	if len(st.fn.Blocks) <= 1 {
		return nil
	}
	return []wasm.Instruction{
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(target)}},
		{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: st.pcLocal}},
		{Opcode: wasm.OpBr, Imm: wasm.BranchImm{LabelIdx: st.loopDepth}},
	}
}

func (st *codegenState) lowerBlock(bb *mir.BasicBlock) ([]wasm.Instruction, error) {
	// Effect statements and terminators live in the function's side tables
	// (their block slots hold Nop placeholders); this backend has no
	// lowering for them, so reject the block rather than drop the effect.
	if len(st.fn.EffectStatements[bb.ID]) > 0 {
		return nil, fmt.Errorf("wasmgen: block %d performs effect operations, which this backend does not lower", bb.ID)
	}
	if _, ok := st.fn.EffectTerminators[bb.ID]; ok {
		return nil, fmt.Errorf("wasmgen: block %d ends in an effect terminator, which needs continuation capture this backend does not implement", bb.ID)
	}
	var out []wasm.Instruction
	for _, stmt := range bb.Statements {
		code, err := st.lowerStatement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
	}
	code, err := st.lowerTerminator(bb.Terminator)
	if err != nil {
		return nil, err
	}
	return append(out, code...), nil
}

func (st *codegenState) lowerStatement(s mir.Statement) ([]wasm.Instruction, error) {
	switch v := s.(type) {
	case mir.Assign:
		val, err := st.lowerRvalue(v.RHS)
		if err != nil {
			return nil, err
		}
		store, err := st.storeTo(v.Place)
		if err != nil {
			return nil, err
		}
		return append(val, store...), nil
	case mir.StorageLive, mir.StorageDead, mir.Nop:
		return nil, nil
	default:
		return nil, fmt.Errorf("wasmgen: unsupported statement %T", s)
	}
}

// storeTo writes the top-of-stack value to place. Only bare-local places
// (no projection) are supported directly; a projected place (field/index
// write into an aggregate) requires the linear-memory object layout this
// package does not implement, and is rejected explicitly rather than
// silently mis-lowered.
func (st *codegenState) storeTo(p mir.Place) ([]wasm.Instruction, error) {
	if len(p.Projection) > 0 {
		return nil, fmt.Errorf("wasmgen: projected place writes (field/index/deref) need linear-memory layout, not yet implemented")
	}
	return []wasm.Instruction{{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: st.locals.idx(p.Local)}}}, nil
}

func (st *codegenState) lowerRvalue(r mir.Rvalue) ([]wasm.Instruction, error) {
	switch v := r.(type) {
	case mir.Use:
		return st.lowerOperand(v.Operand)
	case mir.BinaryOp:
		return st.lowerBinaryOp(v)
	case mir.UnaryOp:
		return st.lowerUnaryOp(v)
	case mir.Cast:
		return st.lowerCast(v)
	default:
		return nil, fmt.Errorf("wasmgen: unsupported rvalue %T (aggregate/closure/reference construction needs a linear-memory allocator this backend does not implement)", r)
	}
}

func (st *codegenState) lowerOperand(op mir.Operand) ([]wasm.Instruction, error) {
	switch v := op.(type) {
	case mir.Copy:
		if len(v.Place.Projection) > 0 {
			return nil, fmt.Errorf("wasmgen: projected place reads (field/index/deref) need linear-memory layout, not yet implemented")
		}
		return []wasm.Instruction{{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: st.locals.idx(v.Place.Local)}}}, nil
	case mir.Move:
		if len(v.Place.Projection) > 0 {
			return nil, fmt.Errorf("wasmgen: projected place reads (field/index/deref) need linear-memory layout, not yet implemented")
		}
		return []wasm.Instruction{{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: st.locals.idx(v.Place.Local)}}}, nil
	case mir.Constant:
		return st.lowerConstant(v)
	default:
		return nil, fmt.Errorf("wasmgen: unsupported operand %T", op)
	}
}

func (st *codegenState) lowerConstant(c mir.Constant) ([]wasm.Instruction, error) {
	switch val := c.Value.(type) {
	case bool:
		i := int32(0)
		if val {
			i = 1
		}
		return []wasm.Instruction{{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: i}}}, nil
	case nil:
		return []wasm.Instruction{{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 0}}}, nil
	case int64:
		if ValType(c.Type) == wasm.ValI64 {
			return []wasm.Instruction{{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: val}}}, nil
		}
		return []wasm.Instruction{{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(val)}}}, nil
	case uint64:
		if ValType(c.Type) == wasm.ValI64 {
			return []wasm.Instruction{{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: int64(val)}}}, nil
		}
		return []wasm.Instruction{{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(val)}}}, nil
	case float64:
		if ValType(c.Type) == wasm.ValF32 {
			return []wasm.Instruction{{Opcode: wasm.OpF32Const, Imm: wasm.F32Imm{Value: float32(val)}}}, nil
		}
		return []wasm.Instruction{{Opcode: wasm.OpF64Const, Imm: wasm.F64Imm{Value: val}}}, nil
	case string:
		// String constants need a linear-memory data segment this
		// backend does not yet lay out; reject rather than emit a
		// dangling pointer.
		return nil, fmt.Errorf("wasmgen: string constants require linear-memory layout, not yet implemented")
	default:
		return nil, fmt.Errorf("wasmgen: unsupported constant kind %T", c.Value)
	}
}

var intBinOp = map[mir.BinOp]struct{ i32, i64 byte }{
	mir.BinAdd: {wasm.OpI32Add, wasm.OpI64Add},
	mir.BinSub: {wasm.OpI32Sub, wasm.OpI64Sub},
	mir.BinMul: {wasm.OpI32Mul, wasm.OpI64Mul},
	mir.BinDiv: {wasm.OpI32DivS, wasm.OpI64DivS},
	mir.BinRem: {wasm.OpI32RemS, wasm.OpI64RemS},
	mir.BinAnd: {wasm.OpI32And, wasm.OpI64And},
	mir.BinOr:  {wasm.OpI32Or, wasm.OpI64Or},
	mir.BinXor: {wasm.OpI32Xor, wasm.OpI64Xor},
	mir.BinShl: {wasm.OpI32Shl, wasm.OpI64Shl},
	mir.BinShr: {wasm.OpI32ShrS, wasm.OpI64ShrS},
	mir.BinEq:  {wasm.OpI32Eq, wasm.OpI64Eq},
	mir.BinNe:  {wasm.OpI32Ne, wasm.OpI64Ne},
	mir.BinLt:  {wasm.OpI32LtS, wasm.OpI64LtS},
	mir.BinLe:  {wasm.OpI32LeS, wasm.OpI64LeS},
	mir.BinGt:  {wasm.OpI32GtS, wasm.OpI64GtS},
	mir.BinGe:  {wasm.OpI32GeS, wasm.OpI64GeS},
}

var floatBinOp = map[mir.BinOp]struct{ f32, f64 byte }{
	mir.BinAdd: {wasm.OpF32Add, wasm.OpF64Add},
	mir.BinSub: {wasm.OpF32Sub, wasm.OpF64Sub},
	mir.BinMul: {wasm.OpF32Mul, wasm.OpF64Mul},
	mir.BinDiv: {wasm.OpF32Div, wasm.OpF64Div},
	mir.BinEq:  {wasm.OpF32Eq, wasm.OpF64Eq},
	mir.BinNe:  {wasm.OpF32Ne, wasm.OpF64Ne},
	mir.BinLt:  {wasm.OpF32Lt, wasm.OpF64Lt},
	mir.BinLe:  {wasm.OpF32Le, wasm.OpF64Le},
	mir.BinGt:  {wasm.OpF32Gt, wasm.OpF64Gt},
	mir.BinGe:  {wasm.OpF32Ge, wasm.OpF64Ge},
}

func (st *codegenState) lowerBinaryOp(v mir.BinaryOp) ([]wasm.Instruction, error) {
	x, err := st.lowerOperand(v.X)
	if err != nil {
		return nil, err
	}
	y, err := st.lowerOperand(v.Y)
	if err != nil {
		return nil, err
	}
	out := append(x, y...)

	operandType := st.operandType(v.X)
	switch operandType {
	case wasm.ValF32:
		if ops, ok := floatBinOp[v.Op]; ok {
			return append(out, wasm.Instruction{Opcode: ops.f32}), nil
		}
	case wasm.ValF64:
		if ops, ok := floatBinOp[v.Op]; ok {
			return append(out, wasm.Instruction{Opcode: ops.f64}), nil
		}
	case wasm.ValI64:
		if ops, ok := intBinOp[v.Op]; ok {
			return append(out, wasm.Instruction{Opcode: ops.i64}), nil
		}
	default:
		if v.Op == mir.BinLogicalAnd {
			return append(out, wasm.Instruction{Opcode: wasm.OpI32And}), nil
		}
		if v.Op == mir.BinLogicalOr {
			return append(out, wasm.Instruction{Opcode: wasm.OpI32Or}), nil
		}
		if ops, ok := intBinOp[v.Op]; ok {
			return append(out, wasm.Instruction{Opcode: ops.i32}), nil
		}
	}
	return nil, fmt.Errorf("wasmgen: unsupported binary op %v for operand type %v", v.Op, operandType)
}

func (st *codegenState) lowerUnaryOp(v mir.UnaryOp) ([]wasm.Instruction, error) {
	x, err := st.lowerOperand(v.X)
	if err != nil {
		return nil, err
	}
	switch v.Op {
	case mir.UnNot:
		return append(x, wasm.Instruction{Opcode: wasm.OpI32Eqz}), nil
	case mir.UnNeg:
		switch st.operandType(v.X) {
		case wasm.ValF32:
			return append(x, wasm.Instruction{Opcode: wasm.OpF32Neg}), nil
		case wasm.ValF64:
			return append(x, wasm.Instruction{Opcode: wasm.OpF64Neg}), nil
		case wasm.ValI64:
			zero := wasm.Instruction{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: 0}}
			return append(append([]wasm.Instruction{zero}, x...), wasm.Instruction{Opcode: wasm.OpI64Sub}), nil
		default:
			zero := wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 0}}
			return append(append([]wasm.Instruction{zero}, x...), wasm.Instruction{Opcode: wasm.OpI32Sub}), nil
		}
	default:
		return nil, fmt.Errorf("wasmgen: unsupported unary op %v", v.Op)
	}
}

func (st *codegenState) lowerCast(v mir.Cast) ([]wasm.Instruction, error) {
	x, err := st.lowerOperand(v.Operand)
	if err != nil {
		return nil, err
	}
	from := st.operandType(v.Operand)
	to := ValType(v.To)
	if from == to {
		return x, nil
	}
	switch {
	case from == wasm.ValI64 && to == wasm.ValI32:
		return append(x, wasm.Instruction{Opcode: wasm.OpI32WrapI64}), nil
	case from == wasm.ValI32 && to == wasm.ValI64:
		return append(x, wasm.Instruction{Opcode: wasm.OpI64ExtendI32S}), nil
	case from == wasm.ValI32 && to == wasm.ValF64:
		return append(x, wasm.Instruction{Opcode: wasm.OpF64ConvertI32S}), nil
	case from == wasm.ValI64 && to == wasm.ValF64:
		return append(x, wasm.Instruction{Opcode: wasm.OpF64ConvertI64S}), nil
	case from == wasm.ValF64 && to == wasm.ValI32:
		return append(x, wasm.Instruction{Opcode: wasm.OpI32TruncF64S}), nil
	case from == wasm.ValF64 && to == wasm.ValI64:
		return append(x, wasm.Instruction{Opcode: wasm.OpI32TruncF64S}, wasm.Instruction{Opcode: wasm.OpI64ExtendI32S}), nil
	default:
		return nil, fmt.Errorf("wasmgen: unsupported cast %v -> %v", from, to)
	}
}

// operandType infers the ValType an operand occupies on the stack,
// consulting the function's local declarations for Copy/Move and the
// constant's own Type for Constant.
func (st *codegenState) operandType(op mir.Operand) wasm.ValType {
	switch v := op.(type) {
	case mir.Copy:
		return ValType(st.fn.Locals[v.Place.Local].Type)
	case mir.Move:
		return ValType(st.fn.Locals[v.Place.Local].Type)
	case mir.Constant:
		return ValType(v.Type)
	default:
		return wasm.ValI32
	}
}

func (st *codegenState) lowerTerminator(t mir.Terminator) ([]wasm.Instruction, error) {
	switch v := t.(type) {
	case mir.Goto:
		return st.gotoTarget(v.Target), nil

	case mir.Return:
		// The caller's Assign statements have already written the
		// return value into Local(0) (mir.ReturnPlace); push it unless
		// the function returns Unit, which WASM erases to zero results.
		if st.fn.ReturnType.Kind == mir.KindUnit {
			return []wasm.Instruction{{Opcode: wasm.OpReturn}}, nil
		}
		return []wasm.Instruction{
			{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: st.locals.idx(mir.ReturnPlace)}},
			{Opcode: wasm.OpReturn},
		}, nil

	case mir.Unreachable:
		return []wasm.Instruction{{Opcode: wasm.OpUnreachable}}, nil

	case mir.SwitchInt:
		return st.lowerSwitchInt(v)

	case mir.Call:
		return st.lowerCall(v)

	case mir.Drop:
		// Destructor invocation needs the object-layout/vtable machinery
		// this backend doesn't implement; scalars need no destructor, so
		// Drop lowers to a bare jump to its continuation.
		return st.gotoTarget(v.Target), nil

	case mir.Assert:
		cond, err := st.lowerOperand(v.Cond)
		if err != nil {
			return nil, err
		}
		expected := int32(0)
		if v.Expected {
			expected = 1
		}
		out := append(cond, wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: expected}})
		out = append(out, wasm.Instruction{Opcode: wasm.OpI32Eq})
		out = append(out, wasm.Instruction{Opcode: wasm.OpI32Eqz})
		out = append(out, wasm.Instruction{Opcode: wasm.OpIf, Imm: wasm.BlockImm{Type: wasm.BlockTypeVoid}})
		out = append(out, wasm.Instruction{Opcode: wasm.OpUnreachable})
		out = append(out, wasm.Instruction{Opcode: wasm.OpEnd})
		out = append(out, st.gotoTarget(v.Target)...)
		return out, nil

	default:
		return nil, fmt.Errorf("wasmgen: unsupported terminator %T (effect handler terminators require continuation capture this backend does not implement)", t)
	}
}

// lowerSwitchInt tests the discriminant against every case value in turn,
// branching to each target's block on the first match and to Otherwise
// otherwise. The discriminant is wrapped to i32 if wider, sufficient for
// the enum-tag and small-integer switches this IR actually produces.
func (st *codegenState) lowerSwitchInt(v mir.SwitchInt) ([]wasm.Instruction, error) {
	disc, err := st.lowerOperand(v.Discriminant)
	if err != nil {
		return nil, err
	}
	if st.operandType(v.Discriminant) == wasm.ValI64 {
		disc = append(disc, wasm.Instruction{Opcode: wasm.OpI32WrapI64})
	}
	discLocal := st.pcLocal + 1 // scratch local for the re-read discriminant
	var out []wasm.Instruction
	out = append(out, disc...)
	out = append(out, wasm.Instruction{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: discLocal}})

	for _, c := range v.Cases {
		out = append(out, wasm.Instruction{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: discLocal}})
		out = append(out, wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(c.Value)}})
		out = append(out, wasm.Instruction{Opcode: wasm.OpI32Eq})
		out = append(out, wasm.Instruction{Opcode: wasm.OpIf, Imm: wasm.BlockImm{Type: wasm.BlockTypeVoid}})
		// The `if` adds one label between this branch and the dispatch loop.
		st.loopDepth++
		out = append(out, st.gotoTarget(c.Target)...)
		st.loopDepth--
		out = append(out, wasm.Instruction{Opcode: wasm.OpEnd})
	}
	out = append(out, st.gotoTarget(v.Otherwise)...)
	return out, nil
}

func (st *codegenState) lowerCall(v mir.Call) ([]wasm.Instruction, error) {
	if v.FuncOperand != nil {
		return nil, fmt.Errorf("wasmgen: indirect (closure) calls require a function table this backend does not implement")
	}
	var out []wasm.Instruction
	for _, a := range v.Args {
		code, err := st.lowerOperand(a)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
	}
	idx, ok := st.funcIndex[v.FuncID]
	if !ok {
		return nil, fmt.Errorf("wasmgen: call to unknown function id %d", v.FuncID)
	}
	out = append(out, wasm.Instruction{Opcode: wasm.OpCall, Imm: wasm.CallImm{FuncIdx: idx}})
	if v.Dest != nil {
		store, err := st.storeTo(*v.Dest)
		if err != nil {
			return nil, err
		}
		out = append(out, store...)
	}
	if v.Target != nil {
		out = append(out, st.gotoTarget(*v.Target)...)
	} else {
		// A call with no continuation target never returns control to
		// this function (spec.md's Never-typed call), so there is no
		// well-typed value to hand to `return`.
		out = append(out, wasm.Instruction{Opcode: wasm.OpUnreachable})
	}
	return out, nil
}
