package wasm

import (
	"bytes"
	"fmt"
)

// Instruction is one WASM bytecode instruction: an opcode byte plus
// whatever immediate operand(s) that opcode carries, if any.
type Instruction struct {
	Opcode byte
	Imm    interface{}
}

// BlockImm is the block type immediate on block/loop/if. The loop-switch
// dispatch strategy in internal/wasmgen only ever needs a void block, so
// the only value it constructs is BlockImm{Type: BlockTypeVoid}.
type BlockImm struct {
	Type int32
}

// BranchImm is br's target, a label index counting outward from the
// innermost enclosing structured block.
type BranchImm struct {
	LabelIdx uint32
}

// BrTableImm is br_table's jump table: one label per case plus a default
// for any discriminant outside that range.
type BrTableImm struct {
	Labels  []uint32
	Default uint32
}

// CallImm is call's direct function index.
type CallImm struct {
	FuncIdx uint32
}

// LocalImm indexes a function's locals for local.get/local.set.
type LocalImm struct {
	LocalIdx uint32
}

// I32Imm, I64Imm, F32Imm, and F64Imm carry a *.const instruction's
// constant value.
type I32Imm struct{ Value int32 }
type I64Imm struct{ Value int64 }
type F32Imm struct{ Value float32 }
type F64Imm struct{ Value float64 }

// EncodeInstructions flattens a sequence of instructions to their binary
// bytecode representation, the form FuncBody.Code and Module.Encode both
// expect.
func EncodeInstructions(instrs []Instruction) []byte {
	var buf bytes.Buffer
	for _, instr := range instrs {
		encodeInstructionTo(&buf, instr)
	}
	return buf.Bytes()
}

func encodeInstructionTo(w *bytes.Buffer, instr Instruction) {
	w.WriteByte(instr.Opcode)
	switch instr.Opcode {
	case OpBlock, OpLoop, OpIf:
		WriteLEB128s(w, instr.Imm.(BlockImm).Type)
	case OpBr:
		WriteLEB128u(w, instr.Imm.(BranchImm).LabelIdx)
	case OpBrTable:
		imm := instr.Imm.(BrTableImm)
		WriteLEB128u(w, uint32(len(imm.Labels)))
		for _, l := range imm.Labels {
			WriteLEB128u(w, l)
		}
		WriteLEB128u(w, imm.Default)
	case OpCall:
		WriteLEB128u(w, instr.Imm.(CallImm).FuncIdx)
	case OpLocalGet, OpLocalSet:
		WriteLEB128u(w, instr.Imm.(LocalImm).LocalIdx)
	case OpI32Const:
		WriteLEB128s(w, instr.Imm.(I32Imm).Value)
	case OpI64Const:
		WriteLEB128s64(w, instr.Imm.(I64Imm).Value)
	case OpF32Const:
		WriteFloat32(w, instr.Imm.(F32Imm).Value)
	case OpF64Const:
		WriteFloat64(w, instr.Imm.(F64Imm).Value)
	case OpUnreachable, OpEnd, OpReturn,
		OpI32Eqz, OpI32Eq, OpI32Ne, OpI32LtS, OpI32GtS, OpI32LeS, OpI32GeS,
		OpI64Eq, OpI64Ne, OpI64LtS, OpI64GtS, OpI64LeS, OpI64GeS,
		OpF32Eq, OpF32Ne, OpF32Lt, OpF32Gt, OpF32Le, OpF32Ge,
		OpF64Eq, OpF64Ne, OpF64Lt, OpF64Gt, OpF64Le, OpF64Ge,
		OpI32Add, OpI32Sub, OpI32Mul, OpI32DivS, OpI32RemS, OpI32And, OpI32Or, OpI32Xor, OpI32Shl, OpI32ShrS,
		OpI64Add, OpI64Sub, OpI64Mul, OpI64DivS, OpI64RemS, OpI64And, OpI64Or, OpI64Xor, OpI64Shl, OpI64ShrS,
		OpF32Neg, OpF32Add, OpF32Sub, OpF32Mul, OpF32Div,
		OpF64Neg, OpF64Add, OpF64Sub, OpF64Mul, OpF64Div,
		OpI32WrapI64, OpI32TruncF64S, OpI64ExtendI32S, OpF64ConvertI32S, OpF64ConvertI64S:
		// No immediate.
	default:
		panic(fmt.Sprintf("wasm: unsupported opcode 0x%02x for this encoder's opcode subset", instr.Opcode))
	}
}
