package wasm

// WebAssembly binary format magic number and version.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01
)

// Section IDs define the binary identifiers for each module section this
// encoder emits. Sections must appear in increasing order by ID.
const (
	SectionType     byte = 1 // Type section (function signatures)
	SectionImport   byte = 2 // Import section
	SectionFunction byte = 3 // Function section (type indices)
	SectionMemory   byte = 5 // Memory section
	SectionExport   byte = 7 // Export section
	SectionCode     byte = 10 // Code section (function bodies)
)

// Import/Export descriptor kinds. Only func and memory ever flow through
// BuildModule: Aria's compiled programs import host effect handlers (always
// functions, resolved by internal/capability) and export either their
// public functions or, when a program needs linear memory, "memory" itself.
const (
	KindFunc   byte = 0
	KindMemory byte = 2
)

// Value type encodings, core types only.
const (
	ValI32 ValType = 0x7F // 32-bit integer: Bool, Char, every sub-64-bit int, and any linear-memory pointer
	ValI64 ValType = 0x7E // 64-bit integer: Int, UInt
	ValF32 ValType = 0x7D // 32-bit float
	ValF64 ValType = 0x7C // 64-bit float
)

// BlockTypeVoid marks a structured block with no result type, the only
// block shape the loop-switch dispatch strategy in internal/wasmgen emits.
const BlockTypeVoid int32 = -64 // 0x40

// Control flow opcodes.
const (
	OpUnreachable byte = 0x00
	OpBlock       byte = 0x02
	OpLoop        byte = 0x03
	OpIf          byte = 0x04
	OpEnd         byte = 0x0B
	OpBr          byte = 0x0C
	OpBrTable     byte = 0x0E
	OpReturn      byte = 0x0F
	OpCall        byte = 0x10
)

// Variable access opcodes.
const (
	OpLocalGet byte = 0x20
	OpLocalSet byte = 0x21
)

// Constant opcodes.
const (
	OpI32Const byte = 0x41
	OpI64Const byte = 0x42
	OpF32Const byte = 0x43
	OpF64Const byte = 0x44
)

// i32 comparison opcodes.
const (
	OpI32Eqz byte = 0x45
	OpI32Eq  byte = 0x46
	OpI32Ne  byte = 0x47
	OpI32LtS byte = 0x48
	OpI32GtS byte = 0x4A
	OpI32LeS byte = 0x4C
	OpI32GeS byte = 0x4E
)

// i64 comparison opcodes.
const (
	OpI64Eq  byte = 0x51
	OpI64Ne  byte = 0x52
	OpI64LtS byte = 0x53
	OpI64GtS byte = 0x55
	OpI64LeS byte = 0x57
	OpI64GeS byte = 0x59
)

// f32 comparison opcodes.
const (
	OpF32Eq byte = 0x5B
	OpF32Ne byte = 0x5C
	OpF32Lt byte = 0x5D
	OpF32Gt byte = 0x5E
	OpF32Le byte = 0x5F
	OpF32Ge byte = 0x60
)

// f64 comparison opcodes.
const (
	OpF64Eq byte = 0x61
	OpF64Ne byte = 0x62
	OpF64Lt byte = 0x63
	OpF64Gt byte = 0x64
	OpF64Le byte = 0x65
	OpF64Ge byte = 0x66
)

// i32 numeric opcodes.
const (
	OpI32Add  byte = 0x6A
	OpI32Sub  byte = 0x6B
	OpI32Mul  byte = 0x6C
	OpI32DivS byte = 0x6D
	OpI32RemS byte = 0x6F
	OpI32And  byte = 0x71
	OpI32Or   byte = 0x72
	OpI32Xor  byte = 0x73
	OpI32Shl  byte = 0x74
	OpI32ShrS byte = 0x75
)

// i64 numeric opcodes.
const (
	OpI64Add  byte = 0x7C
	OpI64Sub  byte = 0x7D
	OpI64Mul  byte = 0x7E
	OpI64DivS byte = 0x7F
	OpI64RemS byte = 0x81
	OpI64And  byte = 0x83
	OpI64Or   byte = 0x84
	OpI64Xor  byte = 0x85
	OpI64Shl  byte = 0x86
	OpI64ShrS byte = 0x87
)

// f32 numeric opcodes.
const (
	OpF32Neg byte = 0x8C
	OpF32Add byte = 0x92
	OpF32Sub byte = 0x93
	OpF32Mul byte = 0x94
	OpF32Div byte = 0x95
)

// f64 numeric opcodes.
const (
	OpF64Neg byte = 0x9A
	OpF64Add byte = 0xA0
	OpF64Sub byte = 0xA1
	OpF64Mul byte = 0xA2
	OpF64Div byte = 0xA3
)

// Conversion opcodes.
const (
	OpI32WrapI64     byte = 0xA7
	OpI32TruncF64S   byte = 0xAA
	OpI64ExtendI32S  byte = 0xAC
	OpF64ConvertI32S byte = 0xB7
	OpF64ConvertI64S byte = 0xB9
)

// Limits flags. BuildModule only ever emits a bounded-below, unbounded-above
// memory (no Max, not shared, not 64-bit), so Limits always encodes with
// flags byte 0x00.
const LimitsNoMax byte = 0x00

// Type section encodings.
const FuncTypeByte byte = 0x60
