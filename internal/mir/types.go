package mir

// TypeKind tags the variant of Type, following the type table in spec.md
// §3.5. A single Type struct rather than an interface hierarchy keeps
// structural equality (used heavily by the pattern compiler and the WIT
// renderer) a plain == / reflect.DeepEqual away, at the cost of unused
// fields on most variants — the tradeoff the teacher's own wasm.ValType /
// wit.Type pairing makes for the same reason.
type TypeKind int

const (
	KindBool TypeKind = iota
	KindChar
	KindUnit
	KindNever
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat
	KindFloat32
	KindFloat64
	KindString
	KindArray
	KindMap
	KindTuple
	KindOptional
	KindResult
	KindStruct
	KindEnum
	KindRef
	KindRefMut
	KindFnPtr
	KindClosure
	KindTypeVar
	KindTypeParam
)

func (k TypeKind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindUnit:
		return "Unit"
	case KindNever:
		return "Never"
	case KindInt:
		return "Int"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUInt:
		return "UInt"
	case KindUInt8:
		return "UInt8"
	case KindUInt16:
		return "UInt16"
	case KindUInt32:
		return "UInt32"
	case KindUInt64:
		return "UInt64"
	case KindFloat:
		return "Float"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindTuple:
		return "Tuple"
	case KindOptional:
		return "Optional"
	case KindResult:
		return "Result"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindRef:
		return "Ref"
	case KindRefMut:
		return "RefMut"
	case KindFnPtr:
		return "FnPtr"
	case KindClosure:
		return "Closure"
	case KindTypeVar:
		return "TypeVar"
	case KindTypeParam:
		return "TypeParam"
	default:
		return "Unknown"
	}
}

// Type is the core type representation. Only the fields relevant to Kind
// are populated; see the constructor helpers below.
type Type struct {
	Kind TypeKind

	Elem *Type // Array(T), Optional(T), Ref(T), RefMut(T)
	Key  *Type // Map(K, V)
	Val  *Type // Map(K, V)
	Elems []Type // Tuple([T])
	OK   *Type  // Result(T, E)
	Err  *Type  // Result(T, E)

	StructID StructID // Struct(id)
	EnumID   EnumID   // Enum(id)

	Name string // TypeParam(name) display name

	VarID int // TypeVar(id)

	Params  []Type // FnPtr/Closure signature
	Results []Type
}

func Bool() Type    { return Type{Kind: KindBool} }
func Char() Type    { return Type{Kind: KindChar} }
func Unit() Type    { return Type{Kind: KindUnit} }
func Never() Type   { return Type{Kind: KindNever} }
func Int() Type     { return Type{Kind: KindInt} }
func Int8() Type    { return Type{Kind: KindInt8} }
func Int16() Type   { return Type{Kind: KindInt16} }
func Int32() Type   { return Type{Kind: KindInt32} }
func Int64() Type   { return Type{Kind: KindInt64} }
func UInt() Type    { return Type{Kind: KindUInt} }
func UInt8() Type   { return Type{Kind: KindUInt8} }
func UInt16() Type  { return Type{Kind: KindUInt16} }
func UInt32() Type  { return Type{Kind: KindUInt32} }
func UInt64() Type  { return Type{Kind: KindUInt64} }
func Float() Type   { return Type{Kind: KindFloat} }
func Float32() Type { return Type{Kind: KindFloat32} }
func Float64() Type { return Type{Kind: KindFloat64} }
func String() Type  { return Type{Kind: KindString} }

func Array(elem Type) Type    { return Type{Kind: KindArray, Elem: &elem} }
func MapType(k, v Type) Type  { return Type{Kind: KindMap, Key: &k, Val: &v} }
func Tuple(elems ...Type) Type { return Type{Kind: KindTuple, Elems: elems} }
func Optional(elem Type) Type { return Type{Kind: KindOptional, Elem: &elem} }
func Result(ok, err Type) Type { return Type{Kind: KindResult, OK: &ok, Err: &err} }
func Struct(id StructID) Type { return Type{Kind: KindStruct, StructID: id} }
func Enum(id EnumID) Type     { return Type{Kind: KindEnum, EnumID: id} }
func Ref(elem Type) Type      { return Type{Kind: KindRef, Elem: &elem} }
func RefMut(elem Type) Type   { return Type{Kind: KindRefMut, Elem: &elem} }
func FnPtr(params, results []Type) Type {
	return Type{Kind: KindFnPtr, Params: params, Results: results}
}
func Closure(params, results []Type) Type {
	return Type{Kind: KindClosure, Params: params, Results: results}
}
func TypeVar(id int) Type       { return Type{Kind: KindTypeVar, VarID: id} }
func TypeParam(name string) Type { return Type{Kind: KindTypeParam, Name: name} }

// Struct-like and enum-like definitions, owned by Program (spec.md §3.1).

type FieldDef struct {
	Name string
	Type Type
}

type StructDef struct {
	ID     StructID
	Name   string
	Fields []FieldDef // ordered
}

type VariantDef struct {
	Name   string
	Fields []Type // ordered payload types
}

type EnumDef struct {
	ID       EnumID
	Name     string
	Variants []VariantDef // ordered
}
