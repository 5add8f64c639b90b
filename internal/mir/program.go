package mir

// LocalDecl describes one local slot: a parameter, a user binding, a
// temporary, or (for Local(0)) the return place.
type LocalDecl struct {
	Type    Type
	Mutable bool
	Name    string // empty for compiler-generated temporaries
}

// BasicBlock is a maximal straight-line sequence of statements ending in
// exactly one terminator (spec.md GLOSSARY).
type BasicBlock struct {
	ID         BlockID
	Statements []Statement
	Terminator Terminator
}

// Function owns its locals and control-flow graph, plus (for effectful
// functions) the evidence extension described in spec.md §3.2.
type Function struct {
	ID   FunctionID
	Name string

	Locals []LocalDecl // Local(0) = return place, Local(1..=N) = params
	Blocks []*BasicBlock
	Params []LocalID

	ReturnType Type
	EffectRow  EffectRow
	IsPublic   bool
	Attributes []string // e.g. "inline(never)", "contract"

	// Evidence extension.
	EvidenceParams    []EvidenceParam
	EvidenceLayout    map[EffectID]uint32 // effect -> static slot index
	HandlerBlocks     map[HandlerID]BlockID
	EffectStatements  map[BlockID]map[int]EffectStatementKind
	EffectTerminators map[BlockID]EffectTerminatorKind
}

// Block looks up a basic block by id, or nil if out of range.
func (f *Function) Block(id BlockID) *BasicBlock {
	if int(id) < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return f.Blocks[id]
}

// HasAttribute reports whether the function carries the named attribute.
func (f *Function) HasAttribute(name string) bool {
	for _, a := range f.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

// IsContractFunction reports whether this function should be treated as a
// contract-verification helper (requires/ensures/invariant checks), per
// spec.md §9's Open Question. SPEC_FULL.md §C.1 supplements the name-prefix
// heuristic with an explicit attribute, matching the original Rust
// implementation's aria-codegen/src/inline.rs, which checks both.
func (f *Function) IsContractFunction() bool {
	if f.HasAttribute("contract") {
		return true
	}
	for _, prefix := range []string{"_contract_", "_requires_", "_ensures_", "_invariant_"} {
		if len(f.Name) >= len(prefix) && f.Name[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// NewFunction constructs a Function with the return-place local already
// installed at Local(0) and empty evidence side tables.
func NewFunction(id FunctionID, name string, returnTy Type) *Function {
	return &Function{
		ID:                id,
		Name:              name,
		Locals:            []LocalDecl{{Type: returnTy, Name: ""}},
		ReturnType:        returnTy,
		EvidenceLayout:    make(map[EffectID]uint32),
		HandlerBlocks:     make(map[HandlerID]BlockID),
		EffectStatements:  make(map[BlockID]map[int]EffectStatementKind),
		EffectTerminators: make(map[BlockID]EffectTerminatorKind),
	}
}

// AddLocal appends a new local declaration, returning its id.
func (f *Function) AddLocal(decl LocalDecl) LocalID {
	id := LocalID(len(f.Locals))
	f.Locals = append(f.Locals, decl)
	return id
}

// AddBlock appends a new, terminator-less basic block, returning its id.
// Callers must set a Terminator before the function is considered valid
// (spec.md §3.2 invariant: every block has exactly one terminator).
func (f *Function) AddBlock() BlockID {
	id := BlockID(len(f.Blocks))
	f.Blocks = append(f.Blocks, &BasicBlock{ID: id})
	return id
}

// SetEffectStatement records a side-table effect-statement kind at the
// given block and statement index.
func (f *Function) SetEffectStatement(block BlockID, idx int, kind EffectStatementKind) {
	m, ok := f.EffectStatements[block]
	if !ok {
		m = make(map[int]EffectStatementKind)
		f.EffectStatements[block] = m
	}
	m[idx] = kind
}

// Program is an unordered collection of functions, structs, enums, effects,
// and handlers, with at most one designated entry function (spec.md §3.1).
type Program struct {
	Functions []*Function
	Structs   []*StructDef
	Enums     []*EnumDef
	Effects   []*EffectDef
	Handlers  []*HandlerDef
	Entry     *FunctionID
}

// FunctionByID performs a linear lookup (programs in this implementation
// are small enough — tens to low hundreds of functions per unit — that an
// index is not worth maintaining through every optimizer rewrite).
func (p *Program) FunctionByID(id FunctionID) *Function {
	for _, f := range p.Functions {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (p *Program) StructByID(id StructID) *StructDef {
	for _, s := range p.Structs {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (p *Program) EnumByID(id EnumID) *EnumDef {
	for _, e := range p.Enums {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (p *Program) EffectByID(id EffectID) *EffectDef {
	for _, e := range p.Effects {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// EntryFunction returns the designated entry function, or nil if none is
// set (a valid state — spec.md's boundary case for a library unit).
func (p *Program) EntryFunction() *Function {
	if p.Entry == nil {
		return nil
	}
	return p.FunctionByID(*p.Entry)
}
