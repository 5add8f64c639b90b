package lower

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

// builder lowers a single function body, tracking the current insertion
// block (the "block-cursor") the way a straight-line CFG emitter must:
// control-flow constructs (if, while, match) advance the cursor to a new
// block and splice in gotos, rather than returning a tree for a later pass
// to flatten.
type builder struct {
	ctx    *Context
	fn     *mir.Function
	cur    mir.BlockID
	scope  []map[string]mir.LocalID // lexical scope stack, innermost last
	fnName string
}

func (c *Context) lowerFunction(id mir.FunctionID, decl *typedast.FunctionDecl) (*mir.Function, error) {
	f := mir.NewFunction(id, decl.Name, decl.ReturnType)
	f.IsPublic = decl.IsPublic
	f.Attributes = decl.Attributes
	f.EffectRow = decl.EffectRow

	b := &builder{ctx: c, fn: f, fnName: decl.Name}
	b.pushScope()
	for _, p := range decl.Params {
		local := f.AddLocal(mir.LocalDecl{Type: p.Type, Name: p.Name})
		f.Params = append(f.Params, local)
		b.bind(p.Name, local)
	}

	entry := f.AddBlock()
	b.cur = entry

	if decl.Body == nil {
		f.Block(b.cur).Terminator = mir.Return{}
		return f, nil
	}

	result, err := b.lowerExpr(decl.Body)
	if err != nil {
		return nil, err
	}
	b.emit(mir.Assign{Place: mir.PlaceOf(mir.ReturnPlace), RHS: mir.Use{Operand: result}})
	f.Block(b.cur).Terminator = mir.Return{}
	b.popScope()
	return f, nil
}

func (b *builder) pushScope()       { b.scope = append(b.scope, make(map[string]mir.LocalID)) }
func (b *builder) popScope()        { b.scope = b.scope[:len(b.scope)-1] }
func (b *builder) bind(name string, id mir.LocalID) {
	b.scope[len(b.scope)-1][name] = id
}
func (b *builder) lookup(name string) (mir.LocalID, bool) {
	for i := len(b.scope) - 1; i >= 0; i-- {
		if id, ok := b.scope[i][name]; ok {
			return id, true
		}
	}
	return 0, false
}

func (b *builder) block() *mir.BasicBlock { return b.fn.Block(b.cur) }

func (b *builder) emit(s mir.Statement) { blk := b.block(); blk.Statements = append(blk.Statements, s) }

func (b *builder) newTemp(ty mir.Type) mir.LocalID {
	return b.fn.AddLocal(mir.LocalDecl{Type: ty})
}

// newBlock appends a fresh, terminator-less block and returns its id.
func (b *builder) newBlock() mir.BlockID { return b.fn.AddBlock() }

// gotoAndMove terminates the current block with a Goto to target, then
// moves the cursor there.
func (b *builder) gotoAndMove(target mir.BlockID) {
	b.block().Terminator = mir.Goto{Target: target}
	b.cur = target
}

// operandFor builds the Copy-or-Move operand for a place per ownership
// inference (spec.md §3.5): Copy types read without consuming, everything
// else moves. Grounded on lower_pattern.rs's operand_for_place.
func operandFor(place mir.Place, ty mir.Type) mir.Operand {
	if mir.IsCopy(ty) {
		return mir.Copy{Place: place}
	}
	return mir.Move{Place: place}
}

// materialize assigns rv to a fresh temp of type ty and returns the
// Copy/Move operand reading it back, for rvalues (binary ops, calls,
// aggregates) that don't already name a place.
func (b *builder) materialize(rv mir.Rvalue, ty mir.Type) mir.Operand {
	temp := b.newTemp(ty)
	b.emit(mir.Assign{Place: mir.PlaceOf(temp), RHS: rv})
	return operandFor(mir.PlaceOf(temp), ty)
}
