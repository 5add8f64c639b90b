package optimize

import (
	"github.com/cancelei/aria-lang-sub001/internal/config"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
)

// Inline implements spec.md §4.4's interprocedural inliner: direct,
// non-effectful call sites are spliced into their caller, bounded by
// config.Options.MaxInlineSize (total callee statement count) and
// MaxInlineDepth, which caps both how many call sites one Inline call
// splices into a single caller (guarding against runaway expansion from a
// long call chain) and how many blocks a callee may have. "inline(never)"
// always wins; "inline(always)" bypasses both caps. Effectful callees,
// recursive self-calls, and
// indirect calls through a closure operand are never inlined — splicing an
// effectful function would require relocating its evidence side tables,
// which this pass does not attempt (see DESIGN.md).
//
// Grounded on the other_examples kanso-lang optimizations.go.go pipeline
// shape (a pass with an Apply(*Program) bool entry point run to a
// fixpoint) and the original Rust aria-codegen/src/inline.rs policy
// (Never / Always / heuristic-by-size, contract functions exempted).
func Inline(p *mir.Program, cfg *config.Options) bool {
	changed := false
	for _, f := range p.Functions {
		for i := 0; i < cfg.MaxInlineDepth; i++ {
			if !inlineOnce(p, f, cfg) {
				break
			}
			changed = true
		}
	}
	return changed
}

func inlineOnce(p *mir.Program, caller *mir.Function, cfg *config.Options) bool {
	for _, block := range caller.Blocks {
		call, ok := block.Terminator.(mir.Call)
		if !ok || call.FuncOperand != nil || call.Target == nil {
			continue
		}
		if call.FuncID == caller.ID {
			continue
		}
		callee := p.FunctionByID(call.FuncID)
		if callee == nil || !shouldInline(callee, cfg) {
			continue
		}
		spliceCall(caller, block, call, callee)
		return true
	}
	return false
}

func shouldInline(callee *mir.Function, cfg *config.Options) bool {
	if callee.HasAttribute("inline(never)") {
		return false
	}
	if len(callee.EffectStatements) > 0 || len(callee.EffectTerminators) > 0 || !callee.EffectRow.IsPure() {
		return false
	}
	if callee.HasAttribute("inline(always)") {
		return true
	}
	if callee.IsContractFunction() {
		return true // contract helpers are meant to vanish into their call site
	}
	size := 0
	for _, b := range callee.Blocks {
		size += len(b.Statements)
	}
	return size <= cfg.MaxInlineSize && len(callee.Blocks) <= cfg.MaxInlineDepth
}

func spliceCall(caller *mir.Function, callBlock *mir.BasicBlock, call mir.Call, callee *mir.Function) {
	localRemap := make(map[mir.LocalID]mir.LocalID, len(callee.Locals))
	for oldID, decl := range callee.Locals {
		newDecl := decl
		localRemap[mir.LocalID(oldID)] = caller.AddLocal(newDecl)
	}

	blockRemap := make(map[mir.BlockID]mir.BlockID, len(callee.Blocks))
	for _, b := range callee.Blocks {
		blockRemap[b.ID] = caller.AddBlock()
	}

	for i, param := range callee.Params {
		callBlock.Statements = append(callBlock.Statements, mir.Assign{
			Place: mir.PlaceOf(localRemap[param]),
			RHS:   mir.Use{Operand: call.Args[i]},
		})
	}
	callBlock.Terminator = mir.Goto{Target: blockRemap[mir.EntryBlock]}

	for _, b := range callee.Blocks {
		target := caller.Block(blockRemap[b.ID])
		stmts := make([]mir.Statement, len(b.Statements))
		for i, s := range b.Statements {
			stmts[i] = remapStatement(s, localRemap)
		}

		if _, isReturn := b.Terminator.(mir.Return); isReturn {
			if call.Dest != nil {
				stmts = append(stmts, mir.Assign{
					Place: *call.Dest,
					RHS:   mir.Use{Operand: mir.Copy{Place: mir.PlaceOf(localRemap[mir.ReturnPlace])}},
				})
			}
			target.Statements = stmts
			target.Terminator = mir.Goto{Target: *call.Target}
			continue
		}

		target.Statements = stmts
		target.Terminator = remapTerminatorLocals(b.Terminator, localRemap, blockRemap)
	}
}

func remapPlace(pl mir.Place, locals map[mir.LocalID]mir.LocalID) mir.Place {
	proj := make([]mir.PlaceElem, len(pl.Projection))
	for i, e := range pl.Projection {
		if e.Kind == mir.ProjIndex {
			e.Index = locals[e.Index]
		}
		proj[i] = e
	}
	return mir.Place{Local: locals[pl.Local], Projection: proj}
}

func remapOperand(op mir.Operand, locals map[mir.LocalID]mir.LocalID) mir.Operand {
	switch o := op.(type) {
	case mir.Copy:
		return mir.Copy{Place: remapPlace(o.Place, locals)}
	case mir.Move:
		return mir.Move{Place: remapPlace(o.Place, locals)}
	case mir.Constant:
		return o
	default:
		return op
	}
}

func remapRvalue(rv mir.Rvalue, locals map[mir.LocalID]mir.LocalID) mir.Rvalue {
	switch v := rv.(type) {
	case mir.Use:
		return mir.Use{Operand: remapOperand(v.Operand, locals)}
	case mir.BinaryOp:
		return mir.BinaryOp{Op: v.Op, X: remapOperand(v.X, locals), Y: remapOperand(v.Y, locals)}
	case mir.UnaryOp:
		return mir.UnaryOp{Op: v.Op, X: remapOperand(v.X, locals)}
	case mir.RefOf:
		return mir.RefOf{Place: remapPlace(v.Place, locals)}
	case mir.RefMutOf:
		return mir.RefMutOf{Place: remapPlace(v.Place, locals)}
	case mir.Aggregate:
		elems := make([]mir.Operand, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = remapOperand(e, locals)
		}
		return mir.Aggregate{Kind: v.Kind, Elems: elems, StructID: v.StructID, EnumID: v.EnumID, Variant: v.Variant}
	case mir.Discriminant:
		return mir.Discriminant{Place: remapPlace(v.Place, locals)}
	case mir.Len:
		return mir.Len{Place: remapPlace(v.Place, locals)}
	case mir.Cast:
		return mir.Cast{Kind: v.Kind, Operand: remapOperand(v.Operand, locals), To: v.To}
	case mir.ClosureOf:
		return v
	default:
		return rv
	}
}

func remapStatement(s mir.Statement, locals map[mir.LocalID]mir.LocalID) mir.Statement {
	switch st := s.(type) {
	case mir.Assign:
		return mir.Assign{Place: remapPlace(st.Place, locals), RHS: remapRvalue(st.RHS, locals)}
	case mir.StorageLive:
		return mir.StorageLive{Local: locals[st.Local]}
	case mir.StorageDead:
		return mir.StorageDead{Local: locals[st.Local]}
	default:
		return s
	}
}

func remapTerminatorLocals(t mir.Terminator, locals map[mir.LocalID]mir.LocalID, blocks map[mir.BlockID]mir.BlockID) mir.Terminator {
	switch term := t.(type) {
	case mir.Goto:
		return mir.Goto{Target: blocks[term.Target]}
	case mir.SwitchInt:
		cases := make([]mir.SwitchCase, len(term.Cases))
		for i, c := range term.Cases {
			cases[i] = mir.SwitchCase{Value: c.Value, Target: blocks[c.Target]}
		}
		return mir.SwitchInt{Discriminant: remapOperand(term.Discriminant, locals), Cases: cases, Otherwise: blocks[term.Otherwise]}
	case mir.Call:
		args := make([]mir.Operand, len(term.Args))
		for i, a := range term.Args {
			args[i] = remapOperand(a, locals)
		}
		var dest *mir.Place
		if term.Dest != nil {
			d := remapPlace(*term.Dest, locals)
			dest = &d
		}
		var target, unwind *mir.BlockID
		if term.Target != nil {
			tgt := blocks[*term.Target]
			target = &tgt
		}
		if term.Unwind != nil {
			uw := blocks[*term.Unwind]
			unwind = &uw
		}
		return mir.Call{FuncID: term.FuncID, FuncOperand: remapOperandPtr(term.FuncOperand, locals), Args: args, Dest: dest, Target: target, Unwind: unwind}
	case mir.Drop:
		return mir.Drop{Place: remapPlace(term.Place, locals), Target: blocks[term.Target]}
	case mir.Assert:
		return mir.Assert{Cond: remapOperand(term.Cond, locals), Expected: term.Expected, Msg: term.Msg, Target: blocks[term.Target]}
	default:
		return t
	}
}

func remapOperandPtr(op mir.Operand, locals map[mir.LocalID]mir.LocalID) mir.Operand {
	if op == nil {
		return nil
	}
	return remapOperand(op, locals)
}
