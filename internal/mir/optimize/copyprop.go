package optimize

import "github.com/cancelei/aria-lang-sub001/internal/mir"

// CopyProp replaces `copy %dst` uses of a place with the operand that was
// most recently assigned to it via a trivial `%dst = use(copy %src)` or
// `%dst = use(const c)` statement, within a single block (no cross-block
// dataflow; this pass runs to a fixpoint under the pipeline's iteration cap,
// and CFGSimplify/DCE typically fold straight-line chains into one block
// first). A copy is only propagated when %dst has no further projection
// (whole-place copies only) and %dst is never the target of StorageDead
// before the use, since projections and storage state are out of scope for
// this pass.
func CopyProp(f *mir.Function) bool {
	changed := false
	for _, block := range f.Blocks {
		avail := make(map[mir.LocalID]mir.Operand)
		for i, stmt := range block.Statements {
			switch s := stmt.(type) {
			case mir.Assign:
				replaced := rewriteRvalue(s.RHS, avail)
				if replaced != nil {
					block.Statements[i] = mir.Assign{Place: s.Place, RHS: replaced}
					changed = true
					s.RHS = replaced
				}
				delete(avail, s.Place.Local)
				if len(s.Place.Projection) == 0 {
					if use, ok := s.RHS.(mir.Use); ok {
						switch use.Operand.(type) {
						case mir.Copy, mir.Constant:
							avail[s.Place.Local] = use.Operand
						default:
						}
					}
				}
			case mir.StorageDead:
				delete(avail, s.Local)
			case mir.StorageLive:
				delete(avail, s.Local)
			}
		}
	}
	return changed
}

func rewriteRvalue(rv mir.Rvalue, avail map[mir.LocalID]mir.Operand) mir.Rvalue {
	switch v := rv.(type) {
	case mir.Use:
		if op, ok := rewriteOperand(v.Operand, avail); ok {
			return mir.Use{Operand: op}
		}
	case mir.BinaryOp:
		x, xok := rewriteOperand(v.X, avail)
		y, yok := rewriteOperand(v.Y, avail)
		if xok || yok {
			if !xok {
				x = v.X
			}
			if !yok {
				y = v.Y
			}
			return mir.BinaryOp{Op: v.Op, X: x, Y: y}
		}
	case mir.UnaryOp:
		if x, ok := rewriteOperand(v.X, avail); ok {
			return mir.UnaryOp{Op: v.Op, X: x}
		}
	case mir.Cast:
		if op, ok := rewriteOperand(v.Operand, avail); ok {
			return mir.Cast{Kind: v.Kind, Operand: op, To: v.To}
		}
	}
	return nil
}

func rewriteOperand(op mir.Operand, avail map[mir.LocalID]mir.Operand) (mir.Operand, bool) {
	c, ok := op.(mir.Copy)
	if !ok || len(c.Place.Projection) != 0 {
		return nil, false
	}
	replacement, found := avail[c.Place.Local]
	if !found {
		return nil, false
	}
	return replacement, true
}
