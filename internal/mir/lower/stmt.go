package lower

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

func (b *builder) lowerStmt(s typedast.Stmt) error {
	switch st := s.(type) {
	case typedast.LetStmt:
		value, err := b.lowerExpr(st.Value)
		if err != nil {
			return err
		}
		return b.lowerPatternBinding(st.Pattern, value, st.Type)

	case typedast.ExprStmt:
		_, err := b.lowerExpr(st.Value)
		return err

	case typedast.AssignStmt:
		value, err := b.lowerExpr(st.Value)
		if err != nil {
			return err
		}
		place, err := b.lowerPlace(st.Target)
		if err != nil {
			return err
		}
		b.emit(mir.Assign{Place: place, RHS: mir.Use{Operand: value}})
		return nil

	case typedast.WhileStmt:
		return b.lowerWhile(st)

	case typedast.ReturnStmt:
		if st.Value == nil {
			b.emit(mir.Assign{Place: mir.PlaceOf(mir.ReturnPlace), RHS: mir.Use{Operand: mir.Constant{Type: mir.Unit(), Value: nil}}})
		} else {
			value, err := b.lowerExpr(st.Value)
			if err != nil {
				return err
			}
			b.emit(mir.Assign{Place: mir.PlaceOf(mir.ReturnPlace), RHS: mir.Use{Operand: value}})
		}
		after := b.newBlock()
		b.block().Terminator = mir.Return{}
		b.cur = after
		return nil

	default:
		return internalErr(b.fnName, "unhandled statement kind in lowering")
	}
}

// lowerWhile emits the classic three-block loop shape: a header that
// re-evaluates the condition every iteration, a body that always jumps
// back to the header, and an exit block the cursor continues from.
func (b *builder) lowerWhile(st typedast.WhileStmt) error {
	header := b.newBlock()
	b.gotoAndMove(header)

	cond, err := b.lowerExpr(st.Cond)
	if err != nil {
		return err
	}
	body, exit := b.newBlock(), b.newBlock()
	b.block().Terminator = mir.SwitchInt{
		Discriminant: cond,
		Cases:        []mir.SwitchCase{{Value: 1, Target: body}},
		Otherwise:    exit,
	}

	b.cur = body
	if _, err := b.lowerExpr(st.Body); err != nil {
		return err
	}
	b.block().Terminator = mir.Goto{Target: header}

	b.cur = exit
	return nil
}
