package lower

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

// lowerMatch lowers a match expression as a sequential if-else chain: each
// arm gets its own test block that checks its pattern against the
// scrutinee (via testAndBind) and, on success, its own scope, optional
// guard, and body block, all joining to a single result block. Exhaustiveness
// is assumed already checked by an earlier pass; a non-matching scrutinee
// at runtime falls through to an Unreachable terminator.
func (b *builder) lowerMatch(k typedast.MatchExpr, resultTy mir.Type) (mir.Operand, error) {
	scrutinee, err := b.lowerExpr(k.Scrutinee)
	if err != nil {
		return nil, err
	}
	scrutTemp := b.newTemp(k.Scrutinee.Type)
	b.emit(mir.Assign{Place: mir.PlaceOf(scrutTemp), RHS: mir.Use{Operand: scrutinee}})
	scrutPlace := mir.PlaceOf(scrutTemp)

	joinBlock := b.newBlock()
	var resultLocal *mir.LocalID
	if resultTy.Kind != mir.KindUnit {
		id := b.newTemp(resultTy)
		resultLocal = &id
	}

	for _, arm := range k.Arms {
		b.pushScope()
		matched, err := b.testAndBind(arm.Pattern, scrutPlace, k.Scrutinee.Type)
		if err != nil {
			b.popScope()
			return nil, err
		}
		if arm.Guard != nil {
			guard, err := b.lowerExpr(arm.Guard)
			if err != nil {
				b.popScope()
				return nil, err
			}
			matched = b.materialize(mir.BinaryOp{Op: mir.BinLogicalAnd, X: matched, Y: guard}, mir.Bool())
		}

		bodyBlock, nextTest := b.newBlock(), b.newBlock()
		b.block().Terminator = mir.SwitchInt{
			Discriminant: matched,
			Cases:        []mir.SwitchCase{{Value: 1, Target: bodyBlock}},
			Otherwise:    nextTest,
		}

		b.cur = bodyBlock
		val, err := b.lowerExpr(arm.Body)
		if err != nil {
			b.popScope()
			return nil, err
		}
		if resultLocal != nil {
			b.emit(mir.Assign{Place: mir.PlaceOf(*resultLocal), RHS: mir.Use{Operand: val}})
		}
		b.block().Terminator = mir.Goto{Target: joinBlock}
		b.popScope()

		b.cur = nextTest
	}

	// No arm matched: a prior exhaustiveness check should make this block
	// unreachable at runtime.
	b.block().Terminator = mir.Unreachable{}

	b.cur = joinBlock
	if resultLocal == nil {
		return mir.Constant{Type: mir.Unit(), Value: nil}, nil
	}
	return operandFor(mir.PlaceOf(*resultLocal), resultTy), nil
}
