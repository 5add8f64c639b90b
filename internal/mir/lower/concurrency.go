package lower

import "github.com/cancelei/aria-lang-sub001/internal/mir"
import "github.com/cancelei/aria-lang-sub001/internal/typedast"

// ensureAsyncEffect returns the dense id of the implicit "Async" effect
// every spawn/join expression performs against (spec.md §5.3's
// aria_async_{spawn,await,yield} builtins), registering it the first time
// any unit needs it since source programs never declare it explicitly.
func (c *Context) ensureAsyncEffect() mir.EffectID {
	if id, ok := c.effectIDByName["Async"]; ok {
		return id
	}
	id := mir.EffectID(len(c.program.Effects))
	c.effectIDByName["Async"] = id
	c.program.Effects = append(c.program.Effects, &mir.EffectDef{ID: id, Name: "Async"})
	return id
}

// lowerSpawn and lowerJoin model structured-concurrency task submission as
// performing operations on the implicit Async effect rather than lifting
// the spawned body into its own top-level function and emitting a real
// ClosureOf: this package has no closure-lifting pass, so the body is
// lowered inline (eagerly, in the spawning block) and "spawn" is reduced to
// handing its already-computed result to the runtime. Real concurrent
// execution, cancellation, and join-handle bookkeeping live in
// internal/concurrent and the codegen stage that consumes this effect,
// not here.
func (b *builder) lowerSpawn(k typedast.SpawnExpr, resultTy mir.Type) (mir.Operand, error) {
	val, err := b.lowerExpr(k.Body)
	if err != nil {
		return nil, err
	}
	asyncEffect := b.ctx.ensureAsyncEffect()
	dest := mir.PlaceOf(b.newTemp(resultTy))
	blk := b.block()
	idx := len(blk.Statements)
	b.emit(mir.Nop{})
	b.fn.SetEffectStatement(b.cur, idx, mir.PerformEffect{
		Effect:         asyncEffect,
		Operation:      "spawn",
		Args:           []mir.Operand{val},
		Slot:           mir.StaticSlot(0),
		Dest:           dest,
		Classification: mir.TailResumptive,
	})
	return operandFor(dest, resultTy), nil
}

func (b *builder) lowerJoin(k typedast.JoinExpr, resultTy mir.Type) (mir.Operand, error) {
	handle, err := b.lowerExpr(k.Handle)
	if err != nil {
		return nil, err
	}
	asyncEffect := b.ctx.ensureAsyncEffect()
	dest := mir.PlaceOf(b.newTemp(resultTy))
	blk := b.block()
	idx := len(blk.Statements)
	b.emit(mir.Nop{})
	b.fn.SetEffectStatement(b.cur, idx, mir.PerformEffect{
		Effect:         asyncEffect,
		Operation:      "join",
		Args:           []mir.Operand{handle},
		Slot:           mir.StaticSlot(0),
		Dest:           dest,
		Classification: mir.TailResumptive,
	})
	return operandFor(dest, resultTy), nil
}
