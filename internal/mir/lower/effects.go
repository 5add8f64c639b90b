package lower

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

// lowerPerform emits a PerformEffect side-table entry on the current
// block's next statement slot and returns the operand reading its result.
//
// Evidence-slot resolution (static vs. dynamic, continuation
// classification) belongs to a later evidence-layout pass once the whole
// program's handler nesting is known; here every perform gets a
// provisional static slot 0 and a conservative General classification,
// both meant to be rewritten once that pass exists.
func (b *builder) lowerPerform(k typedast.PerformExpr, resultTy mir.Type) (mir.Operand, error) {
	effectID, ok := b.ctx.effectIDByName[k.Effect]
	if !ok {
		return nil, undefinedType(b.fnName, k.Effect)
	}
	args := make([]mir.Operand, len(k.Args))
	for i, a := range k.Args {
		op, err := b.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = op
	}

	dest := mir.PlaceOf(b.newTemp(resultTy))
	blk := b.block()
	idx := len(blk.Statements)
	b.emit(mir.Nop{})
	b.fn.SetEffectStatement(b.cur, idx, mir.PerformEffect{
		Effect:         effectID,
		Operation:      k.Operation,
		Args:           args,
		Slot:           mir.StaticSlot(0),
		Dest:           dest,
		Classification: mir.General,
	})

	return operandFor(dest, resultTy), nil
}

// lowerHandle installs a handler around Body. Each handler arm is lowered
// into its own block registered on a HandlerDef so a later pass can wire
// real continuation capture; the body itself is lowered as a plain nested
// block rather than split into a yield/resume CFG, so this models
// tail-resumptive handling only. Non-tail-resumptive handlers (those whose
// continuation escapes or is invoked more than once) need the fuller
// Yield/Resume terminator pair this package does not yet build.
func (b *builder) lowerHandle(k typedast.HandleExpr, resultTy mir.Type) (mir.Operand, error) {
	effectID, ok := b.ctx.effectIDByName[k.Effect]
	if !ok {
		return nil, undefinedType(b.fnName, k.Effect)
	}

	handlerID := mir.HandlerID(len(b.ctx.program.Handlers))
	def := &mir.HandlerDef{
		ID:              handlerID,
		EffectID:        effectID,
		OperationBlocks: make(map[string]mir.BlockID),
		TailResumptive:  true,
	}

	for _, arm := range k.Arms {
		armBlock := b.newBlock()
		saved := b.cur
		b.cur = armBlock
		b.pushScope()
		for _, p := range arm.Params {
			local := b.fn.AddLocal(mir.LocalDecl{Type: mir.Unit()})
			b.bind(p, local)
		}
		if arm.Continuation != "" {
			local := b.fn.AddLocal(mir.LocalDecl{Type: mir.Unit()})
			b.bind(arm.Continuation, local)
		}
		val, err := b.lowerExpr(arm.Body)
		if err != nil {
			b.popScope()
			return nil, err
		}
		b.emit(mir.Assign{Place: mir.PlaceOf(mir.ReturnPlace), RHS: mir.Use{Operand: val}})
		b.block().Terminator = mir.Return{}
		b.popScope()
		def.OperationBlocks[arm.Operation] = armBlock
		b.cur = saved
	}
	b.ctx.program.Handlers = append(b.ctx.program.Handlers, def)

	if _, exists := b.fn.EvidenceLayout[effectID]; !exists {
		b.fn.EvidenceLayout[effectID] = uint32(len(b.fn.EvidenceLayout))
	}
	slot := mir.StaticSlot(b.fn.EvidenceLayout[effectID])

	blk := b.block()
	idx := len(blk.Statements)
	b.emit(mir.Nop{})
	b.fn.SetEffectStatement(b.cur, idx, mir.InstallHandler{
		Handler: handlerID,
		Slot:    slot,
		Effect:  effectID,
	})
	b.fn.HandlerBlocks[handlerID] = b.cur

	return b.lowerExpr(k.Body)
}
