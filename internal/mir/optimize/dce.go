package optimize

import "github.com/cancelei/aria-lang-sub001/internal/mir"

// DCE removes unreachable basic blocks from a function's CFG, renumbering
// the survivors so BlockID stays dense starting at EntryBlock (spec.md
// §3.2's "block ids are dense" invariant, preserved by Validate). Effect
// statements and terminators attached to a removed block are dropped along
// with it; a live block keeps its side-table entries under its new id.
//
// Grounded on the other_examples malphas-lang dce.go.go worklist-based
// reachability walk, adapted to this package's Successors helper instead of
// a type switch over a different terminator set.
func DCE(f *mir.Function) bool {
	if len(f.Blocks) == 0 {
		return false
	}

	reachable := make(map[mir.BlockID]bool)
	worklist := []mir.BlockID{mir.EntryBlock}
	for len(worklist) > 0 {
		id := worklist[0]
		worklist = worklist[1:]
		if reachable[id] {
			continue
		}
		reachable[id] = true
		block := f.Block(id)
		if block == nil || block.Terminator == nil {
			continue
		}
		worklist = append(worklist, mir.Successors(block.Terminator)...)
	}

	if len(reachable) == len(f.Blocks) {
		return false
	}

	remap := make(map[mir.BlockID]mir.BlockID, len(reachable))
	newBlocks := make([]*mir.BasicBlock, 0, len(reachable))

	for _, block := range f.Blocks {
		if !reachable[block.ID] {
			continue
		}
		newID := mir.BlockID(len(newBlocks))
		remap[block.ID] = newID
		newBlocks = append(newBlocks, block)
	}
	for _, block := range newBlocks {
		block.ID = remap[block.ID]
	}

	rekeyed := make(map[mir.BlockID]map[int]mir.EffectStatementKind, len(f.EffectStatements))
	for oldID, stmts := range f.EffectStatements {
		if newID, ok := remap[oldID]; ok {
			rekeyed[newID] = stmts
		}
	}
	newEffectTerminators := make(map[mir.BlockID]mir.EffectTerminatorKind, len(f.EffectTerminators))
	for oldID, kind := range f.EffectTerminators {
		if newID, ok := remap[oldID]; ok {
			newEffectTerminators[newID] = kind
		}
	}
	newHandlerBlocks := make(map[mir.HandlerID]mir.BlockID, len(f.HandlerBlocks))
	for h, oldID := range f.HandlerBlocks {
		if newID, ok := remap[oldID]; ok {
			newHandlerBlocks[h] = newID
		}
	}

	for _, block := range newBlocks {
		remapTerminator(block, remap)
	}

	f.Blocks = newBlocks
	f.EffectStatements = rekeyed
	f.EffectTerminators = newEffectTerminators
	f.HandlerBlocks = newHandlerBlocks
	return true
}

func remapTerminator(block *mir.BasicBlock, remap map[mir.BlockID]mir.BlockID) {
	switch t := block.Terminator.(type) {
	case mir.Goto:
		block.Terminator = mir.Goto{Target: remap[t.Target]}
	case mir.SwitchInt:
		cases := make([]mir.SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			cases[i] = mir.SwitchCase{Value: c.Value, Target: remap[c.Target]}
		}
		block.Terminator = mir.SwitchInt{Discriminant: t.Discriminant, Cases: cases, Otherwise: remap[t.Otherwise]}
	case mir.Call:
		if t.Target != nil {
			target := remap[*t.Target]
			t.Target = &target
		}
		if t.Unwind != nil {
			unwind := remap[*t.Unwind]
			t.Unwind = &unwind
		}
		block.Terminator = t
	case mir.Drop:
		block.Terminator = mir.Drop{Place: t.Place, Target: remap[t.Target]}
	case mir.Assert:
		block.Terminator = mir.Assert{Cond: t.Cond, Expected: t.Expected, Msg: t.Msg, Target: remap[t.Target]}
	}
}
