package optimize

import "github.com/cancelei/aria-lang-sub001/internal/mir"

// CFGSimplify merges a block into its sole predecessor when that
// predecessor's only successor is the block itself and neither side
// carries an effect terminator (a handler install/yield boundary must stay
// a distinct block so the evidence side tables keep their per-block
// addressing). Returns whether anything changed.
func CFGSimplify(f *mir.Function) bool {
	changed := false
	for {
		preds := predecessorCounts(f)
		merged := false
		for _, block := range f.Blocks {
			g, ok := block.Terminator.(mir.Goto)
			if !ok {
				continue
			}
			target := f.Block(g.Target)
			if target == nil || target.ID == block.ID {
				continue
			}
			if preds[target.ID] != 1 {
				continue
			}
			if _, hasEffect := f.EffectTerminators[block.ID]; hasEffect {
				continue
			}
			if _, targetHasEffect := f.EffectTerminators[target.ID]; targetHasEffect {
				// the merge would need to relocate the effect terminator's
				// block-indexed side table; skip rather than risk losing it.
				continue
			}
			if stmts, ok := f.EffectStatements[target.ID]; ok && len(stmts) > 0 {
				shiftEffectStatements(f, block.ID, target.ID, len(block.Statements))
			}
			block.Statements = append(block.Statements, target.Statements...)
			block.Terminator = target.Terminator
			removeBlock(f, target.ID)
			merged = true
			changed = true
			break
		}
		if !merged {
			break
		}
	}
	return changed
}

func predecessorCounts(f *mir.Function) map[mir.BlockID]int {
	counts := make(map[mir.BlockID]int, len(f.Blocks))
	for _, block := range f.Blocks {
		if block.Terminator == nil {
			continue
		}
		for _, succ := range mir.Successors(block.Terminator) {
			counts[succ]++
		}
	}
	return counts
}

// shiftEffectStatements re-indexes target's side-table entries by offset
// (the length of the absorbing block's own statements) and merges them
// into the absorbing block's table.
func shiftEffectStatements(f *mir.Function, into, from mir.BlockID, offset int) {
	src := f.EffectStatements[from]
	if len(src) == 0 {
		return
	}
	dst, ok := f.EffectStatements[into]
	if !ok {
		dst = make(map[int]mir.EffectStatementKind)
		f.EffectStatements[into] = dst
	}
	for idx, kind := range src {
		dst[idx+offset] = kind
	}
}

// removeBlock deletes a block and renumbers the rest to keep ids dense,
// then fixes up every terminator's targets and the side tables. Only
// called once the block has zero references left (its sole predecessor
// just absorbed it).
func removeBlock(f *mir.Function, id mir.BlockID) {
	remap := make(map[mir.BlockID]mir.BlockID, len(f.Blocks)-1)
	newBlocks := make([]*mir.BasicBlock, 0, len(f.Blocks)-1)
	for _, block := range f.Blocks {
		if block.ID == id {
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
}
