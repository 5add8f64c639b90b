package optimize

import (
	"github.com/cancelei/aria-lang-sub001/internal/config"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
)

// Level selects how much of the pipeline in spec.md §4.4 runs.
type Level int

const (
	// LevelNone leaves the program exactly as lowering produced it.
	LevelNone Level = iota
	// LevelBasic runs const-fold, CFG-simplify, copy-prop, and DCE once
	// per function, in that order.
	LevelBasic
	// LevelAggressive iterates the basic passes to a fixpoint (capped by
	// config.Options.AggressiveIterCap) and then runs the inliner; if
	// inlining changed anything, the basic passes are iterated to a fixpoint
	// again, under the same cap, to clean up what inlining exposed.
	LevelAggressive
)

// Run mutates p in place according to level and returns it, mirroring the
// other_examples kanso-lang OptimizationPipeline.Run's pass-sequencing
// shape translated to this package's per-function, fixpoint-driven passes.
func Run(p *mir.Program, level Level, cfg *config.Options) *mir.Program {
	switch level {
	case LevelNone:
		return p
	case LevelBasic:
		runBasicRound(p)
		return p
	case LevelAggressive:
		for i := 0; i < cfg.AggressiveIterCap; i++ {
			if !runBasicRound(p) {
				break
			}
		}
		if Inline(p, cfg) {
			for i := 0; i < cfg.AggressiveIterCap; i++ {
				if !runBasicRound(p) {
					break
				}
			}
		}
		return p
	default:
		return p
	}
}

// runBasicRound applies one pass of const-fold, CFG-simplify, copy-prop,
// and DCE to every function and reports whether any of them changed
// anything.
func runBasicRound(p *mir.Program) bool {
	changed := false
	for _, f := range p.Functions {
		if ConstFold(f) {
			changed = true
		}
		if CFGSimplify(f) {
			changed = true
		}
		if CopyProp(f) {
			changed = true
		}
		if DCE(f) {
			changed = true
		}
	}
	return changed
}
