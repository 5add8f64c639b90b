package optimize

import (
	"testing"

	"github.com/cancelei/aria-lang-sub001/internal/config"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
)

// constFoldFn builds fn answer() -> Int { return 40 + 2 }
func constFoldFn() *mir.Function {
	f := mir.NewFunction(0, "answer", mir.Int())
	bb := f.AddBlock()
	block := f.Block(bb)
	block.Statements = []mir.Statement{
		mir.Assign{
			Place: mir.PlaceOf(mir.ReturnPlace),
			RHS: mir.BinaryOp{
				Op: mir.BinAdd,
				X:  mir.Constant{Type: mir.Int(), Value: int64(40)},
				Y:  mir.Constant{Type: mir.Int(), Value: int64(2)},
			},
		},
	}
	block.Terminator = mir.Return{}
	return f
}

func TestConstFoldBinaryOp(t *testing.T) {
	f := constFoldFn()
	if !ConstFold(f) {
		t.Fatal("expected ConstFold to report a change")
	}
	assign := f.Blocks[0].Statements[0].(mir.Assign)
	use, ok := assign.RHS.(mir.Use)
	if !ok {
		t.Fatalf("expected folded RHS to be Use, got %T", assign.RHS)
	}
	c, ok := use.Operand.(mir.Constant)
	if !ok || c.Value.(int64) != 42 {
		t.Fatalf("expected folded constant 42, got %+v", use.Operand)
	}
}

func TestConstFoldSkipsDivisionByZero(t *testing.T) {
	f := mir.NewFunction(0, "div0", mir.Int())
	bb := f.AddBlock()
	block := f.Block(bb)
	block.Statements = []mir.Statement{
		mir.Assign{
			Place: mir.PlaceOf(mir.ReturnPlace),
			RHS: mir.BinaryOp{
				Op: mir.BinDiv,
				X:  mir.Constant{Type: mir.Int(), Value: int64(1)},
				Y:  mir.Constant{Type: mir.Int(), Value: int64(0)},
			},
		},
	}
	block.Terminator = mir.Return{}
	if ConstFold(f) {
		t.Fatal("expected division by zero to be left unfolded")
	}
}

func TestConstFoldCollapsesSwitchInt(t *testing.T) {
	f := mir.NewFunction(0, "pick", mir.Int())
	bb0 := f.AddBlock()
	bb1 := f.AddBlock()
	bb2 := f.AddBlock()
	f.Block(bb0).Terminator = mir.SwitchInt{
		Discriminant: mir.Constant{Type: mir.Int(), Value: int64(1)},
		Cases:        []mir.SwitchCase{{Value: 0, Target: bb1}, {Value: 1, Target: bb2}},
		Otherwise:    bb1,
	}
	f.Block(bb1).Terminator = mir.Return{}
	f.Block(bb2).Terminator = mir.Return{}

	if !ConstFold(f) {
		t.Fatal("expected SwitchInt collapse to report a change")
	}
	g, ok := f.Block(bb0).Terminator.(mir.Goto)
	if !ok || g.Target != bb2 {
		t.Fatalf("expected goto bb2, got %+v", f.Block(bb0).Terminator)
	}
}

// dceFn builds a function with an unreachable block following an
// unconditional return.
func dceFn() *mir.Function {
	f := mir.NewFunction(0, "deadblock", mir.Unit())
	bb0 := f.AddBlock()
	bb1 := f.AddBlock() // unreachable
	f.Block(bb0).Terminator = mir.Return{}
	f.Block(bb1).Terminator = mir.Return{}
	return f
}

func TestDCERemovesUnreachableBlock(t *testing.T) {
	f := dceFn()
	if !DCE(f) {
		t.Fatal("expected DCE to report a change")
	}
	if len(f.Blocks) != 1 {
		t.Fatalf("expected 1 surviving block, got %d", len(f.Blocks))
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected validation error after DCE: %v", err)
	}
}

// cfgSimplifyFn builds bb0 -> bb1 -> bb2(return), where bb1 has exactly one
// predecessor and no effect terminator.
func cfgSimplifyFn() *mir.Function {
	f := mir.NewFunction(0, "chain", mir.Unit())
	bb0 := f.AddBlock()
	bb1 := f.AddBlock()
	bb2 := f.AddBlock()
	f.Block(bb0).Terminator = mir.Goto{Target: bb1}
	f.Block(bb1).Statements = []mir.Statement{mir.Nop{}}
	f.Block(bb1).Terminator = mir.Goto{Target: bb2}
	f.Block(bb2).Terminator = mir.Return{}
	return f
}

func TestCFGSimplifyMergesChain(t *testing.T) {
	f := cfgSimplifyFn()
	if !CFGSimplify(f) {
		t.Fatal("expected CFGSimplify to report a change")
	}
	if len(f.Blocks) != 1 {
		t.Fatalf("expected the chain to collapse to a single block, got %d", len(f.Blocks))
	}
	if _, ok := f.Blocks[0].Terminator.(mir.Return); !ok {
		t.Fatalf("expected merged block to end in return, got %T", f.Blocks[0].Terminator)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected validation error after CFGSimplify: %v", err)
	}
}

// copyPropFn builds %1 = const 7; %2 = use(copy %1); return copy %2.
func copyPropFn() *mir.Function {
	f := mir.NewFunction(0, "copychain", mir.Int())
	tmp1 := f.AddLocal(mir.LocalDecl{Type: mir.Int(), Name: "t1"})
	tmp2 := f.AddLocal(mir.LocalDecl{Type: mir.Int(), Name: "t2"})
	bb := f.AddBlock()
	block := f.Block(bb)
	block.Statements = []mir.Statement{
		mir.Assign{Place: mir.PlaceOf(tmp1), RHS: mir.Use{Operand: mir.Constant{Type: mir.Int(), Value: int64(7)}}},
		mir.Assign{Place: mir.PlaceOf(tmp2), RHS: mir.Use{Operand: mir.Copy{Place: mir.PlaceOf(tmp1)}}},
		mir.Assign{Place: mir.PlaceOf(mir.ReturnPlace), RHS: mir.Use{Operand: mir.Copy{Place: mir.PlaceOf(tmp2)}}},
	}
	block.Terminator = mir.Return{}
	return f
}

func TestCopyPropFollowsChain(t *testing.T) {
	f := copyPropFn()
	if !CopyProp(f) {
		t.Fatal("expected CopyProp to report a change")
	}
	last := f.Blocks[0].Statements[2].(mir.Assign)
	use := last.RHS.(mir.Use)
	if _, ok := use.Operand.(mir.Constant); !ok {
		t.Fatalf("expected copy chain to resolve to the original constant, got %+v", use.Operand)
	}
}

// calleeAddOne builds fn addOne(a: Int) -> Int = a + 1, small enough to
// qualify for heuristic inlining.
func calleeAddOne() *mir.Function {
	f := mir.NewFunction(1, "addOne", mir.Int())
	f.AddLocal(mir.LocalDecl{Type: mir.Int(), Name: "a"})
	f.Params = []mir.LocalID{1}
	bb := f.AddBlock()
	f.Block(bb).Statements = []mir.Statement{
		mir.Assign{
			Place: mir.PlaceOf(mir.ReturnPlace),
			RHS: mir.BinaryOp{
				Op: mir.BinAdd,
				X:  mir.Copy{Place: mir.PlaceOf(1)},
				Y:  mir.Constant{Type: mir.Int(), Value: int64(1)},
			},
		},
	}
	f.Block(bb).Terminator = mir.Return{}
	return f
}

// callerFn builds fn caller() -> Int { %1 = call addOne(const 41) -> bb1 }
func callerFn() *mir.Function {
	f := mir.NewFunction(0, "caller", mir.Int())
	tmp := f.AddLocal(mir.LocalDecl{Type: mir.Int(), Name: "r"})
	bb0 := f.AddBlock()
	bb1 := f.AddBlock()
	target := bb1
	dest := mir.PlaceOf(tmp)
	f.Block(bb0).Terminator = mir.Call{
		FuncID: 1,
		Args:   []mir.Operand{mir.Constant{Type: mir.Int(), Value: int64(41)}},
		Dest:   &dest,
		Target: &target,
	}
	f.Block(bb1).Statements = []mir.Statement{
		mir.Assign{Place: mir.PlaceOf(mir.ReturnPlace), RHS: mir.Use{Operand: mir.Copy{Place: mir.PlaceOf(tmp)}}},
	}
	f.Block(bb1).Terminator = mir.Return{}
	return f
}

func TestInlineSplicesCallSite(t *testing.T) {
	p := &mir.Program{Functions: []*mir.Function{callerFn(), calleeAddOne()}}
	cfg := config.New()
	if !Inline(p, cfg) {
		t.Fatal("expected Inline to report a change")
	}
	caller := p.FunctionByID(0)
	if err := caller.Validate(); err != nil {
		t.Fatalf("unexpected validation error after inlining: %v", err)
	}
	for _, b := range caller.Blocks {
		if call, ok := b.Terminator.(mir.Call); ok && call.FuncID == 1 {
			t.Fatal("expected the call terminator to be spliced away")
		}
	}
}

func TestRunAggressivePipelineOnInlinedProgram(t *testing.T) {
	p := &mir.Program{Functions: []*mir.Function{callerFn(), calleeAddOne()}}
	cfg := config.New()
	Run(p, LevelAggressive, cfg)
	caller := p.FunctionByID(0)
	if err := caller.Validate(); err != nil {
		t.Fatalf("unexpected validation error after aggressive pipeline: %v", err)
	}
	// after inlining, const-folding, and copy-prop, the whole function
	// should reduce to a single block returning the constant 42.
	if len(caller.Blocks) != 1 {
		t.Fatalf("expected pipeline to collapse caller to one block, got %d", len(caller.Blocks))
	}
}
