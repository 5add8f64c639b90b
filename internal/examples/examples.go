// Package examples is a small built-in catalog of typedast.Program values
// the CLI drives end to end. The compiler core's documented input is an
// already name-resolved, type-checked AST (spec.md §6.1); no parser or type
// checker exists in this repo's scope (spec.md's non-goals), so `ariac`
// selects a named program from this catalog instead of reading Aria source
// text from disk.
package examples

import (
	"sort"

	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

func intLit(v int64) *typedast.Expr {
	return &typedast.Expr{Kind: typedast.LiteralExpr{Value: v}, Type: mir.Int()}
}

func varOf(name string, ty mir.Type) *typedast.Expr {
	return &typedast.Expr{Kind: typedast.VarExpr{Name: name}, Type: ty}
}

func bindingPattern(name string, ty mir.Type) *typedast.Pattern {
	return &typedast.Pattern{Kind: typedast.BindingPattern{Name: name}, Type: ty}
}

// Identity returns `fn identity(x: Int) -> Int { x }`.
func Identity() *typedast.Program {
	fn := &typedast.FunctionDecl{
		Name:       "identity",
		Params:     []typedast.Param{{Name: "x", Type: mir.Int()}},
		ReturnType: mir.Int(),
		IsPublic:   true,
		Body:       varOf("x", mir.Int()),
	}
	return &typedast.Program{Functions: []*typedast.FunctionDecl{fn}, EntryName: fn.Name}
}

// Add returns `fn add(a: Int, b: Int) -> Int { a + b }`.
func Add() *typedast.Program {
	fn := &typedast.FunctionDecl{
		Name:       "add",
		Params:     []typedast.Param{{Name: "a", Type: mir.Int()}, {Name: "b", Type: mir.Int()}},
		ReturnType: mir.Int(),
		IsPublic:   true,
		Body: &typedast.Expr{
			Kind: typedast.BinaryExpr{
				Op:    mir.BinAdd,
				Left:  varOf("a", mir.Int()),
				Right: varOf("b", mir.Int()),
			},
			Type: mir.Int(),
		},
	}
	return &typedast.Program{Functions: []*typedast.FunctionDecl{fn}, EntryName: fn.Name}
}

// Abs returns `fn abs(x: Int) -> Int { if x < 0 { -x } else { x } }`.
func Abs() *typedast.Program {
	cond := &typedast.Expr{
		Kind: typedast.BinaryExpr{Op: mir.BinLt, Left: varOf("x", mir.Int()), Right: intLit(0)},
		Type: mir.Bool(),
	}
	negate := &typedast.Expr{
		Kind: typedast.UnaryExpr{Op: mir.UnNeg, Target: varOf("x", mir.Int())},
		Type: mir.Int(),
	}
	fn := &typedast.FunctionDecl{
		Name:       "abs",
		Params:     []typedast.Param{{Name: "x", Type: mir.Int()}},
		ReturnType: mir.Int(),
		IsPublic:   true,
		Body: &typedast.Expr{
			Kind: typedast.IfExpr{Cond: cond, Then: negate, Else: varOf("x", mir.Int())},
			Type: mir.Int(),
		},
	}
	return &typedast.Program{Functions: []*typedast.FunctionDecl{fn}, EntryName: fn.Name}
}

// Fib returns an iterative Fibonacci:
//
//	fn fib(n: Int) -> Int {
//	    let mut a = 0
//	    let mut b = 1
//	    let mut i = 0
//	    while i < n {
//	        let next = a + b
//	        a = b
//	        b = next
//	        i = i + 1
//	    }
//	    a
//	}
func Fib() *typedast.Program {
	body := &typedast.Expr{
		Kind: typedast.BlockExpr{
			Stmts: []typedast.Stmt{
				typedast.LetStmt{Pattern: bindingPattern("a", mir.Int()), Type: mir.Int(), Value: intLit(0)},
				typedast.LetStmt{Pattern: bindingPattern("b", mir.Int()), Type: mir.Int(), Value: intLit(1)},
				typedast.LetStmt{Pattern: bindingPattern("i", mir.Int()), Type: mir.Int(), Value: intLit(0)},
				typedast.WhileStmt{
					Cond: &typedast.Expr{
						Kind: typedast.BinaryExpr{Op: mir.BinLt, Left: varOf("i", mir.Int()), Right: varOf("n", mir.Int())},
						Type: mir.Bool(),
					},
					Body: &typedast.Expr{
						Kind: typedast.BlockExpr{
							Stmts: []typedast.Stmt{
								typedast.LetStmt{
									Pattern: bindingPattern("next", mir.Int()),
									Type:    mir.Int(),
									Value: &typedast.Expr{
										Kind: typedast.BinaryExpr{Op: mir.BinAdd, Left: varOf("a", mir.Int()), Right: varOf("b", mir.Int())},
										Type: mir.Int(),
									},
								},
								typedast.AssignStmt{Target: varOf("a", mir.Int()), Value: varOf("b", mir.Int())},
								typedast.AssignStmt{Target: varOf("b", mir.Int()), Value: varOf("next", mir.Int())},
								typedast.AssignStmt{
									Target: varOf("i", mir.Int()),
									Value: &typedast.Expr{
										Kind: typedast.BinaryExpr{Op: mir.BinAdd, Left: varOf("i", mir.Int()), Right: intLit(1)},
										Type: mir.Int(),
									},
								},
							},
						},
						Type: mir.Unit(),
					},
				},
			},
			Tail: varOf("a", mir.Int()),
		},
		Type: mir.Int(),
	}

	fn := &typedast.FunctionDecl{
		Name:       "fib",
		Params:     []typedast.Param{{Name: "n", Type: mir.Int()}},
		ReturnType: mir.Int(),
		IsPublic:   true,
		Body:       body,
	}
	return &typedast.Program{Functions: []*typedast.FunctionDecl{fn}, EntryName: fn.Name}
}

// SpawnJoin returns `fn spawn_join() -> Int { join(spawn { 42 }) }`,
// exercising the Async effect lowering (spec.md §5.2).
func SpawnJoin() *typedast.Program {
	spawned := &typedast.Expr{
		Kind: typedast.SpawnExpr{Body: intLit(42)},
		Type: mir.Int(),
	}
	joined := &typedast.Expr{
		Kind: typedast.JoinExpr{Handle: spawned},
		Type: mir.Int(),
	}
	fn := &typedast.FunctionDecl{
		Name:       "spawn_join",
		ReturnType: mir.Int(),
		IsPublic:   true,
		EffectRow:  mir.EffectRow{IsOpen: true},
		Body:       joined,
	}
	return &typedast.Program{Functions: []*typedast.FunctionDecl{fn}, EntryName: fn.Name}
}

// Catalog maps a program's name to its constructor, for CLI selection by
// `-program <name>`.
var Catalog = map[string]func() *typedast.Program{
	"identity":   Identity,
	"add":        Add,
	"abs":        Abs,
	"fib":        Fib,
	"spawn_join": SpawnJoin,
}

// Names returns the catalog's keys in sorted order, for flag usage text.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for name := range Catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
