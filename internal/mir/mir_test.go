package mir

import (
	"strings"
	"testing"
)

// addFn builds fn add(a, b: Int) -> Int = a + b, matching spec.md scenario S5.
func addFn() *Function {
	f := NewFunction(0, "add", Int())
	f.AddLocal(LocalDecl{Type: Int(), Name: "a"})
	f.AddLocal(LocalDecl{Type: Int(), Name: "b"})
	f.Params = []LocalID{1, 2}
	f.IsPublic = true

	bb := f.AddBlock()
	block := f.Block(bb)
	block.Statements = []Statement{
		Assign{
			Place: PlaceOf(ReturnPlace),
			RHS: BinaryOp{
				Op: BinAdd,
				X:  Copy{Place: PlaceOf(1)},
				Y:  Copy{Place: PlaceOf(2)},
			},
		},
	}
	block.Terminator = Return{}
	return f
}

func TestFunctionValidate(t *testing.T) {
	f := addFn()
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsZeroBlocks(t *testing.T) {
	f := NewFunction(0, "empty", Unit())
	if err := f.Validate(); err == nil {
		t.Fatal("expected validation error for zero-block function")
	}
}

func TestValidateRejectsMissingTerminator(t *testing.T) {
	f := NewFunction(0, "broken", Unit())
	f.AddBlock()
	if err := f.Validate(); err == nil {
		t.Fatal("expected validation error for block missing terminator")
	}
}

func TestValidateRejectsDanglingSuccessor(t *testing.T) {
	f := NewFunction(0, "dangling", Unit())
	bb := f.AddBlock()
	f.Block(bb).Terminator = Goto{Target: 99}
	if err := f.Validate(); err == nil {
		t.Fatal("expected validation error for dangling successor")
	}
}

func TestPrettyPrintAddFunction(t *testing.T) {
	p := &Program{Functions: []*Function{addFn()}}
	out := PrettyPrint(p)
	for _, want := range []string{"fn add(%1: Int, %2: Int) -> Int { // fn#0", "bb0: {", "return;"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q; got:\n%s", want, out)
		}
	}
}

func TestIsCopy(t *testing.T) {
	cases := []struct {
		name string
		ty   Type
		want bool
	}{
		{"bool", Bool(), true},
		{"int", Int(), true},
		{"ref", Ref(String()), true},
		{"string", String(), false},
		{"array", Array(Int()), false},
		{"struct", Struct(0), false},
		{"tuple of copy", Tuple(Int(), Bool()), true},
		{"tuple with non-copy", Tuple(Int(), String()), false},
		{"optional copy", Optional(Int()), true},
		{"optional non-copy", Optional(String()), false},
		{"result both copy", Result(Int(), Bool()), true},
		{"result non-copy err", Result(Int(), String()), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsCopy(c.ty); got != c.want {
				t.Errorf("IsCopy(%s) = %v, want %v", typeString(c.ty), got, c.want)
			}
		})
	}
}

func TestSuccessorsSwitchInt(t *testing.T) {
	term := SwitchInt{
		Discriminant: Copy{Place: PlaceOf(1)},
		Cases:        []SwitchCase{{Value: 0, Target: 1}, {Value: 1, Target: 2}},
		Otherwise:    3,
	}
	succ := Successors(term)
	if len(succ) != 3 {
		t.Fatalf("expected 3 successors, got %d", len(succ))
	}
}
