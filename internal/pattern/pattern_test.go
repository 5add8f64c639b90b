package pattern

import "testing"

func TestBoolExhaustive(t *testing.T) {
	ty := Type{Kind: KindBool}
	m := NewMatrix([]Type{ty})
	m.PushRow(PatternRow{Patterns: []DeconstructedPattern{{Ctor: Constructor{Kind: CtorBool, Bool: true}}}, ArmIndex: 0})
	m.PushRow(PatternRow{Patterns: []DeconstructedPattern{{Ctor: Constructor{Kind: CtorBool, Bool: false}}}, ArmIndex: 1})

	result := CheckExhaustiveness(m, []Type{ty})
	if !result.IsExhaustive {
		t.Fatalf("expected exhaustive, got missing %+v", result.MissingPatterns)
	}
}

func TestBoolNonExhaustive(t *testing.T) {
	ty := Type{Kind: KindBool}
	m := NewMatrix([]Type{ty})
	m.PushRow(PatternRow{Patterns: []DeconstructedPattern{{Ctor: Constructor{Kind: CtorBool, Bool: true}}}, ArmIndex: 0})

	result := CheckExhaustiveness(m, []Type{ty})
	if result.IsExhaustive {
		t.Fatalf("expected non-exhaustive")
	}
	if len(result.MissingPatterns) == 0 {
		t.Fatalf("expected at least one missing pattern")
	}
}

func TestWildcardExhaustive(t *testing.T) {
	ty := Type{Kind: KindInt}
	m := NewMatrix([]Type{ty})
	m.PushRow(PatternRow{Patterns: []DeconstructedPattern{WildcardPattern()}, ArmIndex: 0})

	result := CheckExhaustiveness(m, []Type{ty})
	if !result.IsExhaustive {
		t.Fatalf("expected wildcard to be exhaustive")
	}
}

func TestEnumExhaustive(t *testing.T) {
	ty := Type{
		Kind:     KindEnum,
		EnumName: "Option",
		Variants: []EnumVariant{
			{Name: "Some", Fields: []Type{{Kind: KindInt}}},
			{Name: "None"},
		},
	}
	m := NewMatrix([]Type{ty})
	m.PushRow(PatternRow{
		Patterns: []DeconstructedPattern{{
			Ctor:   Constructor{Kind: CtorVariant, VariantName: "Some", VariantIndex: 0},
			Fields: []DeconstructedPattern{WildcardPattern()},
		}},
		ArmIndex: 0,
	})
	m.PushRow(PatternRow{
		Patterns: []DeconstructedPattern{{Ctor: Constructor{Kind: CtorVariant, VariantName: "None", VariantIndex: 1}}},
		ArmIndex: 1,
	})

	result := CheckExhaustiveness(m, []Type{ty})
	if !result.IsExhaustive {
		t.Fatalf("expected enum match to be exhaustive, missing %+v", result.MissingPatterns)
	}
}

func TestEnumMissingVariant(t *testing.T) {
	ty := Type{
		Kind:     KindEnum,
		EnumName: "Option",
		Variants: []EnumVariant{
			{Name: "Some", Fields: []Type{{Kind: KindInt}}},
			{Name: "None"},
		},
	}
	m := NewMatrix([]Type{ty})
	m.PushRow(PatternRow{
		Patterns: []DeconstructedPattern{{
			Ctor:   Constructor{Kind: CtorVariant, VariantName: "Some", VariantIndex: 0},
			Fields: []DeconstructedPattern{WildcardPattern()},
		}},
		ArmIndex: 0,
	})

	result := CheckExhaustiveness(m, []Type{ty})
	if result.IsExhaustive {
		t.Fatalf("expected missing None variant to be reported")
	}
}

func TestSimpleBoolDecisionTree(t *testing.T) {
	ty := Type{Kind: KindBool}
	m := NewMatrix([]Type{ty})
	m.PushRow(PatternRow{Patterns: []DeconstructedPattern{{Ctor: Constructor{Kind: CtorBool, Bool: true}}}, ArmIndex: 0})
	m.PushRow(PatternRow{Patterns: []DeconstructedPattern{{Ctor: Constructor{Kind: CtorBool, Bool: false}}}, ArmIndex: 1})

	tree := Compile(m, []Type{ty})
	if tree.Kind != TreeSwitch {
		t.Fatalf("expected switch node, got %v", tree.Kind)
	}
	if len(tree.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(tree.Cases))
	}
}

func TestWildcardDecisionTreeIsLeaf(t *testing.T) {
	ty := Type{Kind: KindInt}
	m := NewMatrix([]Type{ty})
	m.PushRow(PatternRow{Patterns: []DeconstructedPattern{WildcardPattern()}, ArmIndex: 0})

	tree := Compile(m, []Type{ty})
	if tree.Kind != TreeLeaf || tree.LeafArmIndex != 0 {
		t.Fatalf("expected leaf arm 0, got %+v", tree)
	}
}

func TestOptimizeCollapsesIdenticalLeaves(t *testing.T) {
	tree := DecisionTree{
		Kind:  TreeSwitch,
		Place: RootPlace(),
		Type:  Type{Kind: KindBool},
		Cases: []SwitchCase{
			{Constructor: Constructor{Kind: CtorBool, Bool: true}, Subtree: DecisionTree{Kind: TreeLeaf, LeafArmIndex: 0}},
			{Constructor: Constructor{Kind: CtorBool, Bool: false}, Subtree: DecisionTree{Kind: TreeLeaf, LeafArmIndex: 0}},
		},
	}
	optimized := Optimize(tree)
	if optimized.Kind != TreeLeaf || optimized.LeafArmIndex != 0 {
		t.Fatalf("expected collapse to single leaf, got %+v", optimized)
	}
}

func TestTreeStatsSingleLeaf(t *testing.T) {
	stats := ComputeStats(DecisionTree{Kind: TreeLeaf, LeafArmIndex: 0})
	if stats.TotalNodes != 1 || stats.LeafNodes != 1 || stats.SwitchNodes != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestIsUsefulDetectsRedundantArm(t *testing.T) {
	ty := Type{Kind: KindBool}
	m := NewMatrix([]Type{ty})
	m.PushRow(PatternRow{Patterns: []DeconstructedPattern{WildcardPattern()}, ArmIndex: 0})

	redundant := []DeconstructedPattern{{Ctor: Constructor{Kind: CtorBool, Bool: true}}}
	if IsUseful(m, redundant) {
		t.Fatalf("expected a bool literal arm after a wildcard to be useless")
	}
}
