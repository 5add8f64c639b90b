package diagnostic

import (
	"testing"

	"github.com/cancelei/aria-lang-sub001/internal/aerr"
)

func TestFromErrorTypeMismatchWithAnnotation(t *testing.T) {
	primary := NewSourceSpan("main.aria", 20, 22)
	annotation := NewSourceSpan("main.aria", 5, 11)
	err := aerr.New(aerr.PhaseLower, aerr.KindTypeMismatch).Build()

	d := FromError(err, Context{
		Primary:  primary,
		Expected: "String",
		Found:    "Int",
		Source:   SourceAnnotation{Span: annotation},
	})

	if d.Code != "E0001" {
		t.Fatalf("expected E0001, got %s", d.Code)
	}
	label, ok := d.Spans.Primary()
	if !ok {
		t.Fatal("expected a primary label")
	}
	if label.Message != "expected `String`, found `Int`" {
		t.Fatalf("unexpected primary message: %q", label.Message)
	}
	if len(d.Spans.Labels) != 2 {
		t.Fatalf("expected a secondary span from the annotation source, got %d labels", len(d.Spans.Labels))
	}
	if !d.HasSuggestions() {
		t.Fatal("expected an Int->String conversion suggestion")
	}
	if !d.Suggestions[0].CanAutoApply() {
		t.Fatal("expected the Int->String suggestion to be machine-applicable")
	}
}

func TestFromErrorTypeMismatchOptionWrapping(t *testing.T) {
	err := aerr.New(aerr.PhaseLower, aerr.KindTypeMismatch).Build()
	d := FromError(err, Context{
		Primary:  NewSourceSpan("main.aria", 0, 1),
		Expected: "Int?",
		Found:    "Int",
	})
	if !d.HasSuggestions() {
		t.Fatal("expected a Some-wrapping suggestion")
	}
}

func TestFromErrorUndefinedVariableWithSimilarNames(t *testing.T) {
	err := aerr.New(aerr.PhaseLower, aerr.KindUndefinedVariable).Detail("coutn").Build()
	d := FromError(err, Context{
		Primary:      NewSourceSpan("main.aria", 3, 8),
		SimilarNames: []string{"count"},
	})

	if d.Code != "E1001" {
		t.Fatalf("expected E1001, got %s", d.Code)
	}
	if len(d.Children) != 1 {
		t.Fatalf("expected one similar-name child diagnostic, got %d", len(d.Children))
	}
}

func TestFromErrorUndefinedVariableNoSimilarNames(t *testing.T) {
	err := aerr.New(aerr.PhaseLower, aerr.KindUndefinedVariable).Detail("ghost").Build()
	d := FromError(err, Context{Primary: NewSourceSpan("main.aria", 0, 5)})

	if len(d.Children) != 1 {
		t.Fatalf("expected a generic note child, got %d", len(d.Children))
	}
	if d.Children[0].Severity != SeverityNote {
		t.Fatalf("expected a Note child, got %v", d.Children[0].Severity)
	}
}

func TestFromErrorNonExhaustive(t *testing.T) {
	err := aerr.New(aerr.PhaseCodegen, aerr.KindNonExhaustive).Build()
	d := FromError(err, Context{
		Primary:         NewSourceSpan("main.aria", 0, 10),
		MissingPatterns: "None",
	})
	if d.Code != "E4001" {
		t.Fatalf("expected E4001, got %s", d.Code)
	}
}

func TestFromErrorUnknownKindFallsBackToE9999(t *testing.T) {
	err := aerr.New(aerr.PhaseCodegen, aerr.Kind("some_future_kind")).Build()
	d := FromError(err, Context{})
	if d.Code != "E9999" {
		t.Fatalf("expected fallback code E9999, got %s", d.Code)
	}
}

func TestFindSimilarNames(t *testing.T) {
	names := FindSimilarNames("coutn", []string{"count", "counter", "total"}, 2)
	if len(names) == 0 || names[0] != "count" {
		t.Fatalf("expected count to be the closest match, got %v", names)
	}
}

func TestFindSimilarNamesRespectsMaxDistance(t *testing.T) {
	names := FindSimilarNames("xyz", []string{"count", "total"}, 1)
	if len(names) != 0 {
		t.Fatalf("expected no matches within distance 1, got %v", names)
	}
}
