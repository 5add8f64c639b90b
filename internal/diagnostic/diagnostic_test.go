package diagnostic

import "testing"

func TestSeverity(t *testing.T) {
	if SeverityError.Prefix() != "error" {
		t.Fatalf("expected prefix %q, got %q", "error", SeverityError.Prefix())
	}
	if SeverityWarning.Prefix() != "warning" {
		t.Fatalf("expected prefix %q, got %q", "warning", SeverityWarning.Prefix())
	}
	if !SeverityError.BlocksCompilation() {
		t.Fatal("expected Error to block compilation")
	}
	if SeverityWarning.BlocksCompilation() {
		t.Fatal("expected Warning not to block compilation")
	}
}

func TestDiagnosticCreation(t *testing.T) {
	d := Error("E0001", "type mismatch")
	if d.Severity != SeverityError {
		t.Fatalf("expected Error severity, got %v", d.Severity)
	}
	if d.Code != "E0001" {
		t.Fatalf("expected code E0001, got %q", d.Code)
	}
	if d.Message != "type mismatch" {
		t.Fatalf("expected message %q, got %q", "type mismatch", d.Message)
	}
	if !d.IsRootCause {
		t.Fatal("expected a freshly created diagnostic to be a root cause")
	}
}

func TestDiagnosticWithSpans(t *testing.T) {
	span := NewSourceSpan("test.aria", 10, 20)
	d := Error("E0001", "type mismatch").
		WithPrimarySpan(span, "expected `Int`, found `String`")

	if !d.HasSpans() {
		t.Fatal("expected diagnostic to have spans")
	}
	if d.HasSuggestions() {
		t.Fatal("expected no suggestions")
	}
}

func TestDocsURL(t *testing.T) {
	d := Error("E0001", "type mismatch")
	url, ok := d.DocsURL("https://aria-lang.org/errors")
	if !ok {
		t.Fatal("expected a docs URL")
	}
	if url != "https://aria-lang.org/errors/E0001" {
		t.Fatalf("unexpected docs url: %q", url)
	}

	noCode := Note("just a note")
	if _, ok := noCode.DocsURL("https://aria-lang.org/errors"); ok {
		t.Fatal("expected no docs URL for a code-less diagnostic")
	}
}

func TestDiagnosticBuilderPattern(t *testing.T) {
	span1 := NewSourceSpan("test.aria", 10, 20)
	span2 := NewSourceSpan("test.aria", 50, 60)

	d := Error("E0001", "type mismatch").
		WithPrimarySpan(span1, "expected `String`, found `Int`").
		WithSecondarySpan(span2, "expected due to this annotation").
		WithSuggestion(MachineApplicableSuggestion("convert to string")).
		WithChild(Note("types must match"))

	if !d.HasSpans() {
		t.Fatal("expected spans")
	}
	if !d.HasSuggestions() {
		t.Fatal("expected suggestions")
	}
	if len(d.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(d.Children))
	}
}

func TestHasAutoApplicableSuggestions(t *testing.T) {
	d := Error("E0001", "type mismatch").
		WithSuggestion(MaybeIncorrectSuggestion("maybe this"))
	if d.HasAutoApplicableSuggestions() {
		t.Fatal("expected no auto-applicable suggestions")
	}

	d = d.WithSuggestion(MachineApplicableSuggestion("definitely this"))
	if !d.HasAutoApplicableSuggestions() {
		t.Fatal("expected an auto-applicable suggestion")
	}
}

func TestAsCascadeAndRelated(t *testing.T) {
	d := Error("E0001", "type mismatch").AsCascade().WithRelated("root-1")
	if d.IsRootCause {
		t.Fatal("expected cascade diagnostic not to be a root cause")
	}
	if len(d.RelatedErrorIDs) != 1 || d.RelatedErrorIDs[0] != "root-1" {
		t.Fatalf("unexpected related ids: %v", d.RelatedErrorIDs)
	}
}
