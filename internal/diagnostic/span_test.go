package diagnostic

import "testing"

func TestMultiSpanPrimaryAndSecondary(t *testing.T) {
	var m MultiSpan
	if !m.IsEmpty() {
		t.Fatal("expected a fresh MultiSpan to be empty")
	}

	primary := NewSourceSpan("a.aria", 0, 5)
	secondary := NewSourceSpan("a.aria", 10, 15)
	m.PushPrimary(primary, "primary label")
	m.PushSecondary(secondary, "secondary label")

	if m.IsEmpty() {
		t.Fatal("expected a non-empty MultiSpan")
	}

	label, ok := m.Primary()
	if !ok {
		t.Fatal("expected a primary label")
	}
	if label.Message != "primary label" {
		t.Fatalf("unexpected primary label message: %q", label.Message)
	}
	if len(m.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(m.Labels))
	}
}

func TestMultiSpanNoPrimary(t *testing.T) {
	var m MultiSpan
	m.PushSecondary(NewSourceSpan("a.aria", 0, 1), "secondary only")
	if _, ok := m.Primary(); ok {
		t.Fatal("expected no primary label")
	}
}
