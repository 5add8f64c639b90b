// Package diagnostic implements the structured diagnostic model the
// compiler core emits: severities, multi-span labels, fix suggestions, and
// a catalog that turns aerr.Error values into rich Diagnostic records.
// Rendering (terminal colors, source-line context) is downstream of this
// package (spec.md §4.8's stated non-goal).
package diagnostic

import "fmt"

// Span is a byte-offset range into a single source file.
type Span struct {
	Start int
	End   int
}

// SourceSpan locates a Span within a named source file.
type SourceSpan struct {
	File string
	Span
}

// NewSourceSpan builds a SourceSpan from a file path and byte offsets.
func NewSourceSpan(file string, start, end int) SourceSpan {
	return SourceSpan{File: file, Span: Span{Start: start, End: end}}
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%s:%d-%d", s.File, s.Start, s.End)
}

// LabelStyle distinguishes the primary offending span from supporting
// secondary spans within a MultiSpan.
type LabelStyle int

const (
	LabelPrimary LabelStyle = iota
	LabelSecondary
)

// Label attaches a message to a span at a given style.
type Label struct {
	Span    SourceSpan
	Message string
	Style   LabelStyle
}

// MultiSpan is the set of labeled spans attached to one Diagnostic: exactly
// one primary location plus zero or more secondary locations providing
// context (e.g. where an expected type was declared).
type MultiSpan struct {
	Labels []Label
}

func (m *MultiSpan) PushPrimary(span SourceSpan, message string) {
	m.Labels = append(m.Labels, Label{Span: span, Message: message, Style: LabelPrimary})
}

func (m *MultiSpan) PushSecondary(span SourceSpan, message string) {
	m.Labels = append(m.Labels, Label{Span: span, Message: message, Style: LabelSecondary})
}

func (m *MultiSpan) IsEmpty() bool { return len(m.Labels) == 0 }

// Primary returns the first primary label, if any.
func (m *MultiSpan) Primary() (Label, bool) {
	for _, l := range m.Labels {
		if l.Style == LabelPrimary {
			return l, true
		}
	}
	return Label{}, false
}
