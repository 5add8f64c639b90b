package diagnostic

import "fmt"

// Diagnostic is a compiler-emitted error, warning, note, or help message:
// severity, optional error code, a message, its spans, fix suggestions,
// child diagnostics (notes/helps attached to an error), and the cascade
// bookkeeping (root-cause flag, related error ids) used to suppress
// diagnostics that are just fallout from an earlier one.
type Diagnostic struct {
	Code            string
	Severity        Severity
	Message         string
	Spans           MultiSpan
	Suggestions     []Suggestion
	Children        []Diagnostic
	IsRootCause     bool
	RelatedErrorIDs []string
}

func New(severity Severity, code, message string) Diagnostic {
	return Diagnostic{
		Code:        code,
		Severity:    severity,
		Message:     message,
		IsRootCause: true,
	}
}

func Error(code, message string) Diagnostic   { return New(SeverityError, code, message) }
func Warning(code, message string) Diagnostic { return New(SeverityWarning, code, message) }
func Note(message string) Diagnostic          { return New(SeverityNote, "", message) }
func Help(message string) Diagnostic          { return New(SeverityHelp, "", message) }

func (d Diagnostic) WithSpans(spans MultiSpan) Diagnostic {
	d.Spans = spans
	return d
}

func (d Diagnostic) WithPrimarySpan(span SourceSpan, message string) Diagnostic {
	d.Spans.PushPrimary(span, message)
	return d
}

func (d Diagnostic) WithSecondarySpan(span SourceSpan, message string) Diagnostic {
	d.Spans.PushSecondary(span, message)
	return d
}

func (d Diagnostic) WithSuggestion(s Suggestion) Diagnostic {
	d.Suggestions = append(d.Suggestions, s)
	return d
}

func (d Diagnostic) WithSuggestions(ss ...Suggestion) Diagnostic {
	d.Suggestions = append(d.Suggestions, ss...)
	return d
}

func (d Diagnostic) WithChild(child Diagnostic) Diagnostic {
	d.Children = append(d.Children, child)
	return d
}

// AsCascade marks this diagnostic as fallout from an earlier root-cause
// error rather than an independent failure.
func (d Diagnostic) AsCascade() Diagnostic {
	d.IsRootCause = false
	return d
}

func (d Diagnostic) WithRelated(errorID string) Diagnostic {
	d.RelatedErrorIDs = append(d.RelatedErrorIDs, errorID)
	return d
}

// DocsURL returns the documentation link for this diagnostic's code, if it
// has one.
func (d Diagnostic) DocsURL(baseURL string) (string, bool) {
	if d.Code == "" {
		return "", false
	}
	return fmt.Sprintf("%s/%s", baseURL, d.Code), true
}

func (d Diagnostic) HasSpans() bool       { return !d.Spans.IsEmpty() }
func (d Diagnostic) HasSuggestions() bool { return len(d.Suggestions) > 0 }

func (d Diagnostic) HasAutoApplicableSuggestions() bool {
	for _, s := range d.Suggestions {
		if s.CanAutoApply() {
			return true
		}
	}
	return false
}
