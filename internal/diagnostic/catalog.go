package diagnostic

import (
	"fmt"
	"sort"

	"github.com/cancelei/aria-lang-sub001/internal/aerr"
)

// BinaryOpSide names which operand of a binary expression a type mismatch
// came from.
type BinaryOpSide int

const (
	BinaryOpLeft BinaryOpSide = iota
	BinaryOpRight
)

// TypeSource names where an expected type came from, so a type-mismatch
// diagnostic can attach a secondary span explaining it (spec.md §4.8).
type TypeSource interface{ typeSource() }

type SourceAnnotation struct{ Span SourceSpan }
type SourceParameter struct {
	Name string
	Span SourceSpan
}
type SourceReturn struct{ Span SourceSpan }
type SourceContext struct {
	Description string
	Span        SourceSpan
}
type SourceAssignment struct{ Span SourceSpan }
type SourceBinaryOperator struct {
	Op   string
	Side BinaryOpSide
	Span SourceSpan
}
type SourceConditionalBranch struct{ Span SourceSpan }
type SourceUnknown struct{}

func (SourceAnnotation) typeSource()        {}
func (SourceParameter) typeSource()         {}
func (SourceReturn) typeSource()            {}
func (SourceContext) typeSource()           {}
func (SourceAssignment) typeSource()        {}
func (SourceBinaryOperator) typeSource()    {}
func (SourceConditionalBranch) typeSource() {}
func (SourceUnknown) typeSource()           {}

// Context carries the extra information the catalog needs beyond what
// aerr.Error itself stores: where the error occurred in the source, and
// (for type-mismatch diagnostics) what the two mismatched types were and
// where the expected one came from.
type Context struct {
	Primary         SourceSpan
	Expected, Found string
	Source          TypeSource
	SimilarNames    []string
	FieldName       string
	MissingPatterns string
}

// FromError converts a compiler *aerr.Error into a rich Diagnostic,
// attaching secondary spans and fix suggestions the way a human-authored
// diagnostic would. This is the catalog referenced by spec.md §4.8: it maps
// each error shape to a code, primary label, secondary labels sourced from
// a TypeSource, and optional suggestions driven by common mismatch
// patterns.
func FromError(err *aerr.Error, ctx Context) Diagnostic {
	switch err.Kind {
	case aerr.KindTypeMismatch:
		return typeMismatchDiagnostic(ctx)

	case aerr.KindUndefinedVariable:
		d := Error("E1001", fmt.Sprintf("undefined variable: `%s`", err.Detail)).
			WithPrimarySpan(ctx.Primary, "not found in this scope")
		return withSimilarNames(d, ctx.SimilarNames)

	case aerr.KindUndefinedFunction:
		d := Error("E1003", fmt.Sprintf("undefined function: `%s`", err.Detail)).
			WithPrimarySpan(ctx.Primary, "not found in this scope")
		return withSimilarNames(d, ctx.SimilarNames)

	case aerr.KindUndefinedType:
		return Error("E1002", fmt.Sprintf("undefined type: `%s`", err.Detail)).
			WithPrimarySpan(ctx.Primary, "type not found in this scope").
			WithChild(Note("types must be declared or imported before use"))

	case aerr.KindUndefinedField:
		return Error("E1004", fmt.Sprintf("field not found: `%s`", ctx.FieldName)).
			WithPrimarySpan(ctx.Primary, fmt.Sprintf("type `%s` has no field `%s`", ctx.Found, ctx.FieldName)).
			WithChild(Note("use dot notation to access struct fields"))

	case aerr.KindInvalidPattern:
		return Error("E4003", "invalid pattern").
			WithPrimarySpan(ctx.Primary, err.Detail)

	case aerr.KindNonExhaustive:
		return Error("E4001", "non-exhaustive patterns").
			WithPrimarySpan(ctx.Primary, fmt.Sprintf("missing patterns: %s", ctx.MissingPatterns)).
			WithChild(Help("ensure all possible cases are covered"))

	case aerr.KindUnreachablePattern:
		return Error("E4002", "unreachable pattern").
			WithPrimarySpan(ctx.Primary, "this pattern will never match").
			WithChild(Note("previous patterns already cover this case"))

	case aerr.KindUnsupportedFeature:
		return Error("E9002", "unsupported feature").
			WithPrimarySpan(ctx.Primary, err.Detail)

	case aerr.KindUnsupportedTarget:
		return Error("E9003", "unsupported compilation target").
			WithPrimarySpan(ctx.Primary, err.Detail)

	case aerr.KindEncodeFailure:
		return Error("E9004", "code generation failed").
			WithPrimarySpan(ctx.Primary, err.Detail)

	case aerr.KindCancelled:
		return Error("E6002", "task cancelled").WithPrimarySpan(ctx.Primary, "observed a cancelled token")

	case aerr.KindPanicked:
		return Error("E6003", "task panicked").WithPrimarySpan(ctx.Primary, err.Detail)

	case aerr.KindTimeout:
		return Error("E6004", "scope timed out").WithPrimarySpan(ctx.Primary, err.Detail)

	case aerr.KindInternal:
		return Error("E9001", "internal compiler error").WithPrimarySpan(ctx.Primary, err.Detail)

	default:
		return Error("E9999", err.Error())
	}
}

func typeMismatchDiagnostic(ctx Context) Diagnostic {
	d := Error("E0001", "type mismatch").
		WithPrimarySpan(ctx.Primary, fmt.Sprintf("expected `%s`, found `%s`", ctx.Expected, ctx.Found))

	switch src := ctx.Source.(type) {
	case SourceAnnotation:
		d = d.WithSecondarySpan(src.Span, fmt.Sprintf("expected `%s` due to this type annotation", ctx.Expected))
	case SourceParameter:
		d = d.WithSecondarySpan(src.Span, fmt.Sprintf("parameter `%s` expects type `%s`", src.Name, ctx.Expected))
	case SourceReturn:
		d = d.WithSecondarySpan(src.Span, fmt.Sprintf("function returns `%s`", ctx.Expected))
	case SourceContext:
		d = d.WithSecondarySpan(src.Span, fmt.Sprintf("expected `%s` %s", ctx.Expected, src.Description))
	case SourceAssignment:
		d = d.WithSecondarySpan(src.Span, fmt.Sprintf("assignment target has type `%s`", ctx.Expected))
	case SourceBinaryOperator:
		side := "left"
		if src.Side == BinaryOpRight {
			side = "right"
		}
		d = d.WithSecondarySpan(src.Span, fmt.Sprintf("%s operand of `%s` expects `%s`", side, src.Op, ctx.Expected))
	case SourceConditionalBranch:
		d = d.WithSecondarySpan(src.Span, fmt.Sprintf("all branches must have type `%s`", ctx.Expected))
	}

	if s, ok := suggestTypeConversion(ctx.Expected, ctx.Found); ok {
		d = d.WithSuggestion(s)
	}
	return d
}

func withSimilarNames(d Diagnostic, similar []string) Diagnostic {
	switch len(similar) {
	case 0:
		return d.WithChild(Note("variables must be declared before use"))
	case 1:
		return d.WithChild(Help(fmt.Sprintf("a similar name exists: `%s`", similar[0])))
	default:
		names := ""
		for i, n := range similar {
			if i > 0 {
				names += ", "
			}
			names += fmt.Sprintf("`%s`", n)
		}
		return d.WithChild(Help(fmt.Sprintf("similar names exist: %s", names)))
	}
}

// suggestTypeConversion proposes a fix for common mismatch shapes: numeric
// conversions, Option wrapping, and array element mismatches.
func suggestTypeConversion(expected, found string) (Suggestion, bool) {
	switch {
	case expected == "String" && found == "Int":
		return MachineApplicableSuggestion("convert to string using `.to_string()`"), true
	case expected == "Int" && found == "String":
		return MaybeIncorrectSuggestion("parse string to int using `.parse()`"), true
	case expected == "Float" && found == "Int":
		return MachineApplicableSuggestion("convert to float using `as Float`"), true
	case expected == "Int" && found == "Float":
		return MaybeIncorrectSuggestion("convert to int using `.floor()`, `.ceil()`, or `.round()` and then `as Int`"), true
	}

	if len(expected) > 0 && expected[len(expected)-1] == '?' && (len(found) == 0 || found[len(found)-1] != '?') {
		if expected[:len(expected)-1] == found {
			return MachineApplicableSuggestion("wrap value in Some: `Some(value)`"), true
		}
	}

	if len(expected) > 0 && len(found) > 0 && expected[0] == '[' && found[0] == '[' {
		return MaybeIncorrectSuggestion("ensure all array elements have the same type"), true
	}

	return Suggestion{}, false
}

// FindSimilarNames ranks candidates by Levenshtein distance to target,
// keeping those within maxDistance, closest first. Used to suggest a likely
// intended name for an undefined-variable or undefined-function error.
func FindSimilarNames(target string, candidates []string, maxDistance int) []string {
	type scored struct {
		name string
		dist int
	}
	var matches []scored
	for _, c := range candidates {
		if d := levenshtein(target, c); d <= maxDistance {
			matches = append(matches, scored{c, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// standardCodes seeds StandardRegistry with every code the catalog above
// can produce, matching spec.md §6.4's error-code table plus this
// implementation's extensions for concurrency and internal-error kinds.
var standardCodes = map[string]string{
	"E0001": "type mismatch",
	"E1001": "undefined variable",
	"E1002": "undefined type",
	"E1003": "undefined function",
	"E1004": "field not found",
	"E4001": "non-exhaustive patterns",
	"E4002": "unreachable pattern",
	"E4003": "invalid pattern",
	"E6002": "task cancelled",
	"E6003": "task panicked",
	"E6004": "scope timed out",
	"E9001": "internal compiler error",
	"E9002": "unsupported feature",
	"E9003": "unsupported compilation target",
	"E9004": "code generation failed",
	"E9999": "uncategorized error",
}
