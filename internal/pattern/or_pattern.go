package pattern

import "github.com/cancelei/aria-lang-sub001/internal/typedast"

// ContainsOrPattern reports whether pat contains an Or-pattern anywhere in
// its structure, the trigger for ExpandOrPattern.
func ContainsOrPattern(pat *typedast.Pattern) bool {
	switch k := pat.Kind.(type) {
	case typedast.OrPattern:
		return true
	case typedast.BindingPattern:
		return k.Sub != nil && ContainsOrPattern(k.Sub)
	case typedast.TuplePattern:
		for _, p := range k.Elems {
			if ContainsOrPattern(p) {
				return true
			}
		}
		return false
	case typedast.StructPattern:
		for _, f := range k.Fields {
			if ContainsOrPattern(f.Pattern) {
				return true
			}
		}
		return false
	case typedast.EnumPattern:
		for _, p := range k.Elems {
			if ContainsOrPattern(p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ExpandOrPattern flattens a single top-level `a | b | c` arm into one
// pattern per alternative, so the exhaustiveness matrix and decision tree
// can each treat it as N ordinary rows sharing one arm body/index, the
// same trick match lowering and exhaustiveness checking both need instead
// of teaching every matrix operation about Or directly.
func ExpandOrPattern(pat *typedast.Pattern) []*typedast.Pattern {
	if or, ok := pat.Kind.(typedast.OrPattern); ok {
		var out []*typedast.Pattern
		for _, alt := range or.Alts {
			out = append(out, ExpandOrPattern(alt)...)
		}
		return out
	}
	return []*typedast.Pattern{pat}
}
