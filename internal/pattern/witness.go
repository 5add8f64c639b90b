package pattern

// Witness is a concrete example pattern not covered by a matrix, used to
// render a "missing match arm" diagnostic (spec.md §7's type-error
// catalog feeds Witness.String() into a Suggestion).
type Witness struct {
	Ctor   Constructor
	Fields []Witness
}

// witnessFor builds the witness pattern for a constructor that
// compileAt/IsUseful left uncovered at column 0: ctor applied to `arity`
// wildcard sub-witnesses. Used by
// CheckExhaustiveness to render concrete missing patterns instead of just
// reporting non-exhaustiveness.
func witnessFor(ctor Constructor, arity int) Witness {
	fields := make([]Witness, arity)
	for i := range fields {
		fields[i] = Witness{Ctor: Wildcard}
	}
	return Witness{Ctor: ctor, Fields: fields}
}

func (w Witness) String() string {
	switch w.Ctor.Kind {
	case CtorWildcard:
		return "_"
	case CtorBool:
		if w.Ctor.Bool {
			return "true"
		}
		return "false"
	case CtorUnit:
		return "()"
	case CtorVariant:
		if len(w.Fields) == 0 {
			return w.Ctor.VariantName
		}
		return w.Ctor.VariantName + "(" + joinWitnesses(w.Fields) + ")"
	case CtorTuple:
		return "(" + joinWitnesses(w.Fields) + ")"
	case CtorStruct:
		return w.Ctor.StructName + " { .. }"
	case CtorArray:
		return "[" + joinWitnesses(w.Fields) + "]"
	default:
		return "_"
	}
}

func joinWitnesses(ws []Witness) string {
	s := ""
	for i, w := range ws {
		if i > 0 {
			s += ", "
		}
		s += w.String()
	}
	return s
}
