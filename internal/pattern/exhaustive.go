package pattern

// ExhaustivenessResult is the outcome of checking a match matrix: either
// every value of the scrutinee type is covered, or MissingPatterns lists
// concrete examples the diagnostic layer can render.
type ExhaustivenessResult struct {
	IsExhaustive    bool
	MissingPatterns []Witness
}

// CheckExhaustiveness reports whether matrix covers every value of the
// scrutinee's column types, via IsUseful against the all-wildcards row:
// that row is useful exactly when some value isn't matched by any arm.
func CheckExhaustiveness(matrix *PatternMatrix, types []Type) ExhaustivenessResult {
	wildcardRow := make([]DeconstructedPattern, len(types))
	for i := range wildcardRow {
		wildcardRow[i] = WildcardPattern()
	}
	if !IsUseful(matrix, wildcardRow) {
		return ExhaustivenessResult{IsExhaustive: true}
	}

	missing := missingWitnesses(matrix, types)
	if len(missing) == 0 {
		// The wildcard row is useful but no concrete witness could be
		// enumerated (an infinite-domain column with no finite
		// constructor set, e.g. bare Int/Float/String) — report the
		// generic wildcard as the witness.
		missing = []Witness{{Ctor: Wildcard}}
	}
	return ExhaustivenessResult{IsExhaustive: false, MissingPatterns: missing}
}

// missingWitnesses walks the same specialize/default recursion compileAt
// uses, collecting one witness per constructor (or wildcard range) left
// uncovered after every row has been accounted for.
func missingWitnesses(matrix *PatternMatrix, types []Type) []Witness {
	if len(types) == 0 {
		return nil
	}
	headCtors := matrix.HeadConstructors()
	ctorSet := ForType(types[0])

	if ctorSet.IsInfinite {
		def := matrix.DefaultMatrix()
		if def.IsEmpty() {
			return []Witness{{Ctor: Wildcard}}
		}
		for _, w := range missingWitnesses(def, restTypes(types)) {
			return []Witness{w}
		}
		return nil
	}

	var missing []Witness
	for _, ctor := range ctorSet.All {
		if _, covered := headCtors[ctor]; !covered {
			missing = append(missing, witnessFor(ctor, ctor.Arity(types[0])))
			continue
		}
		specialized := matrix.Specialize(ctor, ctor.Arity(types[0]))
		sub := missingWitnesses(specialized, buildSubtreeTypes(types[0], ctor, types))
		for _, w := range sub {
			missing = append(missing, Witness{Ctor: ctor, Fields: []Witness{w}})
		}
	}
	return missing
}
