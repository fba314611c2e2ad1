package match

// TypeKind classifies how closely a matched value-expression's type agrees
// with its destination, ordered worst-last: a greater TypeKind is always a
// worse match (spec.md 4.3.3).
type TypeKind byte

const (
	ExactMatch TypeKind = iota
	ImplicitLiteralConversion
	DirectMatch
	GenericMatch
	ImplicitConversion
)

func (k TypeKind) String() string {
	names := [...]string{
		"exact_match", "implicit_literal_conversion", "direct_match",
		"generic_match", "implicit_conversion",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return "unknown_type_kind"
}

// ReferenceKind is the small total function from (source type, value
// category) spec.md 4.4 describes, used only by the scorer to rank how an
// expression binds to a reference destination.
type ReferenceKind byte

const (
	// RefNone: the destination is not a reference, or no binding occurred.
	RefNone ReferenceKind = iota
	// RefExactLvalue: an lvalue binds to an lvalue_reference of matching mutability.
	RefExactLvalue
	// RefConstPropagated: a mut lvalue binds to a non-mut lvalue_reference.
	RefConstPropagated
	// RefMove: an rvalue or moved-from lvalue binds to a move_reference.
	RefMove
	// RefAuto: an auto_reference/auto_reference_mut deduced from the source.
	RefAuto
)

func (k ReferenceKind) String() string {
	names := [...]string{"none", "exact_lvalue", "const_propagated", "move", "auto"}
	if int(k) < len(names) {
		return names[k]
	}

	return "unknown_reference_kind"
}

// Score is either a single leaf (modifier-depth, reference-kind, type-kind)
// triple or, for composite matches (tuples, function signatures, if/switch
// branch sets), a vector of per-element sub-scores (spec.md 4.3.3).
type Score struct {
	ModifierDepth int
	Ref           ReferenceKind
	Type          TypeKind
	Sub           []Score
}

func leafScore(depth int, ref ReferenceKind, tk TypeKind) Score {
	return Score{ModifierDepth: depth, Ref: ref, Type: tk}
}

func compositeScore(sub []Score) Score {
	return Score{Sub: sub}
}

func (s Score) isComposite() bool { return s.Sub != nil }

// AddDepth returns s with k added to every modifier-depth field in the
// tree, per spec.md 4.3.3's "adding an integer k to a score" rule — used
// when a match recurses through one more compatible modifier layer.
func (s Score) AddDepth(k int) Score {
	if s.isComposite() {
		sub := make([]Score, len(s.Sub))
		for i, e := range s.Sub {
			sub[i] = e.AddDepth(k)
		}

		return compositeScore(sub)
	}

	s.ModifierDepth += k

	return s
}

// compareLeaf orders two leaf scores: lower modifier-depth is better,
// ties broken by reference-kind in declaration order (RefNone best, then
// RefExactLvalue, RefConstPropagated, RefMove, RefAuto), then by type-kind.
func compareLeaf(a, b Score) int {
	switch {
	case a.ModifierDepth < b.ModifierDepth:
		return -1
	case a.ModifierDepth > b.ModifierDepth:
		return 1
	}
	switch {
	case a.Ref < b.Ref:
		return -1
	case a.Ref > b.Ref:
		return 1
	}
	switch {
	case a.Type < b.Type:
		return -1
	case a.Type > b.Type:
		return 1
	default:
		return 0
	}
}

// Compare orders two scores, lower (better) first. Ambiguous composite
// conflicts (spec.md 4.3.3's per-element rule) compare equal (0); use
// Ambiguous to distinguish a genuine tie from a reported ambiguity.
func Compare(a, b Score) int {
	if a.isComposite() || b.isComposite() {
		return compareComposite(a, b)
	}

	return compareLeaf(a, b)
}

func compareComposite(a, b Score) int {
	n := len(a.Sub)
	if len(b.Sub) > n {
		n = len(b.Sub)
	}
	favorsA, favorsB := false, false
	for i := 0; i < n; i++ {
		var ea, eb Score
		if i < len(a.Sub) {
			ea = a.Sub[i]
		}
		if i < len(b.Sub) {
			eb = b.Sub[i]
		}
		switch Compare(ea, eb) {
		case -1:
			favorsA = true
		case 1:
			favorsB = true
		}
	}

	switch {
	case favorsA && !favorsB:
		return -1
	case favorsB && !favorsA:
		return 1
	default:
		// Neither direction is unanimous, or both are equal: this is either
		// a genuine tie or the ambiguous-conflict case Ambiguous resolves.
		return 0
	}
}

// Ambiguous reports whether a and b are the "per-element conflict" spec.md
// 4.3.3 singles out: one side wins only on elements where the margin is an
// implicit-literal-conversion difference, while the other side wins on
// elements with a real structural mismatch. A plain tie (every element
// equal) is not ambiguous.
func Ambiguous(a, b Score) bool {
	if !a.isComposite() && !b.isComposite() {
		return false
	}
	n := len(a.Sub)
	if len(b.Sub) > n {
		n = len(b.Sub)
	}
	favorsA, favorsB := false, false
	aWinsAreLiteralOnly, bWinsAreLiteralOnly := true, true
	any := false
	for i := 0; i < n; i++ {
		var ea, eb Score
		if i < len(a.Sub) {
			ea = a.Sub[i]
		}
		if i < len(b.Sub) {
			eb = b.Sub[i]
		}
		switch Compare(ea, eb) {
		case -1:
			favorsA, any = true, true
			if !isLiteralConversionMargin(ea, eb) {
				aWinsAreLiteralOnly = false
			}
		case 1:
			favorsB, any = true, true
			if !isLiteralConversionMargin(ea, eb) {
				bWinsAreLiteralOnly = false
			}
		}
	}
	if !any || !favorsA || !favorsB {
		return false
	}

	// Ambiguous exactly when one direction's wins are all explainable by
	// implicit-literal-conversion margins and the other direction's are not.
	return aWinsAreLiteralOnly != bWinsAreLiteralOnly
}

// isLiteralConversionMargin reports whether the better of the two leaf
// scores wins specifically because the worse one is an
// implicit_literal_conversion (rather than a deeper structural mismatch).
func isLiteralConversionMargin(a, b Score) bool {
	if a.isComposite() || b.isComposite() {
		return false
	}

	return a.Type == ImplicitLiteralConversion || b.Type == ImplicitLiteralConversion
}
