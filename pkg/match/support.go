package match

import "github.com/Il-Capitano/bozon-sub003/internal/types"

// HasAutoPlaceholder reports whether t contains an auto terminator
// anywhere in its structure (itself, or recursively inside a tuple's
// element types). Used to decide whether an if/switch destination still
// needs type deduction (spec.md 4.3.4) before arm matching.
func HasAutoPlaceholder(t *types.Type) bool {
	if t == nil {
		return false
	}
	switch term := t.Term.(type) {
	case types.AutoType:
		return true
	case types.TupleType:
		for _, e := range term.Elems {
			if HasAutoPlaceholder(e) {
				return true
			}
		}
	}

	return false
}

// ExpandVariadicTail expands a tuple type ending in a variadic element to
// arity n, per spec.md 4.4. k is the count of non-variadic prefix
// elements; the tail is repeated n-k times. A no-op when elems does not
// end in a variadic element, or when n < k.
func ExpandVariadicTail(elems []*types.Type, n int) []*types.Type {
	if len(elems) == 0 {
		return elems
	}
	last := elems[len(elems)-1]
	m, ok := lastModKind(last)
	if !ok || m != types.ModVariadic {
		return elems
	}
	k := len(elems) - 1
	if n < k {
		return elems
	}
	out := make([]*types.Type, 0, n)
	out = append(out, elems[:k]...)
	tailElem := withoutLastMod(last)
	for i := 0; i < n-k; i++ {
		out = append(out, tailElem)
	}

	return out
}

func lastModKind(t *types.Type) (types.ModKind, bool) {
	if len(t.Mods) == 0 {
		return 0, false
	}

	return t.Mods[0].Kind, true
}

func withoutLastMod(t *types.Type) *types.Type {
	if len(t.Mods) == 0 {
		return t
	}

	return &types.Type{Mods: t.Mods[1:], Term: t.Term}
}

// classifyReference computes the reference_match_kind spec.md 4.4
// describes: a small total function from (source value-category,
// destination reference modifier) to the kind the scorer ranks by.
func classifyReference(destRefMod types.ModKind, category types.ValueCategory, srcIsMut bool, destIsMut bool) (ReferenceKind, bool) {
	switch destRefMod {
	case types.ModLvalueReference:
		if category != types.ValueCategoryLvalue {
			return RefNone, false
		}
		if destIsMut && !srcIsMut {
			return RefNone, false
		}
		if !destIsMut && srcIsMut {
			return RefConstPropagated, true
		}

		return RefExactLvalue, true

	case types.ModMoveReference:
		if category != types.ValueCategoryRvalue && category != types.ValueCategoryMovedLvalue &&
			category != types.ValueCategoryRvalueReference {
			return RefNone, false
		}

		return RefMove, true

	case types.ModAutoReference, types.ModAutoReferenceMut:
		return RefAuto, true

	default:
		return RefNone, false
	}
}

// DecomposeType computes the full annotated destructure type for a
// tuple/array destructuring declaration (spec.md 4.4): descend both the
// declared sub-types and the initialiser's static type in parallel,
// propagating outer mutability and reference-ness onto each leaf. subTypes
// holds one entry per sub-declaration (possibly with a trailing variadic
// entry); srcType is the initialiser's type.
func DecomposeType(subTypes []*types.Type, srcType *types.Type, outerMut bool) ([]*types.Type, bool) {
	srcStripped := srcType.RemoveAnyMut()

	switch term := srcStripped.Term.(type) {
	case types.TupleType:
		if len(srcStripped.Mods) != 0 {
			return nil, false
		}
		expanded := ExpandVariadicTail(subTypes, len(term.Elems))
		if len(expanded) != len(term.Elems) {
			return nil, false
		}
		out := make([]*types.Type, len(expanded))
		for i, sub := range expanded {
			out[i] = stampMutability(sub, term.Elems[i], outerMut)
		}

		return out, true

	default:
		// Array-wise: every sub-declaration shares the single homogeneous
		// element type, per spec.md 4.4.
		m, ok := lastModKind(srcStripped)
		if !ok || (m != types.ModArray && m != types.ModArraySlice) {
			return nil, false
		}
		elemType := withoutLastMod(srcStripped)
		out := make([]*types.Type, len(subTypes))
		for i, sub := range subTypes {
			out[i] = stampMutability(sub, elemType, outerMut)
		}

		return out, true
	}
}

// stampMutability returns declared's shape (auto leaves filled from
// inferred) with outerMut propagated in as a leading qualifier when
// declared does not already specify one.
func stampMutability(declared, inferred *types.Type, outerMut bool) *types.Type {
	if _, isAuto := declared.RemoveAnyMut().Term.(types.AutoType); !isAuto {
		return declared
	}
	if !outerMut {
		return inferred
	}

	return &types.Type{
		Mods: append([]types.Modifier{{Kind: types.ModMut}}, inferred.Mods...),
		Term: inferred.Term,
	}
}
