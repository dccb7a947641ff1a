package expect

// Simplify normalizes a tree to its minimal equivalent form. It is
// idempotent and never changes which calls are live.
//
// Rules:
//   - Empty children are dropped from group lists
//   - a nested Unordered flattens into an Unordered parent, and Ordered
//     into Ordered; never across kinds
//   - a group with zero children collapses to Empty
//   - a group with exactly one child collapses to that child, unwrapped
func Simplify(tree Node) Node {
	switch n := tree.(type) {
	case Unordered:
		return rebuildGroup(n.Children, false)
	case Ordered:
		return rebuildGroup(n.Children, true)
	default:
		return tree
	}
}

// rebuildGroup simplifies children, drops empties, and flattens same-kind
// nesting, then collapses degenerate groups.
func rebuildGroup(children []Node, ordered bool) Node {
	kept := make([]Node, 0, len(children))
	for _, child := range children {
		simplified := Simplify(child)
		switch c := simplified.(type) {
		case Empty:
			// dropped
		case Unordered:
			if !ordered {
				kept = append(kept, c.Children...)
			} else {
				kept = append(kept, c)
			}
		case Ordered:
			if ordered {
				kept = append(kept, c.Children...)
			} else {
				kept = append(kept, c)
			}
		default:
			kept = append(kept, simplified)
		}
	}

	switch len(kept) {
	case 0:
		return Empty{}
	case 1:
		return kept[0]
	}
	if ordered {
		return Ordered{Children: kept}
	}
	return Unordered{Children: kept}
}
