package expect

// Excess reduces a tree to the minimal sub-tree of expectations that are
// not yet allowed to be skipped. It drives both the Ordered gating rule in
// Live and the teardown check: a session may only finish when the excess
// of its tree is Empty.
//
// A Single with a zero minimum is already satisfiable as "zero more times"
// and reduces to Empty; a Single with a positive minimum is kept unchanged.
// Groups map Excess over their children and simplify.
//
// Excess is idempotent and commutes with Simplify.
func Excess(tree Node) Node {
	switch n := tree.(type) {
	case Empty:
		return Empty{}
	case Single:
		if !n.Card.Mandatory() {
			return Empty{}
		}
		return n
	case Unordered:
		return Simplify(Unordered{Children: excessChildren(n.Children)})
	case Ordered:
		return Simplify(Ordered{Children: excessChildren(n.Children)})
	default:
		return Empty{}
	}
}

func excessChildren(children []Node) []Node {
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = Excess(c)
	}
	return out
}

// Cleared reports whether the tree has no mandatory residue left. An
// Ordered group only offers a child's steps once every earlier child is
// cleared in this sense - not once it is fully exhausted.
func Cleared(tree Node) bool {
	return IsEmpty(Excess(tree))
}
