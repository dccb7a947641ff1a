package expect

// LiveStep is one way the next call could be satisfied: the step that
// would absorb it, the step's priority, and the tree that would remain
// afterward. Residual trees are always simplified.
type LiveStep struct {
	Priority Priority
	Step     *Step
	Residual Node
}

// Live enumerates every step currently eligible to satisfy the next call,
// in registration order.
//
// Groups expand choose-one-of-n: exactly one child advances per call, so
// each entry's residual replaces only the chosen child and leaves its
// siblings untouched. For Ordered groups a child is only offered once
// every child before it is cleared (its Excess is Empty); the first child
// with mandatory residue is the last one considered.
func Live(tree Node) []LiveStep {
	switch n := tree.(type) {
	case Empty:
		return nil
	case Single:
		residual := Node(Empty{})
		if card, ok := n.Card.Decrement(); ok {
			residual = Single{Priority: n.Priority, Card: card, Step: n.Step}
		}
		return []LiveStep{{Priority: n.Priority, Step: n.Step, Residual: residual}}
	case Unordered:
		var steps []LiveStep
		for i, child := range n.Children {
			for _, ls := range Live(child) {
				steps = append(steps, LiveStep{
					Priority: ls.Priority,
					Step:     ls.Step,
					Residual: Simplify(Unordered{Children: replaceChild(n.Children, i, ls.Residual)}),
				})
			}
		}
		return steps
	case Ordered:
		var steps []LiveStep
		for i, child := range n.Children {
			for _, ls := range Live(child) {
				steps = append(steps, LiveStep{
					Priority: ls.Priority,
					Step:     ls.Step,
					Residual: Simplify(Ordered{Children: replaceChild(n.Children, i, ls.Residual)}),
				})
			}
			if !Cleared(child) {
				break
			}
		}
		return steps
	default:
		return nil
	}
}

// replaceChild copies children with position i swapped for residual.
// The original slice is never mutated; residual trees share the untouched
// sibling nodes.
func replaceChild(children []Node, i int, residual Node) []Node {
	out := make([]Node, len(children))
	copy(out, children)
	out[i] = residual
	return out
}
