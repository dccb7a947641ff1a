package expect

// Node is a sealed interface over the four expectation-tree shapes.
// Only Empty, Single, Unordered, and Ordered implement it.
type Node interface {
	node() // Sealed - only these types implement it
}

// Empty is the terminal tree: no outstanding expectation, satisfies nothing.
type Empty struct{}

func (Empty) node() {}

// Single is one outstanding, repeatable expectation.
type Single struct {
	Priority Priority
	Card     Cardinality
	Step     *Step
}

func (Single) node() {}

// Unordered holds children whose expectations are all live simultaneously;
// the order of satisfaction is unconstrained.
type Unordered struct {
	Children []Node
}

func (Unordered) node() {}

// Ordered holds children that must be satisfied left to right. A child only
// becomes live once every child before it has no mandatory residue left.
type Ordered struct {
	Children []Node
}

func (Ordered) node() {}

// NewSingle builds a leaf expectation node.
func NewSingle(p Priority, c Cardinality, s *Step) Single {
	return Single{Priority: p, Card: c, Step: s}
}

// Group builds an unordered group of the given fragments.
func Group(children ...Node) Node {
	return Simplify(Unordered{Children: children})
}

// Sequence builds an ordered group of the given fragments.
func Sequence(children ...Node) Node {
	return Simplify(Ordered{Children: children})
}

// Combine merges a newly registered fragment into the running tree. The
// two are siblings in an unordered group; registration never fails, and
// the fragment's priority and cardinality are fixed from here on.
func Combine(tree, fragment Node) Node {
	return Simplify(Unordered{Children: []Node{tree, fragment}})
}

// IsEmpty reports whether the tree has no outstanding expectations at all.
// Callers are expected to pass simplified trees; a group that would
// simplify to Empty is treated as empty too.
func IsEmpty(tree Node) bool {
	switch n := tree.(type) {
	case Empty:
		return true
	case Single:
		return false
	case Unordered:
		return allEmpty(n.Children)
	case Ordered:
		return allEmpty(n.Children)
	default:
		return false
	}
}

func allEmpty(children []Node) bool {
	for _, c := range children {
		if !IsEmpty(c) {
			return false
		}
	}
	return true
}
