package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSimplify_DropsEmptyChildren verifies Empty children disappear from
// both group kinds.
func TestSimplify_DropsEmptyChildren(t *testing.T) {
	a := leaf("a", Exactly(1))
	b := leaf("b", Exactly(1))

	got := Simplify(Unordered{Children: []Node{Empty{}, a, Empty{}, b}})
	assert.Equal(t, Unordered{Children: []Node{a, b}}, got)

	got = Simplify(Ordered{Children: []Node{a, Empty{}, b}})
	assert.Equal(t, Ordered{Children: []Node{a, b}}, got)
}

// TestSimplify_CollapsesDegenerateGroups verifies the zero- and one-child
// collapse rules.
func TestSimplify_CollapsesDegenerateGroups(t *testing.T) {
	a := leaf("a", Exactly(1))

	assert.Equal(t, Empty{}, Simplify(Unordered{}))
	assert.Equal(t, Empty{}, Simplify(Ordered{Children: []Node{Empty{}, Empty{}}}))
	assert.Equal(t, a, Simplify(Unordered{Children: []Node{a}}))
	assert.Equal(t, a, Simplify(Ordered{Children: []Node{Empty{}, a}}))
}

// TestSimplify_FlattensSameKindOnly verifies associativity flattening
// within a kind and that kinds never merge.
func TestSimplify_FlattensSameKindOnly(t *testing.T) {
	a := leaf("a", Exactly(1))
	b := leaf("b", Exactly(1))
	c := leaf("c", Exactly(1))

	// Unordered of Unordered flattens.
	got := Simplify(Unordered{Children: []Node{
		a,
		Unordered{Children: []Node{b, c}},
	}})
	assert.Equal(t, Unordered{Children: []Node{a, b, c}}, got)

	// Ordered of Ordered flattens.
	got = Simplify(Ordered{Children: []Node{
		Ordered{Children: []Node{a, b}},
		c,
	}})
	assert.Equal(t, Ordered{Children: []Node{a, b, c}}, got)

	// An Ordered inside an Unordered keeps its wrapper (and vice versa).
	got = Simplify(Unordered{Children: []Node{
		a,
		Ordered{Children: []Node{b, c}},
	}})
	assert.Equal(t, Unordered{Children: []Node{a, Ordered{Children: []Node{b, c}}}}, got)

	got = Simplify(Ordered{Children: []Node{
		Unordered{Children: []Node{a, b}},
		c,
	}})
	assert.Equal(t, Ordered{Children: []Node{Unordered{Children: []Node{a, b}}, c}}, got)
}

// TestSimplify_Idempotent verifies simplify(simplify(t)) == simplify(t)
// on a nested group-of-groups tree.
func TestSimplify_Idempotent(t *testing.T) {
	tree := Unordered{Children: []Node{
		Empty{},
		Unordered{Children: []Node{
			leaf("a", Exactly(1)),
			Ordered{Children: []Node{
				Empty{},
				leaf("b", AnyTimes()),
				Ordered{Children: []Node{leaf("c", AtLeast(1))}},
			}},
		}},
	}}

	once := Simplify(tree)
	twice := Simplify(once)
	assert.Equal(t, once, twice)
}

// TestSimplify_PreservesLiveSteps verifies normalization never changes
// which steps are live.
func TestSimplify_PreservesLiveSteps(t *testing.T) {
	tree := Unordered{Children: []Node{
		Empty{},
		Unordered{Children: []Node{
			leaf("a", Exactly(1)),
			leaf("b", AnyTimes()),
		}},
		Ordered{Children: []Node{Empty{}, leaf("c", Exactly(2))}},
	}}

	assert.Equal(t, descriptions(Live(tree)), descriptions(Live(Simplify(tree))))
}

// TestCombine_WrapsAsUnorderedSiblings verifies registration merges
// fragments under one unordered root and normalizes.
func TestCombine_WrapsAsUnorderedSiblings(t *testing.T) {
	a := leaf("a", Exactly(1))
	b := leaf("b", Exactly(1))
	c := leaf("c", Exactly(1))

	tree := Combine(Empty{}, a)
	assert.Equal(t, Node(a), tree)

	tree = Combine(tree, b)
	tree = Combine(tree, c)
	assert.Equal(t, Node(Unordered{Children: []Node{a, b, c}}), tree)
}
