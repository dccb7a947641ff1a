package expect

import (
	"fmt"
	"strings"
)

// Format renders a tree for human-readable reports (unmet expectations,
// ambiguity diagnostics). indent is the number of leading levels; each
// level is two spaces.
//
//	nothing
//	all of (in any order):
//	  cart_test.go:41: Cart.addItem("widget", _) (2 to 4 times)
//	  in sequence:
//	    cart_test.go:44: Cart.checkout() (exactly once)
//	    cart_test.go:45: Cart.receipt() (low priority, any number of times)
func Format(tree Node, indent int) string {
	pad := strings.Repeat("  ", indent)
	switch n := tree.(type) {
	case Empty:
		return pad + "nothing"
	case Single:
		return pad + formatSingle(n)
	case Unordered:
		return formatGroup("all of (in any order):", n.Children, indent)
	case Ordered:
		return formatGroup("in sequence:", n.Children, indent)
	default:
		return pad + "nothing"
	}
}

func formatGroup(header string, children []Node, indent int) string {
	pad := strings.Repeat("  ", indent)
	lines := make([]string, 0, len(children)+1)
	lines = append(lines, pad+header)
	for _, child := range children {
		lines = append(lines, Format(child, indent+1))
	}
	return strings.Join(lines, "\n")
}

func formatSingle(n Single) string {
	line := n.Step.Description
	if n.Step.Location != "" {
		line = fmt.Sprintf("%s: %s", n.Step.Location, line)
	}
	if mods := modifiers(n); mods != "" {
		line += " (" + mods + ")"
	}
	return line
}

// modifiers renders the parenthetical annotations for a leaf. Exactly-once
// normal-priority expectations carry none; that is the unmarked case.
func modifiers(n Single) string {
	var mods []string
	if p := n.Priority.String(); p != "" {
		mods = append(mods, p)
	}
	if n.Card != Exactly(1) {
		mods = append(mods, n.Card.String())
	}
	return strings.Join(mods, ", ")
}
