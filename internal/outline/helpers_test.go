package outline

import (
	"strconv"
	"strings"
	"testing"
)

// nd builds a node with an explicit id; levels are fixed up by leveled.
func nd(id, text string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{ID: id, Text: text, Children: children}
}

func leveled(nodes ...*Node) []*Node {
	var fix func(ns []*Node, depth int)
	fix = func(ns []*Node, depth int) {
		for _, n := range ns {
			n.Level = depth
			fix(n.Children, depth+1)
		}
	}
	fix(nodes, 0)
	return nodes
}

// shape renders ids and levels compactly, e.g. "A0[B1 C1] D0".
func shape(nodes []*Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s := n.ID + strconv.Itoa(n.Level)
		if len(n.Children) > 0 {
			s += "[" + shape(n.Children) + "]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func sequentialIDs(t *testing.T) {
	t.Helper()
	prev := newID
	i := 0
	newID = func() string {
		i++
		return "n" + strconv.Itoa(i)
	}
	t.Cleanup(func() { newID = prev })
}

func sample() []*Node {
	return leveled(
		nd("A", "Alpha",
			nd("A1", "Apple"),
			nd("A2", "Apricot",
				nd("A2a", "Avocado"),
			),
		),
		nd("B", "Beta"),
		nd("C", "Gamma"),
	)
}
