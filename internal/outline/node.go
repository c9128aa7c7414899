package outline

import (
	"strings"

	"github.com/google/uuid"
)

// Node is a titled element of an outline with an optional free-text body.
//
// Trees are treated as immutable values: every operation in this package
// returns a new root slice and copies the nodes along the changed path. Nodes
// reachable from a slice you handed in are never modified, so callers may keep
// old roots around (undo history does exactly that).
type Node struct {
	ID       string  `json:"id" yaml:"id"`
	Text     string  `json:"text" yaml:"text"`
	Content  string  `json:"content,omitempty" yaml:"content,omitempty"`
	Level    int     `json:"level" yaml:"level"`
	Children []*Node `json:"children" yaml:"children,omitempty"`

	// Collapsed is a display hint; it has no structural meaning.
	Collapsed bool `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
}

// IDPrefix is prepended to every generated node id.
const IDPrefix = "n-"

// newID is swapped out in tests that need deterministic ids.
var newID = func() string {
	return IDPrefix + uuid.NewString()
}

// NewID returns a fresh node id.
func NewID() string { return newID() }

// CreateNode returns a new childless node with a fresh id.
func CreateNode(text string, level int) *Node {
	if level < 0 {
		level = 0
	}
	return &Node{
		ID:       newID(),
		Text:     text,
		Level:    level,
		Children: []*Node{},
	}
}

// Clone returns a deep copy of n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Children = CloneTree(n.Children)
	return &cp
}

// CloneTree returns a deep copy of nodes. The result never aliases the input.
func CloneTree(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Clone(n))
	}
	return out
}

// Unchanged reports whether after is the very slice before was, which is how
// every operation in this package signals a no-op.
func Unchanged(before, after []*Node) bool {
	if len(before) != len(after) {
		return false
	}
	if len(before) == 0 {
		return true
	}
	return &before[0] == &after[0]
}

// Walk visits nodes depth-first in document order. Returning false from fn
// skips the node's children.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	var walk func(ns []*Node, depth int)
	walk = func(ns []*Node, depth int) {
		for _, n := range ns {
			if n == nil {
				continue
			}
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(nodes, 0)
}

// Count returns the number of nodes in the tree.
func Count(nodes []*Node) int {
	total := 0
	Walk(nodes, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Equal reports whether two trees have the same text, content, levels and
// shape. Ids and the collapsed hint are ignored.
func Equal(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Text != y.Text || x.Content != y.Content || x.Level != y.Level {
			return false
		}
		if !Equal(x.Children, y.Children) {
			return false
		}
	}
	return true
}

// CheckLevels returns the id of the first node whose level does not match its
// depth, or "" when the tree is consistent.
func CheckLevels(nodes []*Node) string {
	bad := ""
	Walk(nodes, func(n *Node, depth int) bool {
		if bad != "" {
			return false
		}
		if n.Level != depth {
			bad = n.ID
			return false
		}
		return true
	})
	return bad
}

// shiftLevels returns a copy of n whose subtree levels moved by delta, clamped at 0.
func shiftLevels(n *Node, delta int) *Node {
	cp := *n
	cp.Level = max(0, n.Level+delta)
	cp.Children = make([]*Node, 0, len(n.Children))
	for _, ch := range n.Children {
		cp.Children = append(cp.Children, shiftLevels(ch, delta))
	}
	return &cp
}

// withLevel returns a copy of n re-rooted at level, keeping relative depths.
func withLevel(n *Node, level int) *Node {
	return shiftLevels(n, level-n.Level)
}

func withChildren(n *Node, children []*Node) *Node {
	cp := *n
	cp.Children = children
	return &cp
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
