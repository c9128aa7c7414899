package outline

import (
	"fmt"
	"strconv"
	"strings"
)

// Ids are not part of the text format, so tools that work on files address
// nodes by 1-based index paths: "2.1" is the first child of the second root.
type Path []int

// ParsePath parses a dotted 1-based path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty node path")
	}
	parts := strings.Split(s, ".")
	out := make(Path, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid node path %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// NodeAt resolves a path.
func NodeAt(nodes []*Node, p Path) (*Node, bool) {
	if len(p) == 0 {
		return nil, false
	}
	sibs := nodes
	var n *Node
	for _, idx := range p {
		if idx < 1 || idx > len(sibs) {
			return nil, false
		}
		n = sibs[idx-1]
		sibs = n.Children
	}
	return n, true
}

// PathOf returns the path of id.
func PathOf(nodes []*Node, id string) (Path, bool) {
	for i, n := range nodes {
		if n.ID == id {
			return Path{i + 1}, true
		}
		if sub, ok := PathOf(n.Children, id); ok {
			return append(Path{i + 1}, sub...), true
		}
	}
	return nil, false
}

// Paths maps every node id to its path.
func Paths(nodes []*Node) map[string]Path {
	out := map[string]Path{}
	var walk func(ns []*Node, prefix Path)
	walk = func(ns []*Node, prefix Path) {
		for i, n := range ns {
			p := make(Path, len(prefix)+1)
			copy(p, prefix)
			p[len(prefix)] = i + 1
			out[n.ID] = p
			walk(n.Children, p)
		}
	}
	walk(nodes, nil)
	return out
}
