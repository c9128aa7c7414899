package outline

import "strings"

// FilterResult holds the ids that a filtered view should show. Matched ids
// contain the query themselves; Visible adds every ancestor of a match so the
// match stays reachable.
type FilterResult struct {
	Visible map[string]bool `json:"visible"`
	Matched map[string]bool `json:"matched"`
}

// IsBlankQuery reports whether q should be treated as "no filter".
func IsBlankQuery(q string) bool { return isBlank(q) }

// FilterNodes matches query case-insensitively against each node's text and,
// failing that, its content. The engine does not special-case empty queries;
// callers should check IsBlankQuery first.
func FilterNodes(nodes []*Node, query string) FilterResult {
	res := FilterResult{Visible: map[string]bool{}, Matched: map[string]bool{}}
	q := strings.ToLower(query)

	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		hit := strings.Contains(strings.ToLower(n.Text), q)
		if !hit && n.Content != "" {
			hit = strings.Contains(strings.ToLower(n.Content), q)
		}
		if hit {
			res.Matched[n.ID] = true
		}
		below := false
		for _, ch := range n.Children {
			if visit(ch) {
				below = true
			}
		}
		if hit || below {
			res.Visible[n.ID] = true
			return true
		}
		return false
	}
	for _, n := range nodes {
		visit(n)
	}
	return res
}
