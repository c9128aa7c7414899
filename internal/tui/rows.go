package tui

import "vertebra/internal/outline"

// row is one visible line of the outline view.
type row struct {
	node        *outline.Node
	depth       int
	hasChildren bool
	collapsed   bool
	matched     bool
}

// flattenRows lists the visible nodes in document order. Children of
// collapsed nodes are hidden unless a filter is active, in which case the
// filter alone decides visibility so that every match can be reached.
func flattenRows(nodes []*outline.Node, collapsed map[string]bool, filter *outline.FilterResult) []row {
	var out []row
	outline.Walk(nodes, func(n *outline.Node, depth int) bool {
		if filter != nil && !filter.Visible[n.ID] {
			return false
		}
		r := row{
			node:        n,
			depth:       depth,
			hasChildren: len(n.Children) > 0,
			collapsed:   collapsed[n.ID] && len(n.Children) > 0,
		}
		if filter != nil {
			r.matched = filter.Matched[n.ID]
		}
		out = append(out, r)
		return filter != nil || !r.collapsed
	})
	return out
}

func rowIndex(rows []row, id string) int {
	for i, r := range rows {
		if r.node.ID == id {
			return i
		}
	}
	return -1
}
