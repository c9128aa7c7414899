package outline

import "strings"

// NormalizeSearchTarget prepares a line of text for FindNodeByContent: it is
// trimmed, an escaped leading dash is unescaped, and the result lowercased.
func NormalizeSearchTarget(s string) string {
	return strings.ToLower(UnescapeBodyLine(strings.TrimSpace(s)))
}

// FindNodeByContent returns the first node (depth-first) whose text or
// content contains target. It is used to jump to a line picked from a search
// result, which may still carry the on-disk escape.
func FindNodeByContent(nodes []*Node, target string) (*Node, bool) {
	t := NormalizeSearchTarget(target)
	if t == "" {
		return nil, false
	}
	var found *Node
	Walk(nodes, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if strings.Contains(strings.ToLower(n.Text), t) || strings.Contains(strings.ToLower(n.Content), t) {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}
