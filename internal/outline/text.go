package outline

import "strings"

// DefaultCopyIndent is the indentation used when copying nodes as plain text.
const DefaultCopyIndent = "\t"

// SerializeNodesToText flattens nodes to indented plain text for the clipboard.
// Each title is indented by indentChar repeated (level - baseLevel) times,
// clamped at zero, so a copied subtree starts flush left whatever its depth.
// Body lines sit one indent deeper than their title.
func SerializeNodesToText(nodes []*Node, indentChar string, baseLevel int) string {
	var b strings.Builder
	serializeText(&b, nodes, indentChar, baseLevel)
	return b.String()
}

func serializeText(b *strings.Builder, nodes []*Node, indentChar string, baseLevel int) {
	for _, n := range nodes {
		rel := max(0, n.Level-baseLevel)
		b.WriteString(strings.Repeat(indentChar, rel))
		b.WriteString(n.Text)
		b.WriteByte('\n')
		if n.Content != "" {
			bodyIndent := strings.Repeat(indentChar, rel+1)
			for _, line := range strings.Split(n.Content, "\n") {
				b.WriteString(bodyIndent)
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
		serializeText(b, n.Children, indentChar, baseLevel)
	}
}

// SubtreeText serializes a single node and its descendants starting at zero
// indentation.
func SubtreeText(n *Node, indentChar string) string {
	if n == nil {
		return ""
	}
	return SerializeNodesToText([]*Node{n}, indentChar, n.Level)
}
