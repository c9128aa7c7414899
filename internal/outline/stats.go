package outline

import (
	"strings"
	"unicode/utf16"
)

type Stats struct {
	Chars int `json:"chars" yaml:"chars"`
	Words int `json:"words" yaml:"words"`
}

func (s Stats) Add(o Stats) Stats {
	return Stats{Chars: s.Chars + o.Chars, Words: s.Words + o.Words}
}

// CountStats counts characters (UTF-16 code units, matching what editors
// report) and whitespace-separated words of a node's title and body.
// Scripts written without spaces count as one word per run.
func CountStats(text, content string) Stats {
	combined := strings.TrimSpace(text + " " + content)
	if combined == "" {
		return Stats{}
	}
	return Stats{
		Chars: len(utf16.Encode([]rune(combined))),
		Words: len(strings.Fields(combined)),
	}
}

// NodeStats counts a single node, ignoring its children.
func NodeStats(n *Node) Stats {
	if n == nil {
		return Stats{}
	}
	return CountStats(n.Text, n.Content)
}

// CalculateTotalStats sums CountStats over every node in the tree.
func CalculateTotalStats(nodes []*Node) Stats {
	var total Stats
	Walk(nodes, func(n *Node, _ int) bool {
		total = total.Add(NodeStats(n))
		return true
	})
	return total
}
