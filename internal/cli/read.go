package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"vertebra/internal/outline"
)

// nodeRef is how commands report a node.
type nodeRef struct {
	Path    string `json:"path" yaml:"path"`
	Text    string `json:"text" yaml:"text"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

func refOf(nodes []*outline.Node, n *outline.Node) nodeRef {
	p, _ := outline.PathOf(nodes, n.ID)
	return nodeRef{Path: p.String(), Text: n.Text, Content: n.Content}
}

func nodeAt(nodes []*outline.Node, arg string) (*outline.Node, error) {
	p, err := outline.ParsePath(arg)
	if err != nil {
		return nil, err
	}
	n, ok := outline.NodeAt(nodes, p)
	if !ok {
		return nil, errNotFound("node", p.String())
	}
	return n, nil
}

func newParseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <document>",
		Short: "Decode a document and print its tree (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, nodes, err := loadTree(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer doc.Close()
			return writeOut(cmd, app, map[string]any{"data": nodes})
		},
	}
	return cmd
}

type rootStats struct {
	Path  string        `json:"path" yaml:"path"`
	Text  string        `json:"text" yaml:"text"`
	Nodes int           `json:"nodes" yaml:"nodes"`
	Stats outline.Stats `json:"stats" yaml:"stats"`
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <document>",
		Short: "Count characters and words, in total and per top-level node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, nodes, err := loadTree(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer doc.Close()

			roots := make([]rootStats, 0, len(nodes))
			for i, n := range nodes {
				sub := []*outline.Node{n}
				roots = append(roots, rootStats{
					Path:  outline.Path{i + 1}.String(),
					Text:  n.Text,
					Nodes: outline.Count(sub),
					Stats: outline.CalculateTotalStats(sub),
				})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"total": outline.CalculateTotalStats(nodes),
				"nodes": outline.Count(nodes),
				"roots": roots,
			}})
		},
	}
	return cmd
}

func newFilterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter <document> <query>",
		Short: "List nodes matching a query, plus the ancestors that keep them reachable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, nodes, err := loadTree(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer doc.Close()

			query := args[1]
			matched := []nodeRef{}
			visible := []string{}
			if outline.IsBlankQuery(query) {
				// A blank query shows everything.
				visible = pathsInOrder(nodes, func(*outline.Node) bool { return true })
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"matched": matched, "visible": visible}})
			}
			res := outline.FilterNodes(nodes, query)
			outline.Walk(nodes, func(n *outline.Node, _ int) bool {
				if !res.Visible[n.ID] {
					return false
				}
				if res.Matched[n.ID] {
					matched = append(matched, refOf(nodes, n))
				}
				return true
			})
			visible = pathsInOrder(nodes, func(n *outline.Node) bool { return res.Visible[n.ID] })
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"matched": matched, "visible": visible}})
		},
	}
	return cmd
}

// pathsInOrder lists the paths of nodes accepted by keep, in document order.
// Children of rejected nodes are not visited.
func pathsInOrder(nodes []*outline.Node, keep func(*outline.Node) bool) []string {
	all := outline.Paths(nodes)
	out := []string{}
	outline.Walk(nodes, func(n *outline.Node, _ int) bool {
		if !keep(n) {
			return false
		}
		out = append(out, all[n.ID].String())
		return true
	})
	return out
}

func newFindCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <document> <text>",
		Short: "Find the first node whose title or body contains text",
		Long: strings.TrimSpace(`
Find the first node, in document order, whose title or body contains text.
Matching ignores case and surrounding whitespace, and a line copied from the
file with its leading "\- " escape still matches.`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, nodes, err := loadTree(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer doc.Close()
			n, ok := outline.FindNodeByContent(nodes, args[1])
			if !ok {
				return writeErr(cmd, errNotFound("text", args[1]))
			}
			return writeOut(cmd, app, map[string]any{"data": refOf(nodes, n)})
		},
	}
	return cmd
}
