package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vertebra/internal/outline"
)

// treeEdit computes a new tree and names the node the edit was about.
type treeEdit func(nodes []*outline.Node) (next []*outline.Node, focusID string, err error)

type editResult struct {
	Changed bool   `json:"changed" yaml:"changed"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Nodes   int    `json:"nodes" yaml:"nodes"`
}

// runEdit loads ref, applies edit and writes the document back. A no-op edit
// leaves the document untouched; --dry-run prints the new text instead.
func runEdit(cmd *cobra.Command, app *App, ref string, dryRun bool, edit treeEdit) error {
	doc, nodes, err := loadTree(cmd, app, ref)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer doc.Close()

	next, focusID, err := edit(nodes)
	if err != nil {
		return writeErr(cmd, err)
	}
	if outline.Unchanged(nodes, next) {
		return writeOut(cmd, app, map[string]any{"data": editResult{Changed: false, Nodes: outline.Count(nodes)}})
	}
	text := outline.Encode(next)
	if dryRun || doc.Store == nil {
		return writeRaw(cmd, text)
	}
	if err := doc.SaveText(cmd.Context(), text); err != nil {
		return writeErr(cmd, err)
	}
	app.logger().Debug("document updated", zap.String("document", doc.Name), zap.String("command", cmd.Name()))

	res := editResult{Changed: true, Nodes: outline.Count(next)}
	if p, ok := outline.PathOf(next, focusID); ok {
		res.Path = p.String()
	}
	return writeOut(cmd, app, map[string]any{"data": res})
}

func addDryRunFlag(cmd *cobra.Command, dryRun *bool) {
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "Print the resulting document instead of saving it")
}

// newPathEditCmd builds a command of the form "<name> <document> <path>".
func newPathEditCmd(app *App, use, short string, op func(nodes []*outline.Node, id string) []*outline.Node) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   use + " <document> <path>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], dryRun, func(nodes []*outline.Node) ([]*outline.Node, string, error) {
				n, err := nodeAt(nodes, args[1])
				if err != nil {
					return nil, "", err
				}
				return op(nodes, n.ID), n.ID, nil
			})
		},
	}
	addDryRunFlag(cmd, &dryRun)
	return cmd
}

func newIndentCmd(app *App) *cobra.Command {
	return newPathEditCmd(app, "indent", "Make a node the last child of its previous sibling", outline.IndentNode)
}

func newOutdentCmd(app *App) *cobra.Command {
	return newPathEditCmd(app, "outdent", "Move a node out of its parent, right after it", outline.OutdentNode)
}

func newUpCmd(app *App) *cobra.Command {
	return newPathEditCmd(app, "up", "Swap a node with its previous sibling", outline.MoveUp)
}

func newDownCmd(app *App) *cobra.Command {
	return newPathEditCmd(app, "down", "Swap a node with its next sibling", outline.MoveDown)
}

func newRemoveCmd(app *App) *cobra.Command {
	return newPathEditCmd(app, "remove", "Delete a node and everything under it", outline.RemoveNode)
}

func newMoveCmd(app *App) *cobra.Command {
	var (
		position string
		toRoot   bool
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "move <document> <path> [<target-path>]",
		Short: "Move a node before, after or inside another node",
		Example: strings.TrimSpace(`
  vertebra move notes.md 3 1 --position before
  vertebra move notes.md 1.2 2 --position inside
  vertebra move notes.md 2.1 --root`),
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toRoot == (len(args) == 3) {
				return writeErr(cmd, errors.New("give either a target path or --root"))
			}
			pos, err := outline.ParsePosition(position)
			if err != nil {
				return writeErr(cmd, err)
			}
			return runEdit(cmd, app, args[0], dryRun, func(nodes []*outline.Node) ([]*outline.Node, string, error) {
				src, err := nodeAt(nodes, args[1])
				if err != nil {
					return nil, "", err
				}
				targetID := ""
				if !toRoot {
					dst, err := nodeAt(nodes, args[2])
					if err != nil {
						return nil, "", err
					}
					targetID = dst.ID
				}
				return outline.MoveNode(nodes, src.ID, targetID, pos), src.ID, nil
			})
		},
	}
	cmd.Flags().StringVar(&position, "position", string(outline.After), "Where to put the node relative to the target (before|after|inside)")
	cmd.Flags().BoolVar(&toRoot, "root", false, "Append the node to the top level instead of moving it next to a target")
	addDryRunFlag(cmd, &dryRun)
	return cmd
}

func newInsertCmd(app *App) *cobra.Command {
	var (
		content string
		before  bool
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "insert <document> <path> <text>",
		Short: "Insert a new node after (or before) a node, as its sibling",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], dryRun, func(nodes []*outline.Node) ([]*outline.Node, string, error) {
				at, err := nodeAt(nodes, args[1])
				if err != nil {
					return nil, "", err
				}
				n := outline.CreateNode(args[2], at.Level)
				n.Content = content
				if before {
					return outline.InsertNodeBefore(nodes, at.ID, n), n.ID, nil
				}
				return outline.InsertNodeAfter(nodes, at.ID, n), n.ID, nil
			})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Body text of the new node")
	cmd.Flags().BoolVar(&before, "before", false, "Insert before the node instead of after it")
	addDryRunFlag(cmd, &dryRun)
	return cmd
}

func newAppendCmd(app *App) *cobra.Command {
	var (
		content string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "append <document> [<parent-path>] <text>",
		Short: "Append a new node as the last child of a node (or at the top level)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], dryRun, func(nodes []*outline.Node) ([]*outline.Node, string, error) {
				if len(args) == 2 {
					n := outline.CreateNode(args[1], 0)
					n.Content = content
					return outline.AppendRootNode(nodes, n), n.ID, nil
				}
				parent, err := nodeAt(nodes, args[1])
				if err != nil {
					return nil, "", err
				}
				n := outline.CreateNode(args[2], parent.Level+1)
				n.Content = content
				return outline.AppendChildNode(nodes, parent.ID, n), n.ID, nil
			})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Body text of the new node")
	addDryRunFlag(cmd, &dryRun)
	return cmd
}

func newSetCmd(app *App) *cobra.Command {
	var (
		text    string
		content string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "set <document> <path>",
		Short: "Change a node's title and/or body",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setText := cmd.Flags().Changed("text")
			setContent := cmd.Flags().Changed("content")
			if !setText && !setContent {
				return writeErr(cmd, errors.New("nothing to set (use --text and/or --content)"))
			}
			if strings.Contains(text, "\n") {
				return writeErr(cmd, errors.New("--text must be a single line"))
			}
			return runEdit(cmd, app, args[0], dryRun, func(nodes []*outline.Node) ([]*outline.Node, string, error) {
				n, err := nodeAt(nodes, args[1])
				if err != nil {
					return nil, "", err
				}
				return outline.UpdateNode(nodes, n.ID, func(n *outline.Node) {
					if setText {
						n.Text = text
					}
					if setContent {
						n.Content = content
					}
				}), n.ID, nil
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body (may span lines)")
	addDryRunFlag(cmd, &dryRun)
	return cmd
}
