package cli

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"vertebra/internal/outline"
)

func newCopyCmd(app *App) *cobra.Command {
	var (
		indent   string
		toStdout bool
	)
	cmd := &cobra.Command{
		Use:   "copy <document> [<path>]",
		Short: "Copy a node and its subtree (or the whole document) as indented plain text",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, nodes, err := loadTree(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer doc.Close()

			if !cmd.Flags().Changed("indent") && app.Config != nil && app.Config.CopyIndent != "" {
				indent = app.Config.CopyIndent
			}
			var text string
			if len(args) == 2 {
				n, err := nodeAt(nodes, args[1])
				if err != nil {
					return writeErr(cmd, err)
				}
				text = outline.SubtreeText(n, indent)
			} else {
				text = outline.SerializeNodesToText(nodes, indent, 0)
			}

			if toStdout {
				return writeRaw(cmd, text)
			}
			if clipboard.Unsupported {
				return writeErr(cmd, errors.New("no clipboard available (use --stdout)"))
			}
			if err := clipboard.WriteAll(text); err != nil {
				return writeErr(cmd, err)
			}
			st := outline.CountStats(text, "")
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"copied": true, "chars": st.Chars}})
		},
	}
	cmd.Flags().StringVar(&indent, "indent", outline.DefaultCopyIndent, "Indent per level (default from config, else a tab)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print instead of writing to the clipboard")
	return cmd
}
