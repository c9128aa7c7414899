package cli

import (
	"github.com/spf13/cobra"

	"vertebra/internal/store"
)

func newLsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List folders and outline documents (directories first)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Dir
			if len(args) == 1 {
				dir = app.resolvePath(args[0])
			}
			ents, err := store.ListDirectory(dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ents})
		},
	}
	return cmd
}

func newNewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty document (.md is added when missing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := store.DocumentPath(app.Dir, args[0])
			if err := store.CreateFile(path); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path}})
		},
	}
	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <file>",
		Short: "Delete a document file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.resolvePath(args[0])
			if err := store.DeleteFile(path); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": path}})
		},
	}
	return cmd
}

func newMvCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Rename a document file (never overwrites)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from := app.resolvePath(args[0])
			to := store.DocumentPath(app.Dir, args[1])
			if err := store.RenameFile(from, to); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"from": from, "to": to}})
		},
	}
	return cmd
}
