package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vertebra/internal/outline"
	"vertebra/internal/store"
)

func newDBCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Documents kept in the SQLite store (address them elsewhere as db:<name>)",
	}
	cmd.AddCommand(newDBListCmd(app))
	cmd.AddCommand(newDBImportCmd(app))
	cmd.AddCommand(newDBExportCmd(app))
	cmd.AddCommand(newDBLogCmd(app))
	cmd.AddCommand(newDBDeleteCmd(app))
	return cmd
}

func openDB(cmd *cobra.Command, app *App) (*store.SQLiteStore, error) {
	path, err := app.databasePath()
	if err != nil {
		return nil, err
	}
	return store.OpenSQLite(cmd.Context(), path, app.logger())
}

func newDBListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			docs, err := db.Documents(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": docs})
		},
	}
	return cmd
}

func newDBImportCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a file's contents as a document (name defaults to the file name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.resolvePath(args[0])
			text, err := store.FileStore{Path: path}.LoadText(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			n := strings.TrimSpace(name)
			if n == "" {
				n = documentName(path)
			}
			db, err := openDB(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			if err := db.Document(n).SaveText(cmd.Context(), text); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"name":  n,
				"nodes": outline.Count(outline.Decode(text)),
			}})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Document name")
	return cmd
}

func documentName(path string) string {
	base := filepath.Base(path)
	if store.IsDocument(base) {
		base = base[:len(base)-len(store.DocumentExt)]
	}
	return base
}

func newDBExportCmd(app *App) *cobra.Command {
	var (
		out string
		rev int
	)
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Print a stored document (or a past revision), or write it to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			var text string
			if rev > 0 {
				text, err = db.Revision(cmd.Context(), args[0], rev)
			} else {
				text, err = db.Document(args[0]).LoadText(cmd.Context())
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(out) == "" {
				return writeRaw(cmd, text)
			}
			path := app.resolvePath(out)
			if err := (store.FileStore{Path: path}).SaveText(cmd.Context(), text); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path}})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().IntVar(&rev, "rev", 0, "Revision number (default: current)")
	return cmd
}

func newDBLogCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log <name>",
		Short: "List saved revisions of a document, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			revs, err := db.Revisions(cmd.Context(), args[0], limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": revs})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum revisions to list (0 = all)")
	return cmd
}

func newDBDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a stored document and its revisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			if err := db.Delete(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
	return cmd
}
