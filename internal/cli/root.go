package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vertebra/internal/format"
	"vertebra/internal/logging"
	"vertebra/internal/outline"
	"vertebra/internal/store"
)

type App struct {
	Dir        string
	ConfigDir  string
	Format     string
	PrettyJSON bool
	LogLevel   string
	Backend    string

	Config *store.Config
	Log    *zap.Logger

	restoreLog func()
}

// dbPrefix addresses a document in the SQLite store instead of a file.
const dbPrefix = "db:"

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "vertebra",
		Short:        "Outline documents as plain bulleted text",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the editor on the last document (or a given one)
  vertebra
  vertebra edit notes.md

  # Inspect and rewrite documents from scripts
  vertebra parse notes.md --pretty
  vertebra indent notes.md 2.1
  vertebra move notes.md 3 1 --position before
  vertebra fmt --check *.md
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => editor on the last opened document.
			if len(args) == 0 {
				return runEditor(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		app.close()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("VERTEBRA_DIR", ""), "Workspace directory for relative document names (default: config workspace, then cwd)")
	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", "", "Config directory (default: $VERTEBRA_CONFIG_DIR or ~/.vertebra)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("VERTEBRA_FORMAT", format.JSON), "Output format (json|edn|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("VERTEBRA_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Document backend for plain names (file|sqlite; default from config)")

	cmd.AddCommand(newParseCmd(app))
	cmd.AddCommand(newFmtCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newFilterCmd(app))
	cmd.AddCommand(newFindCmd(app))
	cmd.AddCommand(newIndentCmd(app))
	cmd.AddCommand(newOutdentCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newUpCmd(app))
	cmd.AddCommand(newDownCmd(app))
	cmd.AddCommand(newInsertCmd(app))
	cmd.AddCommand(newAppendCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newCopyCmd(app))
	cmd.AddCommand(newLsCmd(app))
	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newMvCmd(app))
	cmd.AddCommand(newDBCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// init resolves config, the workspace dir and the logger. Precedence for
// every setting is flag, then env, then config file.
func (app *App) init() error {
	if strings.TrimSpace(app.ConfigDir) != "" {
		if err := os.Setenv("VERTEBRA_CONFIG_DIR", app.ConfigDir); err != nil {
			return err
		}
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	app.Config = cfg

	if strings.TrimSpace(app.Backend) == "" {
		app.Backend = cfg.Backend
	}
	if app.Backend != store.BackendFile && app.Backend != store.BackendSQLite {
		return fmt.Errorf("unknown backend %q (want file|sqlite)", app.Backend)
	}
	if app.Format, err = format.Normalize(app.Format); err != nil {
		return err
	}

	if strings.TrimSpace(app.Dir) == "" {
		app.Dir = cfg.Workspace
	}
	if strings.TrimSpace(app.Dir) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		app.Dir = cwd
	}

	level := app.LogLevel
	if strings.TrimSpace(level) == "" {
		level = cfg.LogLevel
	}
	log, err := logging.New(level, false)
	if err != nil {
		return err
	}
	app.Log = log
	app.restoreLog = zap.ReplaceGlobals(log)
	return nil
}

func (app *App) close() {
	if app.Log != nil {
		_ = app.Log.Sync()
	}
	if app.restoreLog != nil {
		app.restoreLog()
		app.restoreLog = nil
	}
}

func (app *App) logger() *zap.Logger {
	if app.Log == nil {
		return zap.NewNop()
	}
	return app.Log
}

// databasePath is the SQLite file used for db: documents.
func (app *App) databasePath() (string, error) {
	if app.Config != nil && strings.TrimSpace(app.Config.Database) != "" {
		return app.Config.Database, nil
	}
	dir, err := store.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vertebra.sqlite"), nil
}

func (app *App) resolvePath(name string) string {
	name = strings.TrimSpace(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(app.Dir, name)
}

// document is an opened Store plus a display name.
type document struct {
	store.Store
	Name string
	// Path is the file behind the document, empty for db: documents.
	Path  string
	close func() error
}

func (d *document) Close() error {
	if d.close == nil {
		return nil
	}
	return d.close()
}

// openDocument resolves ref to a file or, with the db: prefix or the sqlite
// backend, to a named document in the SQLite store.
func openDocument(ctx context.Context, app *App, ref string) (*document, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("missing document")
	}
	name, isDB := strings.CutPrefix(ref, dbPrefix)
	if isDB || app.Backend == store.BackendSQLite {
		path, err := app.databasePath()
		if err != nil {
			return nil, err
		}
		db, err := store.OpenSQLite(ctx, path, app.logger())
		if err != nil {
			return nil, err
		}
		return &document{Store: db.Document(name), Name: dbPrefix + name, close: db.Close}, nil
	}
	path := app.resolvePath(ref)
	return &document{Store: store.FileStore{Path: path}, Name: ref, Path: path}, nil
}

// loadTree opens and decodes a document. "-" reads stdin.
func loadTree(cmd *cobra.Command, app *App, ref string) (*document, []*outline.Node, error) {
	if ref == "-" {
		nodes, err := outline.DecodeReader(cmd.InOrStdin())
		return &document{Name: "-"}, nodes, err
	}
	doc, err := openDocument(cmd.Context(), app, ref)
	if err != nil {
		return nil, nil, err
	}
	text, err := doc.LoadText(cmd.Context())
	if err != nil {
		_ = doc.Close()
		return nil, nil, err
	}
	return doc, outline.Decode(text), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeRaw(cmd *cobra.Command, s string) error {
	_, err := io.WriteString(cmd.OutOrStdout(), s)
	return err
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
