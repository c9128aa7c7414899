package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vertebra/internal/logging"
	"vertebra/internal/store"
	"vertebra/internal/tui"
)

const editorLogFile = "vertebra.log"

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [DOCUMENT]",
		Short: "Open a document in the interactive editor",
		Long: `Open a document in the interactive editor.

Without an argument the most recently edited document is reopened. A missing
document starts out empty and is created on the first save.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return runEditor(cmd, app, ref)
		},
	}
}

// emptyIfMissing starts a document that does not exist yet as empty text.
type emptyIfMissing struct{ store.Store }

func (s emptyIfMissing) LoadText(ctx context.Context) (string, error) {
	text, err := s.Store.LoadText(ctx)
	if errors.Is(err, store.ErrNotExist) {
		return "", nil
	}
	return text, err
}

func runEditor(cmd *cobra.Command, app *App, ref string) error {
	session, err := store.LoadSession()
	if err != nil {
		app.logger().Warn("load session failed", zap.Error(err))
		session = &store.Session{Version: 1}
	}
	if ref == "" {
		ref = session.LastFile
	}
	if ref == "" {
		return writeErr(cmd, errors.New("no document to open: run `vertebra edit <file>`"))
	}

	log, closeLog := editorLogger(app)
	defer closeLog()

	doc, err := openDocument(cmd.Context(), app, ref)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer doc.Close()

	log.Info("editor start", zap.String("document", doc.Name))
	err = tui.Run(cmd.Context(), tui.Options{
		Store:   emptyIfMissing{doc.Store},
		Name:    doc.Name,
		Path:    doc.Path,
		Config:  app.Config,
		Log:     log,
		Session: session,
	})
	if err != nil {
		log.Error("editor failed", zap.Error(err))
		return writeErr(cmd, err)
	}
	return nil
}

// editorLogger sends logs to a file in the config dir while the editor owns
// the terminal. It falls back to a no-op logger.
func editorLogger(app *App) (*zap.Logger, func()) {
	level := app.LogLevel
	if level == "" && app.Config != nil {
		level = app.Config.LogLevel
	}
	dir, err := store.ConfigDir()
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return zap.NewNop(), func() {}
	}
	log, err := logging.NewTo(level, false, filepath.Join(dir, editorLogFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, "editor log:", err)
		return zap.NewNop(), func() {}
	}
	restore := zap.ReplaceGlobals(log)
	return log, func() {
		_ = log.Sync()
		restore()
	}
}
