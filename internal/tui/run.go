package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vertebra/internal/history"
	"vertebra/internal/store"
)

// watchDebounce groups the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

type Options struct {
	Store store.Store
	// Name is shown in the status bar.
	Name string
	// Path is the file backing Store. When set, the file is watched for
	// outside changes and the view state is remembered in Session.
	Path string

	Config  *store.Config
	Log     *zap.Logger
	Session *store.Session
}

// Run opens the interactive editor and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return errors.New("tui: no document store")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = store.DefaultConfig()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	applyGlyphPreference(cfg.TUI.Glyphs)
	applyColorPreference(cfg.TUI.NoColor)

	text, err := opts.Store.LoadText(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Name, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hist := history.New(nil, history.Options{
		MaxEntries: cfg.History.MaxEntries,
		Debounce:   cfg.History.Debounce(),
		Logger:     log.Named("history"),
	})
	defer hist.Close()

	m := newEditorModel(ctx, opts.Store, opts.Name, text, hist, log)
	if cfg.CopyIndent != "" {
		m.copyIndent = cfg.CopyIndent
	}
	if opts.Session != nil && opts.Path != "" {
		if v, ok := opts.Session.View(opts.Path); ok {
			m.restoreView(v)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.Path != "" {
		go func() {
			err := store.Watch(ctx, opts.Path, watchDebounce, log.Named("watch"), func() {
				p.Send(fileChangedMsg{})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("file watch stopped", zap.String("path", opts.Path), zap.Error(err))
			}
		}()
	}

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if fm, ok := final.(editorModel); ok && opts.Session != nil && opts.Path != "" {
		opts.Session.Remember(opts.Path, fm.captureView())
		if err := store.SaveSession(opts.Session); err != nil {
			log.Warn("save session failed", zap.Error(err))
		}
	}
	return nil
}
