// Package history keeps bounded undo/redo stacks of outline snapshots and
// coalesces bursts of edits into a single undo step.
package history

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"vertebra/internal/outline"
)

const (
	DefaultMaxEntries = 50
	DefaultDebounce   = 500 * time.Millisecond
)

type Options struct {
	// MaxEntries bounds the undo stack; the oldest snapshot is evicted first.
	MaxEntries int
	// Debounce is how long CommitChange waits for the burst to settle.
	Debounce time.Duration

	// OnChange is called with the new current tree after CommitChange, Undo,
	// Redo and Reset. It runs outside the manager's lock.
	OnChange func(tree []*outline.Node)

	Logger *zap.Logger
}

type stopper interface{ Stop() bool }

// Manager owns the live tree of one editing session. A nil tree means no
// document is loaded; an empty non-nil slice is an empty document.
//
// It is safe for concurrent use: the debounce timer fires on its own
// goroutine.
type Manager struct {
	maxEntries int
	debounce   time.Duration
	onChange   func([]*outline.Node)
	log        *zap.Logger

	// afterFunc is time.AfterFunc outside tests.
	afterFunc func(d time.Duration, f func()) stopper

	mu      sync.Mutex
	current []*outline.Node
	undo    [][]*outline.Node
	redo    [][]*outline.Node

	timer   stopper
	gen     uint64
	pending bool
	base    []*outline.Node
}

func New(initial []*outline.Node, opts Options) *Manager {
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		maxEntries: maxEntries,
		debounce:   debounce,
		onChange:   opts.OnChange,
		log:        log,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		current: initial,
	}
}

// Current returns the live tree. Treat it as read-only.
func (m *Manager) Current() []*outline.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// CommitChange makes tree current right away and (re)starts the debounce
// timer. The state from before the first commit of a burst is pushed once
// the burst settles.
func (m *Manager) CommitChange(tree []*outline.Node) {
	if m == nil {
		return
	}
	m.mu.Lock()
	if !m.pending {
		m.pending = true
		m.base = snapshot(m.current)
	}
	m.current = tree
	m.gen++
	gen := m.gen
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = m.afterFunc(m.debounce, func() { m.onTimer(gen) })
	m.mu.Unlock()

	m.notify(tree)
}

func (m *Manager) onTimer(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		// Superseded by a later commit.
		return
	}
	m.flushLocked()
}

// Flush pushes a pending burst now instead of waiting for the timer.
func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushLocked()
}

func (m *Manager) flushLocked() {
	if !m.pending {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	base := m.base
	m.pending, m.base = false, nil
	m.pushLocked(base)
}

// PushHistory snapshots the current tree onto the undo stack and clears the
// redo stack. A pending burst is settled first.
func (m *Manager) PushHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushLocked()
	m.pushLocked(snapshot(m.current))
}

func (m *Manager) pushLocked(tree []*outline.Node) {
	if tree == nil {
		return
	}
	m.undo = append(m.undo, tree)
	if over := len(m.undo) - m.maxEntries; over > 0 {
		m.undo = append([][]*outline.Node(nil), m.undo[over:]...)
	}
	m.redo = nil
	m.log.Debug("history push", zap.Int("undo_depth", len(m.undo)))
}

// Undo restores the most recent snapshot. A pending burst is settled first so
// that it can itself be undone. It reports whether anything changed.
func (m *Manager) Undo() bool {
	m.mu.Lock()
	m.flushLocked()
	if len(m.undo) == 0 || m.current == nil {
		m.mu.Unlock()
		return false
	}
	m.redo = append(m.redo, snapshot(m.current))
	m.current = m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	tree := m.current
	m.log.Debug("undo", zap.Int("undo_depth", len(m.undo)), zap.Int("redo_depth", len(m.redo)))
	m.mu.Unlock()

	m.notify(tree)
	return true
}

// Redo reapplies the most recently undone snapshot.
func (m *Manager) Redo() bool {
	m.mu.Lock()
	m.flushLocked()
	if len(m.redo) == 0 || m.current == nil {
		m.mu.Unlock()
		return false
	}
	m.undo = append(m.undo, snapshot(m.current))
	m.current = m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	tree := m.current
	m.log.Debug("redo", zap.Int("undo_depth", len(m.undo)), zap.Int("redo_depth", len(m.redo)))
	m.mu.Unlock()

	m.notify(tree)
	return true
}

// ClearHistory empties both stacks and drops any pending burst.
func (m *Manager) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
	m.undo, m.redo = nil, nil
}

// Reset replaces the live tree without recording history, e.g. when another
// document is opened. Both stacks are cleared.
func (m *Manager) Reset(tree []*outline.Node) {
	m.mu.Lock()
	m.cancelLocked()
	m.undo, m.redo = nil, nil
	m.current = tree
	m.mu.Unlock()

	m.notify(tree)
}

// Close stops the debounce timer. A pending burst is discarded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
}

func (m *Manager) cancelLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.pending, m.base = false, nil
}

func (m *Manager) CanUndo() bool { return m.UndoDepth() > 0 }
func (m *Manager) CanRedo() bool { return m.RedoDepth() > 0 }

func (m *Manager) UndoDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.undo)
	if m.pending && m.base != nil {
		n = min(n+1, m.maxEntries)
	}
	return n
}

func (m *Manager) RedoDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending {
		return 0
	}
	return len(m.redo)
}

func (m *Manager) notify(tree []*outline.Node) {
	if m.onChange != nil {
		m.onChange(tree)
	}
}

func snapshot(tree []*outline.Node) []*outline.Node {
	if tree == nil {
		return nil
	}
	return outline.CloneTree(tree)
}
