package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vertebra/internal/outline"
)

type externalEditorDoneMsg struct {
	nodeID string
	path   string
	before string
	err    error
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openExternalEditor writes the body of the cursor node to a temp file and
// suspends the program while $VISUAL (or $EDITOR) runs on it.
func (m editorModel) openExternalEditor(before string) (tea.Cmd, error) {
	args, err := splitShellWords(externalEditorName())
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "vertebra-body-*.md")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(before); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	nodeID := m.cursorID
	c := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return externalEditorDoneMsg{nodeID: nodeID, path: path, before: before, err: err}
	}), nil
}

// applyExternalEditorResult stores the edited text as the node's body. The
// final newline most editors add is dropped.
func (m editorModel) applyExternalEditorResult(msg externalEditorDoneMsg) editorModel {
	defer func() { _ = os.Remove(msg.path) }()

	if msg.err != nil {
		m.setError(fmt.Errorf("editor failed: %w", msg.err))
		return m
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		m.setError(fmt.Errorf("editor read failed: %w", err))
		return m
	}
	after := strings.TrimSuffix(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
	if after == msg.before {
		m.setMessage("no changes from %s", externalEditorName())
		return m
	}
	m.commit(outline.UpdateNode(m.tree(), msg.nodeID, func(n *outline.Node) { n.Content = after }))
	if m.mode == modeEditBody && msg.nodeID == m.cursorID {
		m.body.SetValue(after)
	}
	m.setMessage("body updated from %s", externalEditorName())
	return m
}
