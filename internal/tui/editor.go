package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"vertebra/internal/history"
	"vertebra/internal/outline"
	"vertebra/internal/store"
)

type mode int

const (
	modeNormal mode = iota
	modeEditTitle
	modeEditBody
	modeFilter
	modeDrag
)

type (
	savedMsg struct {
		text string
		err  error
	}
	loadedMsg struct {
		text string
		err  error
		// external is set when the load was triggered by a change on disk.
		external bool
	}
	fileChangedMsg struct{}
)

// editorModel edits one document. Every tree change goes through the
// history manager, which also holds the live tree.
type editorModel struct {
	ctx   context.Context
	store store.Store
	name  string
	log   *zap.Logger

	hist       *history.Manager
	savedText  string
	copyIndent string

	cursorID  string
	collapsed map[string]bool

	mode     mode
	query    string
	filter   *outline.FilterResult
	drag     outline.Drag
	confirmQ bool
	input    textinput.Model
	body     textarea.Model
	keys     keyMap
	help     help.Model
	message  string
	isError  bool
	width    int
	height   int
	quitting bool
}

func newEditorModel(ctx context.Context, st store.Store, name, text string, hist *history.Manager, log *zap.Logger) editorModel {
	if log == nil {
		log = zap.NewNop()
	}
	m := editorModel{
		ctx:        ctx,
		store:      st,
		name:       name,
		log:        log,
		hist:       hist,
		savedText:  text,
		copyIndent: outline.DefaultCopyIndent,
		collapsed:  map[string]bool{},
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      80,
		height:     24,
	}
	hist.Reset(outline.Decode(text))

	m.input = textinput.New()
	m.input.CharLimit = 0
	m.input.Prompt = ""

	m.body = textarea.New()
	m.body.Placeholder = "Write…"
	m.body.CharLimit = 0
	m.body.ShowLineNumbers = false
	m.body.SetWidth(72)
	m.body.SetHeight(8)

	if rows := m.rows(); len(rows) > 0 {
		m.cursorID = rows[0].node.ID
	}
	return m
}

func (m editorModel) Init() tea.Cmd { return nil }

func (m editorModel) tree() []*outline.Node { return m.hist.Current() }

func (m editorModel) rows() []row {
	return flattenRows(m.tree(), m.collapsed, m.filter)
}

func (m editorModel) dirty() bool {
	return outline.Encode(m.tree()) != m.savedText
}

func (m *editorModel) setMessage(format string, args ...any) {
	m.message, m.isError = fmt.Sprintf(format, args...), false
}

func (m *editorModel) setError(err error) {
	m.message, m.isError = err.Error(), true
}

// commit records next as a change. It reports false when nothing changed.
func (m *editorModel) commit(next []*outline.Node) bool {
	if outline.Unchanged(m.tree(), next) {
		return false
	}
	m.hist.CommitChange(next)
	m.refilter()
	return true
}

func (m *editorModel) refilter() {
	if outline.IsBlankQuery(m.query) {
		m.filter = nil
		return
	}
	res := outline.FilterNodes(m.tree(), m.query)
	m.filter = &res
}

// fixCursor keeps the cursor on a visible row, preferring the row at
// fallback when the current node disappeared.
func (m *editorModel) fixCursor(fallback int) {
	rows := m.rows()
	if len(rows) == 0 {
		m.cursorID = ""
		return
	}
	if rowIndex(rows, m.cursorID) >= 0 {
		return
	}
	fallback = min(max(fallback, 0), len(rows)-1)
	m.cursorID = rows[fallback].node.ID
}

func (m editorModel) cursorNode() (*outline.Node, bool) {
	if m.cursorID == "" {
		return nil, false
	}
	return outline.FindNodeByID(m.tree(), m.cursorID)
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.body.SetWidth(max(20, msg.Width-4))
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("save failed: %w", msg.err))
			return m, nil
		}
		m.savedText = msg.text
		m.setMessage("saved %s", m.name)
		return m, nil

	case fileChangedMsg:
		return m, m.loadCmd(true)

	case loadedMsg:
		return m.applyLoaded(msg)

	case externalEditorDoneMsg:
		return m.applyExternalEditorResult(msg), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeEditTitle:
			return m.updateEditTitle(msg)
		case modeEditBody:
			return m.updateEditBody(msg)
		case modeFilter:
			return m.updateFilter(msg)
		case modeDrag:
			return m.updateDrag(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m editorModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQ = false
	}
	rows := m.rows()
	idx := rowIndex(rows, m.cursorID)

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty() && !m.confirmQ {
			m.confirmQ = true
			m.setMessage("unsaved changes; press q again to quit without saving")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if idx > 0 {
			m.cursorID = rows[idx-1].node.ID
		}
	case key.Matches(msg, m.keys.Down):
		if idx >= 0 && idx+1 < len(rows) {
			m.cursorID = rows[idx+1].node.ID
		}

	case key.Matches(msg, m.keys.Toggle):
		if idx >= 0 && rows[idx].hasChildren {
			id := rows[idx].node.ID
			m.collapsed[id] = !m.collapsed[id]
		}

	case key.Matches(msg, m.keys.Insert):
		n := outline.CreateNode("", 0)
		var next []*outline.Node
		if cur, ok := m.cursorNode(); ok {
			next = outline.InsertNodeAfter(m.tree(), cur.ID, n)
		} else {
			next = outline.AppendRootNode(m.tree(), n)
		}
		if m.commit(next) {
			m.cursorID = n.ID
			return m.startEditTitle()
		}

	case key.Matches(msg, m.keys.Indent):
		if m.commit(outline.IndentNode(m.tree(), m.cursorID)) {
			if loc, ok := outline.FindParentOf(m.tree(), m.cursorID); ok && loc.Parent != nil {
				m.collapsed[loc.Parent.ID] = false
			}
		}
	case key.Matches(msg, m.keys.Outdent):
		m.commit(outline.OutdentNode(m.tree(), m.cursorID))
	case key.Matches(msg, m.keys.MoveUp):
		m.commit(outline.MoveUp(m.tree(), m.cursorID))
	case key.Matches(msg, m.keys.MoveDown):
		m.commit(outline.MoveDown(m.tree(), m.cursorID))

	case key.Matches(msg, m.keys.Remove):
		if m.commit(outline.RemoveNode(m.tree(), m.cursorID)) {
			delete(m.collapsed, m.cursorID)
			m.cursorID = ""
			m.fixCursor(idx)
		}

	case key.Matches(msg, m.keys.EditTitle):
		if _, ok := m.cursorNode(); ok {
			return m.startEditTitle()
		}
	case key.Matches(msg, m.keys.External):
		return m.startExternalEdit()
	case key.Matches(msg, m.keys.EditBody):
		if n, ok := m.cursorNode(); ok {
			m.mode = modeEditBody
			m.body.SetValue(n.Content)
			return m, m.body.Focus()
		}

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.input.SetValue(m.query)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Cancel):
		if m.filter != nil {
			m.query = ""
			m.refilter()
			m.fixCursor(0)
		}

	case key.Matches(msg, m.keys.Undo):
		if m.hist.Undo() {
			m.refilter()
			m.fixCursor(idx)
		} else {
			m.setMessage("nothing to undo")
		}
	case key.Matches(msg, m.keys.Redo):
		if m.hist.Redo() {
			m.refilter()
			m.fixCursor(idx)
		} else {
			m.setMessage("nothing to redo")
		}

	case key.Matches(msg, m.keys.Copy):
		if n, ok := m.cursorNode(); ok {
			if err := copyToClipboard(outline.SubtreeText(n, m.copyIndent)); err != nil {
				m.setError(err)
			} else {
				m.setMessage("copied %d node(s)", outline.Count([]*outline.Node{n}))
			}
		}

	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd(false)

	case key.Matches(msg, m.keys.Drag):
		if m.cursorID != "" {
			m.drag.Start(m.cursorID)
			m.mode = modeDrag
			m.setMessage("moving node: go to a target and press b/a/i")
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m editorModel) startEditTitle() (tea.Model, tea.Cmd) {
	n, ok := m.cursorNode()
	if !ok {
		return m, nil
	}
	m.mode = modeEditTitle
	m.input.SetValue(n.Text)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m editorModel) startExternalEdit() (tea.Model, tea.Cmd) {
	n, ok := m.cursorNode()
	if !ok {
		return m, nil
	}
	// Settle the current burst so the external edit is its own undo step.
	m.hist.Flush()
	cmd, err := m.openExternalEditor(n.Content)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	return m, cmd
}

// updateEditTitle applies every keystroke to the tree right away; the
// history manager folds the burst into one undo step.
func (m editorModel) updateEditTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	text := strings.ReplaceAll(m.input.Value(), "\n", " ")
	m.commit(outline.UpdateNode(m.tree(), m.cursorID, func(n *outline.Node) { n.Text = text }))
	return m, cmd
}

func (m editorModel) updateEditBody(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.mode = modeNormal
		m.body.Blur()
		return m, nil
	}
	if key.Matches(msg, m.keys.External) {
		return m.startExternalEdit()
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	content := m.body.Value()
	m.commit(outline.UpdateNode(m.tree(), m.cursorID, func(n *outline.Node) { n.Content = content }))
	return m, cmd
}

func (m editorModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		m.query = ""
		m.refilter()
		m.fixCursor(0)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	m.refilter()
	m.fixCursor(0)
	// Land on the first match rather than on an ancestor.
	if m.filter != nil {
		for _, r := range m.rows() {
			if r.matched {
				m.cursorID = r.node.ID
				break
			}
		}
	}
	return m, cmd
}

// dropOffsets maps the drop keys onto a one-unit row for DropPosition.
var dropOffsets = map[outline.Position]float64{
	outline.Before: 0,
	outline.Inside: 0.5,
	outline.After:  1,
}

func (m editorModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	idx := rowIndex(rows, m.cursorID)
	var pos outline.Position
	switch {
	case key.Matches(msg, m.keys.Up):
		if idx > 0 {
			m.cursorID = rows[idx-1].node.ID
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if idx >= 0 && idx+1 < len(rows) {
			m.cursorID = rows[idx+1].node.ID
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.drag.Cancel()
		m.mode = modeNormal
		m.setMessage("move cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Before):
		pos = outline.Before
	case key.Matches(msg, m.keys.After):
		pos = outline.After
	case key.Matches(msg, m.keys.Inside):
		pos = outline.Inside
	default:
		return m, nil
	}

	source := m.drag.Source()
	m.drag.Hover(m.cursorID, dropOffsets[pos], 1)
	m.mode = modeNormal
	if m.commit(m.drag.Release(m.tree())) {
		m.cursorID = source
		if pos == outline.Inside {
			if loc, ok := outline.FindParentOf(m.tree(), source); ok && loc.Parent != nil {
				m.collapsed[loc.Parent.ID] = false
			}
		}
		m.setMessage("moved")
	} else {
		m.setMessage("cannot move a node there")
	}
	return m, nil
}

func (m editorModel) saveCmd() tea.Cmd {
	m.hist.Flush()
	text := outline.Encode(m.tree())
	st, ctx, log := m.store, m.ctx, m.log
	return func() tea.Msg {
		err := st.SaveText(ctx, text)
		if err != nil {
			log.Error("save failed", zap.Error(err))
		}
		return savedMsg{text: text, err: err}
	}
}

func (m editorModel) loadCmd(external bool) tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		text, err := st.LoadText(ctx)
		return loadedMsg{text: text, err: err, external: external}
	}
}

// applyLoaded replaces the document with text from storage. A change on
// disk that matches what was last saved is our own write and is ignored;
// one that arrives while there are unsaved edits only produces a warning.
func (m editorModel) applyLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(fmt.Errorf("reload failed: %w", msg.err))
		return m, nil
	}
	if msg.external {
		if msg.text == m.savedText {
			return m, nil
		}
		if m.dirty() {
			m.setMessage("file changed on disk; press R to reload and drop your edits")
			return m, nil
		}
	}
	rows := m.rows()
	idx := max(rowIndex(rows, m.cursorID), 0)
	m.hist.Reset(outline.Decode(msg.text))
	m.savedText = msg.text
	m.collapsed = map[string]bool{}
	m.cursorID = ""
	m.refilter()
	m.fixCursor(idx)
	m.log.Info("document reloaded", zap.String("document", m.name), zap.Bool("external", msg.external))
	m.setMessage("reloaded %s", m.name)
	return m, nil
}

func (m editorModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	rows := m.rows()

	footer := m.footer()
	footerH := lipgloss.Height(footer)
	bodyH := max(1, m.height-footerH)
	if m.mode == modeEditBody {
		bodyH = max(1, bodyH-m.body.Height()-1)
	}

	idx := max(rowIndex(rows, m.cursorID), 0)
	offset := 0
	if idx >= bodyH {
		offset = idx - bodyH + 1
	}

	lines := 0
	if len(rows) == 0 {
		b.WriteString(faintIfDark(styleBody).Render("(empty document; press enter to add a node)"))
		b.WriteByte('\n')
		lines++
	}
	for i := offset; i < len(rows) && lines < bodyH; i++ {
		b.WriteString(m.renderRow(rows[i], rows[i].node.ID == m.cursorID))
		b.WriteByte('\n')
		lines++
	}
	for ; lines < bodyH; lines++ {
		b.WriteByte('\n')
	}
	if m.mode == modeEditBody {
		b.WriteString(m.body.View())
		b.WriteByte('\n')
	}
	b.WriteString(footer)
	return b.String()
}

func (m editorModel) renderRow(r row, selected bool) string {
	twisty := glyphBullet()
	if r.hasChildren {
		twisty = glyphTwistyExpanded()
		if r.collapsed {
			twisty = glyphTwistyCollapsed()
		}
	}
	text := r.node.Text
	if selected && m.mode == modeEditTitle {
		text = m.input.View()
	}
	line := strings.Repeat("  ", r.depth) + styleTwisty.Render(twisty) + " "

	st := styleRow
	switch {
	case selected:
		st = styleSelected
	case m.drag.Phase() != outline.DragIdle && r.node.ID == m.drag.Source():
		st = styleDragSrc
	case r.matched:
		st = styleMatch
	}
	line += st.Render(text)
	if r.node.Content != "" {
		line += " " + styleBody.Render(glyphBody())
	}
	if xansi.StringWidth(line) > m.width {
		// Terminate styling so a cut sequence does not bleed into the next row.
		line = xansi.Truncate(line, m.width-1, "…") + "\x1b[0m"
	}
	return line
}

func (m editorModel) footer() string {
	var lines []string
	switch m.mode {
	case modeFilter:
		lines = append(lines, stylePrompt.Render("/")+m.input.View())
	case modeDrag:
		lines = append(lines, m.help.ShortHelpView(m.keys.dragKeys()))
	default:
		lines = append(lines, m.help.View(m.keys))
	}
	if m.message != "" {
		st := styleMessage
		if m.isError {
			st = styleError
		}
		lines = append(lines, st.Render(m.message))
	}
	lines = append(lines, m.statusBar())
	return strings.Join(lines, "\n")
}

// statusBar shows the document name, a dirty marker, the cursor path and
// document statistics, padded to the terminal width.
func (m editorModel) statusBar() string {
	sep := " " + glyphSeparator() + " "
	left := m.name
	if m.dirty() {
		left += " [+]"
	}
	if p, ok := outline.PathOf(m.tree(), m.cursorID); ok {
		left += sep + p.String()
	}
	if m.filter != nil {
		left += sep + fmt.Sprintf("filter %q: %d match(es)", m.query, len(m.filter.Matched))
	}
	st := outline.CalculateTotalStats(m.tree())
	right := fmt.Sprintf("%d words%s%d chars", st.Words, sep, st.Chars)

	w := max(m.width, 1)
	gap := w - runewidth.StringWidth(left) - runewidth.StringWidth(right) - 2
	var text string
	if gap >= 1 {
		text = " " + left + strings.Repeat(" ", gap) + right + " "
	} else {
		text = runewidth.FillRight(runewidth.Truncate(" "+left, w, "…"), w)
	}
	return styleStatus.Render(text)
}
