package tui

import (
	"sort"

	"vertebra/internal/outline"
	"vertebra/internal/store"
)

// Node ids are regenerated on every load, so view state is kept as paths.

func (m *editorModel) restoreView(v store.FileView) {
	tree := m.tree()
	for _, s := range v.Collapsed {
		p, err := outline.ParsePath(s)
		if err != nil {
			continue
		}
		if n, ok := outline.NodeAt(tree, p); ok && len(n.Children) > 0 {
			m.collapsed[n.ID] = true
		}
	}
	if p, err := outline.ParsePath(v.Cursor); err == nil {
		if n, ok := outline.NodeAt(tree, p); ok {
			m.cursorID = n.ID
		}
	}
	m.fixCursor(0)
}

func (m editorModel) captureView() store.FileView {
	paths := outline.Paths(m.tree())
	var v store.FileView
	if p, ok := paths[m.cursorID]; ok {
		v.Cursor = p.String()
	}
	for id, folded := range m.collapsed {
		if p, ok := paths[id]; ok && folded {
			v.Collapsed = append(v.Collapsed, p.String())
		}
	}
	sort.Strings(v.Collapsed)
	return v
}
