package outline

// DropPosition maps a pointer's vertical offset inside a row to a drop
// position: the top third drops before the row, the bottom third after it,
// and the middle nests inside it.
func DropPosition(offsetY, rowHeight float64) Position {
	if rowHeight <= 0 {
		return Inside
	}
	switch {
	case offsetY < rowHeight/3:
		return Before
	case offsetY > rowHeight*2/3:
		return After
	default:
		return Inside
	}
}

type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
	DragResolved
)

func (p DragPhase) String() string {
	switch p {
	case DragDragging:
		return "dragging"
	case DragResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Drag tracks one drag gesture: idle -> dragging(source) -> resolved(target,
// position) -> idle. The zero value is idle.
type Drag struct {
	phase    DragPhase
	sourceID string
	targetID string
	position Position
}

func (d *Drag) Phase() DragPhase { return d.phase }
func (d *Drag) Source() string   { return d.sourceID }

// Target returns the resolved drop target, if any.
func (d *Drag) Target() (string, Position, bool) {
	if d.phase != DragResolved {
		return "", "", false
	}
	return d.targetID, d.position, true
}

// Start begins dragging sourceID. An empty id is ignored.
func (d *Drag) Start(sourceID string) {
	if sourceID == "" {
		return
	}
	*d = Drag{phase: DragDragging, sourceID: sourceID}
}

// Hover updates the drop target from pointer geometry. Hovering the source
// itself (or nothing) drops back to plain dragging.
func (d *Drag) Hover(targetID string, offsetY, rowHeight float64) {
	if d.phase == DragIdle {
		return
	}
	if targetID == "" || targetID == d.sourceID {
		d.phase, d.targetID, d.position = DragDragging, "", ""
		return
	}
	d.phase = DragResolved
	d.targetID = targetID
	d.position = DropPosition(offsetY, rowHeight)
}

// Release ends the gesture and applies the move if a target was resolved.
// The returned tree is nodes itself when nothing moved.
func (d *Drag) Release(nodes []*Node) []*Node {
	defer d.Cancel()
	if d.phase != DragResolved {
		return nodes
	}
	return MoveNode(nodes, d.sourceID, d.targetID, d.position)
}

func (d *Drag) Cancel() { *d = Drag{} }
