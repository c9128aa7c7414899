package outline

import "testing"

func TestDropPosition(t *testing.T) {
	cases := []struct {
		y, h float64
		want Position
	}{
		{0, 30, Before},
		{9.9, 30, Before},
		{10, 30, Inside},
		{20, 30, Inside},
		{20.1, 30, After},
		{30, 30, After},
		{5, 0, Inside},
	}
	for _, tc := range cases {
		if got := DropPosition(tc.y, tc.h); got != tc.want {
			t.Fatalf("DropPosition(%v, %v) = %s, want %s", tc.y, tc.h, got, tc.want)
		}
	}
}

func TestDrag_Lifecycle(t *testing.T) {
	nodes := leveled(nd("A", "a"), nd("B", "b"), nd("C", "c"))
	var d Drag
	if d.Phase() != DragIdle {
		t.Fatalf("expected idle")
	}
	d.Start("C")
	if d.Phase() != DragDragging || d.Source() != "C" {
		t.Fatalf("expected dragging C, got %s %q", d.Phase(), d.Source())
	}
	d.Hover("C", 5, 30)
	if d.Phase() != DragDragging {
		t.Fatalf("hovering the source must not resolve")
	}
	d.Hover("A", 2, 30)
	if id, pos, ok := d.Target(); !ok || id != "A" || pos != Before {
		t.Fatalf("unexpected target %q %q %v", id, pos, ok)
	}
	got := d.Release(nodes)
	if shape(got) != "C0 A0 B0" {
		t.Fatalf("unexpected shape: %s", shape(got))
	}
	if d.Phase() != DragIdle {
		t.Fatalf("expected idle after release")
	}
}

func TestDrag_ReleaseWithoutTargetIsNoop(t *testing.T) {
	nodes := sample()
	var d Drag
	d.Start("B")
	if got := d.Release(nodes); !Unchanged(nodes, got) {
		t.Fatalf("expected no-op")
	}
	d.Hover("A", 1, 10)
	if d.Phase() != DragIdle {
		t.Fatalf("hover while idle must be ignored")
	}
}

func TestDrag_DropIntoOwnDescendantIsRejected(t *testing.T) {
	nodes := sample()
	var d Drag
	d.Start("A")
	d.Hover("A2a", 15, 30)
	if got := d.Release(nodes); !Unchanged(nodes, got) {
		t.Fatalf("expected no-op, got %s", shape(got))
	}
}
