package outline

// Location is where a node sits: its parent (nil for roots) and its index
// among the parent's children.
type Location struct {
	Parent *Node
	Index  int
}

// FindNodeByID returns the first node with id in depth-first order.
func FindNodeByID(nodes []*Node, id string) (*Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if found, ok := FindNodeByID(n.Children, id); ok {
			return found, true
		}
	}
	return nil, false
}

// FindParentOf locates id. Roots report a nil Parent.
func FindParentOf(nodes []*Node, id string) (Location, bool) {
	return findParent(nodes, id, nil)
}

func findParent(nodes []*Node, id string, parent *Node) (Location, bool) {
	for i, n := range nodes {
		if n.ID == id {
			return Location{Parent: parent, Index: i}, true
		}
		if loc, ok := findParent(n.Children, id, n); ok {
			return loc, true
		}
	}
	return Location{}, false
}

// IsDescendant reports whether id appears anywhere below root.
func IsDescendant(root *Node, id string) bool {
	if root == nil {
		return false
	}
	_, ok := FindNodeByID(root.Children, id)
	return ok
}

// siblingEdit rewrites the sibling list holding the located node. depth is the
// tree depth of that list. Returning false leaves the tree untouched.
type siblingEdit func(siblings []*Node, index, depth int) ([]*Node, bool)

// editSiblings finds id and replaces its sibling list with edit's result,
// copying every node on the path back to the root.
func editSiblings(nodes []*Node, id string, depth int, edit siblingEdit) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			return edit(nodes, i, depth)
		}
		if kids, ok := editSiblings(n.Children, id, depth+1, edit); ok {
			return replaceAt(nodes, i, withChildren(n, kids)), true
		}
	}
	return nodes, false
}

func replaceAt(nodes []*Node, i int, n *Node) []*Node {
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	out[i] = n
	return out
}

func insertAt(nodes []*Node, i int, n *Node) []*Node {
	out := make([]*Node, 0, len(nodes)+1)
	out = append(out, nodes[:i]...)
	out = append(out, n)
	return append(out, nodes[i:]...)
}

func deleteAt(nodes []*Node, i int) []*Node {
	out := make([]*Node, 0, len(nodes)-1)
	out = append(out, nodes[:i]...)
	return append(out, nodes[i+1:]...)
}

func appendChild(parent, child *Node) *Node {
	kids := make([]*Node, 0, len(parent.Children)+1)
	kids = append(kids, parent.Children...)
	kids = append(kids, child)
	return withChildren(parent, kids)
}

// RemoveNode deletes the node (and its subtree) wherever it lives.
func RemoveNode(nodes []*Node, id string) []*Node {
	out, _ := editSiblings(nodes, id, 0, func(sibs []*Node, i, _ int) ([]*Node, bool) {
		return deleteAt(sibs, i), true
	})
	return out
}

// InsertNodeAfter places n right after the node with afterID, at that node's
// depth. n's subtree levels are adjusted to fit.
func InsertNodeAfter(nodes []*Node, afterID string, n *Node) []*Node {
	if n == nil {
		return nodes
	}
	out, _ := editSiblings(nodes, afterID, 0, func(sibs []*Node, i, depth int) ([]*Node, bool) {
		return insertAt(sibs, i+1, withLevel(n, depth)), true
	})
	return out
}

// InsertNodeBefore places n right before the node with beforeID.
func InsertNodeBefore(nodes []*Node, beforeID string, n *Node) []*Node {
	if n == nil {
		return nodes
	}
	out, _ := editSiblings(nodes, beforeID, 0, func(sibs []*Node, i, depth int) ([]*Node, bool) {
		return insertAt(sibs, i, withLevel(n, depth)), true
	})
	return out
}

// AppendChildNode adds n as the last child of parentID. Levels of the added
// subtree are corrected to sit under the parent, the same as MoveNode does.
func AppendChildNode(nodes []*Node, parentID string, n *Node) []*Node {
	if n == nil {
		return nodes
	}
	out, _ := editSiblings(nodes, parentID, 0, func(sibs []*Node, i, depth int) ([]*Node, bool) {
		return replaceAt(sibs, i, appendChild(sibs[i], withLevel(n, depth+1))), true
	})
	return out
}

// AppendRootNode adds n at the end of the root list.
func AppendRootNode(nodes []*Node, n *Node) []*Node {
	if n == nil {
		return nodes
	}
	return insertAt(nodes, len(nodes), withLevel(n, 0))
}

// UpdateNode applies fn to a copy of the node with id. fn may change Text,
// Content and Collapsed; identity, level and children are kept as they were.
func UpdateNode(nodes []*Node, id string, fn func(n *Node)) []*Node {
	if fn == nil {
		return nodes
	}
	out, _ := editSiblings(nodes, id, 0, func(sibs []*Node, i, _ int) ([]*Node, bool) {
		orig := sibs[i]
		cp := *orig
		fn(&cp)
		cp.ID, cp.Level, cp.Children = orig.ID, orig.Level, orig.Children
		if cp.Text == orig.Text && cp.Content == orig.Content && cp.Collapsed == orig.Collapsed {
			return sibs, false
		}
		return replaceAt(sibs, i, &cp), true
	})
	return out
}

// IndentNode makes the node the last child of its preceding sibling. A node
// without a preceding sibling stays where it is.
func IndentNode(nodes []*Node, id string) []*Node {
	out, _ := editSiblings(nodes, id, 0, func(sibs []*Node, i, depth int) ([]*Node, bool) {
		if i == 0 {
			return sibs, false
		}
		prev := appendChild(sibs[i-1], withLevel(sibs[i], depth+1))
		next := deleteAt(sibs, i)
		next[i-1] = prev
		return next, true
	})
	return out
}

// OutdentNode moves the node out of its parent to become the parent's next
// sibling. Root nodes stay where they are. Siblings that followed the node
// remain children of the old parent.
func OutdentNode(nodes []*Node, id string) []*Node {
	out, _ := outdent(nodes, id, 0)
	return out
}

func outdent(nodes []*Node, id string, depth int) ([]*Node, bool) {
	for i, parent := range nodes {
		for j, child := range parent.Children {
			if child.ID != id {
				continue
			}
			lifted := withLevel(child, depth)
			next := replaceAt(nodes, i, withChildren(parent, deleteAt(parent.Children, j)))
			return insertAt(next, i+1, lifted), true
		}
		if kids, ok := outdent(parent.Children, id, depth+1); ok {
			return replaceAt(nodes, i, withChildren(parent, kids)), true
		}
	}
	return nodes, false
}
