package outline

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Position says where a moved node lands relative to its target.
type Position string

const (
	Before Position = "before"
	After  Position = "after"
	Inside Position = "inside"
)

func (p Position) Valid() bool {
	switch p {
	case Before, After, Inside:
		return true
	default:
		return false
	}
}

// ParsePosition accepts before|after|inside (case-insensitive).
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid position %q (want before|after|inside)", s)
	}
	return p, nil
}

// MoveNode relocates sourceID before or after targetID, or makes it the last
// child of targetID. An empty targetID appends the source to the root list;
// moving the last root there is a no-op.
// Levels of the moved subtree are rewritten to match its new place.
//
// The input is returned unchanged when the source is missing, when source and
// target are the same node, when the target lies inside the source's subtree,
// or when the target cannot be found.
func MoveNode(nodes []*Node, sourceID, targetID string, pos Position) []*Node {
	src, ok := FindNodeByID(nodes, sourceID)
	if !ok {
		zap.L().Debug("move rejected: source not found", zap.String("source", sourceID))
		return nodes
	}
	if targetID == "" {
		if loc, _ := FindParentOf(nodes, sourceID); loc.Parent == nil && loc.Index == len(nodes)-1 && src.Level == 0 {
			return nodes
		}
		return AppendRootNode(RemoveNode(nodes, sourceID), src)
	}
	if !pos.Valid() {
		zap.L().Debug("move rejected: invalid position", zap.String("position", string(pos)))
		return nodes
	}
	if sourceID == targetID || IsDescendant(src, targetID) {
		zap.L().Debug("move rejected: target is the source or inside it",
			zap.String("source", sourceID), zap.String("target", targetID))
		return nodes
	}

	rest := RemoveNode(nodes, sourceID)
	out, ok := editSiblings(rest, targetID, 0, func(sibs []*Node, i, depth int) ([]*Node, bool) {
		switch pos {
		case Before:
			return insertAt(sibs, i, withLevel(src, depth)), true
		case After:
			return insertAt(sibs, i+1, withLevel(src, depth)), true
		default:
			return replaceAt(sibs, i, appendChild(sibs[i], withLevel(src, depth+1))), true
		}
	})
	if !ok {
		zap.L().Debug("move rejected: target not found", zap.String("target", targetID))
		return nodes
	}
	return out
}

// MoveUp swaps the node with its previous sibling.
func MoveUp(nodes []*Node, id string) []*Node {
	loc, ok := FindParentOf(nodes, id)
	if !ok || loc.Index == 0 {
		return nodes
	}
	sibs := nodes
	if loc.Parent != nil {
		sibs = loc.Parent.Children
	}
	return MoveNode(nodes, id, sibs[loc.Index-1].ID, Before)
}

// MoveDown swaps the node with its next sibling.
func MoveDown(nodes []*Node, id string) []*Node {
	loc, ok := FindParentOf(nodes, id)
	if !ok {
		return nodes
	}
	sibs := nodes
	if loc.Parent != nil {
		sibs = loc.Parent.Children
	}
	if loc.Index+1 >= len(sibs) {
		return nodes
	}
	return MoveNode(nodes, id, sibs[loc.Index+1].ID, After)
}
