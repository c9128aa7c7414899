package outline

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
)

// On-disk format:
//
//	- Title
//	  body line
//	  \- body line that starts with a dash
//	  - Child
//	    child body
//
// Two spaces per level, "- " introduces a node, body lines sit one level
// deeper than their node's bullet.
const (
	indentUnit   = "  "
	bulletPrefix = "- "
)

var (
	bulletRe = regexp.MustCompile(`^(\s*)-\s+(.*)$`)

	// A dash followed by any whitespace reads as a bullet, so those lines are
	// escaped. Lines already carrying backslashes before the dash get one
	// more, which keeps escaping reversible.
	escapeRe   = regexp.MustCompile(`^\\*-\s`)
	unescapeRe = regexp.MustCompile(`^\\+-\s`)
)

type frame struct {
	indentLevel int
	node        *Node
}

// Decode parses the bulleted markup into a tree. It never fails: every line
// is either a bullet, body content for the most recent bullet, or (before the
// first bullet) ignored.
//
// A bullet indented deeper than a child of the most recent node could be is
// body content, not structure. Body lines have their node's indentation
// stripped and one backslash removed from an escaped dash (see
// UnescapeBodyLine).
//
// Known limitations:
//   - an unescaped body line that starts with "- " at exactly child depth is
//     read as a child node. Encode always escapes, so only files written by
//     other tools are affected.
//   - whitespace between the dash and the title is the separator, so a title
//     that starts with spaces comes back without them.
//   - lines before the first bullet are dropped (see Preamble).
func Decode(text string) []*Node {
	roots := []*Node{}
	if text == "" {
		return roots
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A final newline terminates the last line rather than starting a new one.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var (
		stack   []frame
		last    *Node
		lastLvl int
		hasBody = map[*Node]bool{}
	)
	appendBody := func(n *Node, line string) {
		if hasBody[n] {
			n.Content += "\n" + line
			return
		}
		n.Content = line
		hasBody[n] = true
	}

	for _, line := range lines {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			indent := len(m[1])
			if last != nil {
				childIndent := (lastLvl + 1) * len(indentUnit)
				if indent > childIndent {
					appendBody(last, line[childIndent:])
					continue
				}
			}

			lvl := indent / len(indentUnit)
			for len(stack) > 0 && stack[len(stack)-1].indentLevel >= lvl {
				stack = stack[:len(stack)-1]
			}
			n := &Node{ID: newID(), Text: m[2], Children: []*Node{}}
			if len(stack) == 0 {
				roots = append(roots, n)
			} else {
				parent := stack[len(stack)-1].node
				n.Level = parent.Level + 1
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, frame{indentLevel: lvl, node: n})
			last, lastLvl = n, lvl
			continue
		}

		if last == nil {
			continue
		}
		prefix := strings.Repeat(indentUnit, lastLvl+1)
		body := line
		if strings.HasPrefix(line, prefix) {
			body = line[len(prefix):]
		} else {
			body = strings.TrimLeftFunc(line, unicode.IsSpace)
		}
		appendBody(last, UnescapeBodyLine(body))
	}
	return roots
}

// DecodeReader reads all of r and decodes it.
func DecodeReader(r io.Reader) ([]*Node, error) {
	if r == nil {
		return nil, fmt.Errorf("decode outline: nil reader")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode outline: %w", err)
	}
	return Decode(string(b)), nil
}

// Encode renders the tree in the on-disk format. Indentation follows tree
// position, so the output is well-formed even if stored levels have drifted.
func Encode(nodes []*Node) string {
	var b strings.Builder
	encodeAt(&b, nodes, 0)
	return b.String()
}

// EncodeTo writes Encode(nodes) to w.
func EncodeTo(w io.Writer, nodes []*Node) error {
	_, err := io.WriteString(w, Encode(nodes))
	return err
}

func encodeAt(b *strings.Builder, nodes []*Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	bodyIndent := indent + indentUnit
	for _, n := range nodes {
		if n == nil {
			continue
		}
		b.WriteString(indent)
		b.WriteString(bulletPrefix)
		b.WriteString(n.Text)
		b.WriteByte('\n')
		if n.Content != "" {
			for _, line := range strings.Split(n.Content, "\n") {
				b.WriteString(bodyIndent)
				b.WriteString(EscapeBodyLine(line))
				b.WriteByte('\n')
			}
		}
		encodeAt(b, n.Children, depth+1)
	}
}

// Preamble returns the non-blank lines that precede the first bullet. Decode
// drops them, so a document with a preamble does not survive a rewrite.
func Preamble(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if bulletRe.MatchString(line) {
			break
		}
		if !isBlank(line) {
			out = append(out, line)
		}
	}
	return out
}

// EscapeBodyLine protects a body line that would otherwise read as a bullet:
// "- x" becomes `\- x`, "-\tx" becomes `\-\tx`.
func EscapeBodyLine(line string) string {
	if escapeRe.MatchString(line) {
		return `\` + line
	}
	return line
}

// UnescapeBodyLine reverses EscapeBodyLine.
func UnescapeBodyLine(line string) string {
	if unescapeRe.MatchString(line) {
		return line[1:]
	}
	return line
}
