package lint

import (
	"strings"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Line-based helpers.

// IsBlankLine returns true if the 1-based line contains only whitespace.
// Lines outside the file count as blank.
func IsBlankLine(file *mdast.FileSnapshot, lineNum int) bool {
	if file == nil {
		return true
	}
	return strings.TrimSpace(file.LineText(lineNum)) == ""
}

// LinePosition returns the span of a whole 1-based line, newline excluded.
func LinePosition(file *mdast.FileSnapshot, lineNum int) mdast.Position {
	if file == nil || lineNum < 1 || lineNum > file.LineCount() {
		return mdast.Position{}
	}
	line := file.Lines[lineNum-1]
	return file.PositionOf(line.StartOffset, line.NewlineStart)
}

// LeadingWhitespace returns the number of leading spaces and tabs in s.
func LeadingWhitespace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

// StripBlockquotePrefix removes every leading "> " quote marker from a
// line, including the single optional space after each '>'.
func StripBlockquotePrefix(line string) string {
	for {
		trimmed := strings.TrimLeft(line, " ")
		if !strings.HasPrefix(trimmed, ">") {
			return line
		}
		line = strings.TrimPrefix(trimmed[1:], " ")
	}
}

// Indent returns the indentation of a node's first line: the whitespace
// between the line start, or the last blockquote marker, and the node.
func Indent(file *mdast.FileSnapshot, n *mdast.Node) int {
	if file == nil || n == nil || !n.HasPosition() {
		return 0
	}
	start := n.Position.Start
	lineStart := file.LineStart(start.Line)
	prefix := mdast.Slice(file.Content, lineStart, start.Offset)
	return len(StripBlockquotePrefix(prefix))
}

// FenceTracker follows fenced code regions during a line scan. A line
// holding an odd number of fence markers opens or closes a region; the
// region is closed only by the marker kind that opened it.
type FenceTracker struct {
	open string
}

var fenceMarkers = [...]string{"```", "~~~"}

// Next consumes one line and reports whether it is part of fenced code,
// fence lines included.
func (f *FenceTracker) Next(line string) bool {
	for _, marker := range fenceMarkers {
		if strings.Count(line, marker)%2 == 0 {
			continue
		}
		switch f.open {
		case "":
			f.open = marker
			return true
		case marker:
			f.open = ""
			return true
		}
	}
	return f.open != ""
}

// ScanLines calls fn for every 1-based line that is not part of fenced
// code. Scanning stops early when fn returns false.
func ScanLines(file *mdast.FileSnapshot, fn func(lineNum int, line string) bool) {
	if file == nil {
		return
	}
	var fences FenceTracker
	for lineNum := 1; lineNum <= file.LineCount(); lineNum++ {
		line := file.LineText(lineNum)
		if fences.Next(line) {
			continue
		}
		if !fn(lineNum, line) {
			return
		}
	}
}

// Node helpers.

// ListItems returns the direct children of a list node that are list items.
func ListItems(list *mdast.Node) []*mdast.Node {
	if list == nil || list.Kind != mdast.NodeList {
		return nil
	}

	var items []*mdast.Node
	for child := list.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeListItem {
			items = append(items, child)
		}
	}
	return items
}

// FirstLine returns the text of a node's first source line.
func FirstLine(file *mdast.FileSnapshot, n *mdast.Node) string {
	if file == nil || n == nil || !n.HasPosition() {
		return ""
	}
	return file.LineText(n.Position.Start.Line)
}

// RestOfLine returns the text from a node's start to the end of its first line.
func RestOfLine(file *mdast.FileSnapshot, n *mdast.Node) string {
	if file == nil || n == nil || !n.HasPosition() {
		return ""
	}
	line := n.Position.Start.Line
	if line < 1 || line > file.LineCount() {
		return ""
	}
	return mdast.Slice(file.Content, n.Position.Start.Offset, file.Lines[line-1].NewlineStart)
}
