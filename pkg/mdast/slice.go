package mdast

import "unicode/utf8"

// ClampOffset limits offset to [0, len(content)] and moves it back to the
// start of the UTF-8 character it falls inside.
func ClampOffset(content []byte, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(content) {
		return len(content)
	}
	for offset > 0 && !utf8.RuneStart(content[offset]) {
		offset--
	}
	return offset
}

// Slice returns content[start:end] as a string. Both bounds are clamped and
// snapped to character boundaries, so the result is never a split rune and
// out-of-range input yields "" instead of panicking.
func Slice(content []byte, start, end int) string {
	start = ClampOffset(content, start)
	end = ClampOffset(content, end)
	if end <= start {
		return ""
	}
	return string(content[start:end])
}

// SliceString is Slice for string input.
func SliceString(content string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	for start > 0 && start < len(content) && !utf8.RuneStart(content[start]) {
		start--
	}
	for end > 0 && end < len(content) && !utf8.RuneStart(content[end]) {
		end--
	}
	if end <= start {
		return ""
	}
	return content[start:end]
}

// NodeSource returns the source text for node n within source. It is the
// same as n.Text but works for nodes detached from a FileSnapshot.
func NodeSource(n *Node, source string) string {
	if n == nil || !n.HasPosition() {
		return ""
	}
	return SliceString(source, n.Position.Start.Offset, n.Position.End.Offset)
}
