package mdast

import (
	"bytes"
	"sort"
)

// BuildLines indexes the lines of content. LF and CRLF endings are both
// recognized; the final line need not end with a newline. Empty content has
// no lines.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	start := 0
	for {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			break
		}
		nl := start + idx
		newlineStart := nl
		if nl > start && content[nl-1] == '\r' {
			newlineStart--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: newlineStart, EndOffset: nl + 1})
		start = nl + 1
	}

	return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to a 1-based line and a 1-based byte column.
// Offsets at or past the end of content land on the last line. A negative
// offset, or a file with no lines, yields (0, 0).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx := len(f.Lines) - 1
	if offset < len(f.Content) {
		idx = sort.Search(len(f.Lines), func(i int) bool {
			return f.Lines[i].EndOffset > offset
		})
	}
	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// Offset converts a 1-based line and column to a byte offset. A column may
// point one past the line's newline, which is the start of the next line.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}
	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns a 1-based line without its newline, or nil when the
// line does not exist.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}

// LineText is LineContent as a string.
func (f *FileSnapshot) LineText(line int) string {
	return string(f.LineContent(line))
}

// LineStart returns the byte offset where a 1-based line begins, or 0.
func (f *FileSnapshot) LineStart(line int) int {
	if line < 1 || line > len(f.Lines) {
		return 0
	}
	return f.Lines[line-1].StartOffset
}

// PointAt converts a byte offset to a Point. The offset is clamped to the
// content and moved back to the nearest UTF-8 character boundary.
func (f *FileSnapshot) PointAt(offset int) Point {
	offset = ClampOffset(f.Content, offset)
	if len(f.Lines) == 0 {
		return Point{Line: 1, Column: 1, Offset: 0}
	}
	line, col := f.LineAt(offset)
	return Point{Line: line, Column: col, Offset: offset}
}

// PositionOf converts a byte range to a Position. Rules that locate
// violations by scanning raw text use it to report lines and columns.
func (f *FileSnapshot) PositionOf(start, end int) Position {
	if end < start {
		start, end = end, start
	}
	return Position{Start: f.PointAt(start), End: f.PointAt(end)}
}
