package goldmark

import "bytes"

// Source scanning helpers. goldmark only records content segments, so the
// extents of markers, fences and brackets are recovered from the raw bytes.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isLineSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// skipGap advances from offset over whitespace and line endings. Inside a
// blockquote it also skips the '>' prefixes of continuation lines.
func skipGap(src []byte, offset int, inQuote bool) int {
	for offset < len(src) {
		c := src[offset]
		if isLineSpace(c) || (inQuote && c == '>') {
			offset++
			continue
		}
		break
	}
	return offset
}

// lineStartOf returns the offset of the first byte of the line containing offset.
func lineStartOf(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

// lineEndOf returns the offset of the line ending of the line containing
// offset, excluding "\r\n" and "\n".
func lineEndOf(src []byte, offset int) int {
	if offset < 0 {
		offset = 0
	}
	for offset < len(src) && src[offset] != '\n' {
		offset++
	}
	if offset > 0 && offset <= len(src) && src[offset-1] == '\r' {
		offset--
	}
	return offset
}

// nextLineStart returns the start offset of the line after the one containing offset.
func nextLineStart(src []byte, offset int) int {
	idx := bytes.IndexByte(src[min(offset, len(src)):], '\n')
	if idx < 0 {
		return len(src)
	}
	return offset + idx + 1
}

// trimRightSpace moves end back over trailing whitespace and line endings.
func trimRightSpace(src []byte, start, end int) int {
	for end > start && end <= len(src) && isLineSpace(src[end-1]) {
		end--
	}
	return end
}

// backOverIndent moves offset back over spaces and tabs on the same line.
func backOverIndent(src []byte, offset int) int {
	for offset > 0 && offset <= len(src) && isSpace(src[offset-1]) {
		offset--
	}
	return offset
}

// trimmedLineEnd returns the end of the line containing offset without
// trailing whitespace.
func trimmedLineEnd(src []byte, offset int) int {
	end := lineEndOf(src, offset)
	return trimRightSpace(src, lineStartOf(src, offset), end)
}

// stripLinePrefix returns the offset of the first byte on the line starting
// at lineStart that is neither whitespace nor a blockquote marker.
func stripLinePrefix(src []byte, lineStart int) int {
	pos := lineStart
	for pos < len(src) && (isSpace(src[pos]) || src[pos] == '>') {
		pos++
	}
	return pos
}

// runLength counts consecutive c bytes starting at offset.
func runLength(src []byte, offset int, c byte) int {
	n := 0
	for offset+n < len(src) && src[offset+n] == c {
		n++
	}
	return n
}

// indexFrom returns the offset of the first c at or after offset, or -1.
func indexFrom(src []byte, offset int, c byte) int {
	if offset >= len(src) {
		return -1
	}
	idx := bytes.IndexByte(src[offset:], c)
	if idx < 0 {
		return -1
	}
	return offset + idx
}

// matchBracket returns the offset just after the ']' closing the '[' at open,
// honouring nesting and backslash escapes. It returns -1 when unbalanced.
func matchBracket(src []byte, open int) int {
	depth := 0
	for pos := open; pos < len(src); pos++ {
		switch src[pos] {
		case '\\':
			pos++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return pos + 1
			}
		}
	}
	return -1
}

// matchParen returns the offset just after the ')' closing the '(' at open.
// Angle-bracket destinations and quoted titles may contain parentheses.
func matchParen(src []byte, open int) int {
	depth := 0
	var quote byte
	inAngle := false
	for pos := open; pos < len(src); pos++ {
		c := src[pos]
		switch {
		case c == '\\':
			pos++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case inAngle:
			if c == '>' {
				inAngle = false
			}
		case c == '<' && pos > open && src[pos-1] == '(':
			inAngle = true
		case (c == '"' || c == '\'') && pos > open && isLineSpace(src[pos-1]):
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return pos + 1
			}
		}
	}
	return -1
}
