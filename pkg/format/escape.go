package format

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// entityRef matches a named or numeric character reference.
var entityRef = regexp.MustCompile(`^&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[A-Za-z][A-Za-z0-9]{0,31});`)

// escapeText returns value written so it parses back as the same literal
// text. atLineStart marks value as opening a line of its block; every line
// after a newline inside value opens one too.
func escapeText(value string, atLineStart bool) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		line = escapeInline(line)
		if i > 0 || atLineStart {
			line = escapeLineStart(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// escapeInline escapes the characters that open inline constructs. An
// underscore between two alphanumerics cannot delimit emphasis and stays bare.
func escapeInline(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := rune(-1)
	for i, c := range s {
		switch c {
		case '\t':
			b.WriteByte(' ')
		case '\\', '|', '*', '[', ']', '<', '>', '`', '~':
			b.WriteByte('\\')
			b.WriteRune(c)
		case '_':
			next, _ := utf8.DecodeRuneInString(s[i+1:])
			if !isWordRune(prev) || !isWordRune(next) {
				b.WriteByte('\\')
			}
			b.WriteRune(c)
		case '&':
			if entityRef.MatchString(s[i:]) {
				b.WriteByte('\\')
			}
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
		prev = c
	}
	return b.String()
}

// escapeLineStart escapes a line opening that would start a heading, a list
// item, a thematic break or a setext underline.
func escapeLineStart(line string) string {
	if line == "" {
		return line
	}
	switch line[0] {
	case '#', '-', '+', '=':
		return `\` + line
	}

	digits := 0
	for digits < len(line) && digits < 10 && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(line) && (line[digits] == '.' || line[digits] == ')') {
		return line[:digits] + `\` + line[digits:]
	}
	return line
}

func isWordRune(r rune) bool {
	return r >= 0 && r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
