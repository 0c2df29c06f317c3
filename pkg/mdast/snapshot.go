// Package mdast provides the document tree shared by the formatter and the
// lint engine. It defines:
// - FileSnapshot: the raw content, a line index and the tree root
// - Node: a closed set of Markdown node kinds with byte-exact positions
// - helpers for walking, building and boundary-safe slicing
package mdast

// FileSnapshot pairs one version of a file's bytes with its line index and,
// once parsed, its tree. Nothing mutates a snapshot after parsing.
type FileSnapshot struct {
	Path    string
	Content []byte
	Lines   []LineInfo

	// Root is nil until a parser fills it in.
	Root *Node
}

// LineInfo locates one line inside FileSnapshot.Content. For a line without
// a newline NewlineStart and EndOffset are equal.
type LineInfo struct {
	StartOffset  int
	NewlineStart int
	EndOffset    int
}

// NewFileSnapshot indexes the lines of content. The tree is left empty.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{Path: path, Content: content, Lines: BuildLines(content)}
}

// Source returns the content as a string.
func (f *FileSnapshot) Source() string {
	return string(f.Content)
}
