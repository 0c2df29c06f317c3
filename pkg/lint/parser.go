package lint

import (
	"context"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// Parser builds a FileSnapshot from raw Markdown. parser/goldmark implements
// it.
//
// Parse must be deterministic and safe to call from many goroutines. A
// successful result keeps path and content unchanged and has a NodeRoot
// root; a failed one returns no snapshot.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
