package lint

import (
	"context"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint/refs"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// Design note: RuleContext stores context.Context as a field (Ctx) rather than
// passing it as a method parameter. RuleContext is a short-lived parameter
// object created per rule invocation, so this keeps the Rule interface to a
// single Check method while still supporting cancellation via Cancelled().
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *mdast.FileSnapshot

	// Root is the tree root node (convenience alias for File.Root).
	Root *mdast.Node

	// Config is the resolved configuration. Never nil.
	Config *config.Config

	// nodes is shared by all rules running on File.
	nodes *NodeCache

	// refCtx is the cached reference context, lazily initialized.
	refCtx *refs.Context
}

// NewRuleContext creates a RuleContext for the given file and configuration.
// A nil cache is built on the spot.
func NewRuleContext(
	ctx context.Context,
	file *mdast.FileSnapshot,
	cfg *config.Config,
	nodes *NodeCache,
) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if nodes == nil {
		nodes = NewNodeCache(root)
	}

	return &RuleContext{
		Ctx:    ctx,
		File:   file,
		Root:   root,
		Config: cfg,
		nodes:  nodes,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	if rc.Ctx == nil {
		return false
	}
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Source returns the file content as a string.
func (rc *RuleContext) Source() string {
	if rc.File == nil {
		return ""
	}
	return rc.File.Source()
}

// NodeSource returns the source text covered by n.
func (rc *RuleContext) NodeSource(n *mdast.Node) string {
	if rc.File == nil {
		return ""
	}
	return mdast.Slice(rc.File.Content, n.Position.Start.Offset, n.Position.End.Offset)
}

// Headings returns all heading nodes in document order.
func (rc *RuleContext) Headings() []*mdast.Node { return rc.nodes.Headings() }

// Lists returns all list nodes in document order.
func (rc *RuleContext) Lists() []*mdast.Node { return rc.nodes.Lists() }

// ListItems returns all list item nodes in document order.
func (rc *RuleContext) ListItems() []*mdast.Node { return rc.nodes.ListItems() }

// CodeBlocks returns all code block nodes in document order.
func (rc *RuleContext) CodeBlocks() []*mdast.Node { return rc.nodes.Code() }

// Blockquotes returns all blockquote nodes in document order.
func (rc *RuleContext) Blockquotes() []*mdast.Node { return rc.nodes.Blockquotes() }

// Links returns all link nodes in document order.
func (rc *RuleContext) Links() []*mdast.Node { return rc.nodes.Links() }

// HTML returns all raw HTML nodes in document order.
func (rc *RuleContext) HTML() []*mdast.Node { return rc.nodes.HTML() }

// RefContext returns the anchor and fragment-link index for this file,
// building it lazily.
func (rc *RuleContext) RefContext() *refs.Context {
	if rc.refCtx == nil {
		rc.refCtx = refs.Collect(rc.Root)
	}
	return rc.refCtx
}
