package mdast

import (
	"errors"
	"iter"
)

// errStop ends a walk early without reporting an error to the caller.
var errStop = errors.New("stop walk")

// All yields root and every descendant in document order (pre-order). It
// follows sibling and parent links, so it needs no stack and may be abandoned
// at any point.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if root == nil {
			return
		}
		node := root
		for {
			if !yield(node) {
				return
			}
			if node.FirstChild != nil {
				node = node.FirstChild
				continue
			}
			for node != root && node.Next == nil {
				node = node.Parent
			}
			if node == root {
				return
			}
			node = node.Next
		}
	}
}

// Ancestors yields the parents of n, nearest first.
func Ancestors(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil {
			return
		}
		for p := n.Parent; p != nil; p = p.Parent {
			if !yield(p) {
				return
			}
		}
	}
}

// WalkFunc is the callback for Walk. A non-nil error stops the walk.
type WalkFunc func(n *Node) error

// Walk calls fn for root and each descendant in document order and returns
// the first error fn returns.
func Walk(root *Node, fn WalkFunc) error {
	for n := range All(root) {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all nodes under root, root included, matching predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var found []*Node
	for n := range All(root) {
		if predicate(n) {
			found = append(found, n)
		}
	}
	return found
}

// FindFirst returns the first node in document order matching predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node
	_ = Walk(root, func(n *Node) error {
		if predicate(n) {
			found = n
			return errStop
		}
		return nil
	})
	return found
}

// FindByKind returns all nodes of the given kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// FindAncestor returns the nearest ancestor of n with the given kind, or nil.
func FindAncestor(n *Node, kind NodeKind) *Node {
	for p := range Ancestors(n) {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// HasAncestor reports whether any ancestor of n has the given kind.
func HasAncestor(n *Node, kind NodeKind) bool {
	return FindAncestor(n, kind) != nil
}
