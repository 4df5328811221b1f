package dirtree

import (
	"fmt"
	"strings"
)

// NoSubdirectoriesMarker is written in place of children for a leaf.
// It contains no bullet, so ParseTree skips it.
const NoSubdirectoriesMarker = "(no subdirectories)"

// Render serializes the subtree under id in the report format. A root emits
// its own name first; any other node emits only its descendants. A node
// without children renders as the marker line.
func (f *Forest) Render(id NodeID) (string, error) {
	n, ok := f.nodes[id]
	if !ok {
		return "", fmt.Errorf("render: %w", ErrUnknownNode)
	}

	var b strings.Builder
	if n.IsRoot() {
		b.WriteString("- ")
		b.WriteString(n.name)
		b.WriteByte('\n')
	}
	if !n.HasChildren() {
		b.WriteString(strings.Repeat(" ", n.level))
		b.WriteString(NoSubdirectoriesMarker)
		b.WriteByte('\n')
		return b.String(), nil
	}
	f.renderChildren(&b, n)
	return b.String(), nil
}

func (f *Forest) renderChildren(b *strings.Builder, n *Node) {
	indent := strings.Repeat(" ", n.level)
	for _, name := range n.order {
		b.WriteString(indent)
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteByte('\n')
		if child := f.nodes[n.children[name]]; child != nil && child.HasChildren() {
			f.renderChildren(b, child)
		}
	}
}

// Listing returns the names of id's direct children in ascending order, or
// ErrEmptyTree when it has none.
func (f *Forest) Listing(id NodeID) ([]string, error) {
	n, ok := f.nodes[id]
	if !ok {
		return nil, fmt.Errorf("listing: %w", ErrUnknownNode)
	}
	if !n.HasChildren() {
		return nil, fmt.Errorf("%q: %w", n.name, ErrEmptyTree)
	}
	return n.ChildNames(), nil
}
