package dirtree

import "slices"

// NodeID identifies a node inside its Forest. IDs are never reused, so an ID
// obtained before Forest.Reset can no longer resolve.
type NodeID uint64

// NoParent is the parent ID of a root node.
const NoParent NodeID = 0

const (
	// RootLevel is the display level given to roots built by this package.
	RootLevel = 2
	// LevelStep is the level difference between a node and its children.
	LevelStep = 2
)

// Node is a single directory entry. Fields are only changed through the
// owning Forest.
type Node struct {
	id       NodeID
	name     string
	level    int
	parent   NodeID
	children map[string]NodeID
	order    []string // sorted keys of children
}

// ID returns the node's identifier within its forest.
func (n *Node) ID() NodeID { return n.id }

// Name returns the path or segment the node represents.
func (n *Node) Name() string { return n.name }

// Level returns the display indentation of the node's children.
func (n *Node) Level() int { return n.level }

// Parent returns the parent ID and whether the node has a parent.
func (n *Node) Parent() (NodeID, bool) {
	return n.parent, n.parent != NoParent
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == NoParent }

// HasChildren reports whether at least one child is attached.
func (n *Node) HasChildren() bool { return len(n.order) > 0 }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.order) }

// ChildNames returns the names of the direct children in ascending order.
func (n *Node) ChildNames() []string {
	return slices.Clone(n.order)
}

// Child returns the ID of the direct child with the given name.
func (n *Node) Child(name string) (NodeID, bool) {
	id, ok := n.children[name]
	return id, ok
}

// insertChild adds name→id keeping order sorted. An existing key wins and
// the call reports false.
func (n *Node) insertChild(name string, id NodeID) bool {
	if _, exists := n.children[name]; exists {
		return false
	}
	if n.children == nil {
		n.children = make(map[string]NodeID)
	}
	n.children[name] = id
	pos, _ := slices.BinarySearch(n.order, name)
	n.order = slices.Insert(n.order, pos, name)
	return true
}

// removeChild drops name and returns the ID it pointed to.
func (n *Node) removeChild(name string) (NodeID, bool) {
	id, exists := n.children[name]
	if !exists {
		return NoParent, false
	}
	delete(n.children, name)
	if pos, found := slices.BinarySearch(n.order, name); found {
		n.order = slices.Delete(n.order, pos, pos+1)
	}
	return id, true
}
