package dirtree

import (
	"fmt"
	"slices"
	"strings"
)

// Forest is the registry of every node created since construction or the
// last Reset. Names are unique across the whole forest.
type Forest struct {
	nodes   map[NodeID]*Node
	byName  map[string]NodeID
	lastID  NodeID
	version uint64
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{
		nodes:  make(map[NodeID]*Node),
		byName: make(map[string]NodeID),
	}
}

// Create registers a new unattached node. It fails with *DuplicateNameError
// when the name is already registered and leaves the forest untouched.
func (f *Forest) Create(name string, level int) (*Node, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if existingID, exists := f.byName[name]; exists {
		return nil, &DuplicateNameError{
			Name:     name,
			Children: f.nodes[existingID].ChildNames(),
		}
	}

	f.lastID++
	n := &Node{
		id:    f.lastID,
		name:  name,
		level: level,
	}
	f.nodes[n.id] = n
	f.byName[name] = n.id
	f.version++
	return n, nil
}

// CreateChild creates name one level below parent and attaches it.
func (f *Forest) CreateChild(parent NodeID, name string) (*Node, error) {
	p, ok := f.nodes[parent]
	if !ok {
		return nil, fmt.Errorf("create %q: %w", name, ErrUnknownNode)
	}
	child, err := f.Create(name, p.level+LevelStep)
	if err != nil {
		return nil, err
	}
	if err := f.AddChild(parent, child.id); err != nil {
		return nil, err
	}
	return child, nil
}

// AddChild attaches child under parent. Attaching a child to the parent it
// already has, or under a name the parent already holds, is a no-op.
// Uniqueness is not checked here; Create already did.
func (f *Forest) AddChild(parent, child NodeID) error {
	p, ok := f.nodes[parent]
	if !ok {
		return fmt.Errorf("add child: parent: %w", ErrUnknownNode)
	}
	c, ok := f.nodes[child]
	if !ok {
		return fmt.Errorf("add child: child: %w", ErrUnknownNode)
	}
	if c.parent != NoParent && c.parent != parent {
		return fmt.Errorf("attach %q under %q: %w", c.name, p.name, ErrAlreadyAttached)
	}
	if f.isAncestorOrSelf(child, parent) {
		return fmt.Errorf("attach %q under %q: %w", c.name, p.name, ErrCycle)
	}

	if p.insertChild(c.name, c.id) {
		c.parent = parent
		f.version++
	}
	return nil
}

// RemoveChild detaches the direct child called name from parent and drops it
// from the registry. The removed node's own descendants stay registered, so
// their names remain taken.
func (f *Forest) RemoveChild(parent NodeID, name string) error {
	p, ok := f.nodes[parent]
	if !ok {
		return fmt.Errorf("remove %q: %w", name, ErrUnknownNode)
	}
	id, ok := p.removeChild(name)
	if !ok {
		return &NotFoundError{Parent: p.name, Name: name}
	}
	delete(f.nodes, id)
	delete(f.byName, name)
	f.version++
	return nil
}

// Reset forgets every node. IDs and *Node values obtained earlier must not
// be used afterwards; IDs will not resolve again.
func (f *Forest) Reset() {
	f.nodes = make(map[NodeID]*Node)
	f.byName = make(map[string]NodeID)
	f.version++
}

// Node resolves an ID.
func (f *Forest) Node(id NodeID) (*Node, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

// Lookup finds a node by name anywhere in the forest.
func (f *Forest) Lookup(name string) (*Node, bool) {
	id, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return f.nodes[id], true
}

// Contains reports whether name is registered.
func (f *Forest) Contains(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Len returns the number of registered nodes.
func (f *Forest) Len() int { return len(f.nodes) }

// Names returns every registered name in ascending order.
func (f *Forest) Names() []string {
	names := make([]string, 0, len(f.byName))
	for name := range f.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Version changes on every mutation. Callers use it to invalidate derived
// data such as cached listings.
func (f *Forest) Version() uint64 { return f.version }

// Children returns the direct children of id in ascending name order.
func (f *Forest) Children(id NodeID) []*Node {
	n, ok := f.nodes[id]
	if !ok {
		return nil
	}
	children := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		children = append(children, f.nodes[n.children[name]])
	}
	return children
}

// Path returns the names from the root down to id, inclusive.
func (f *Forest) Path(id NodeID) []string {
	var path []string
	for n, ok := f.nodes[id]; ok; n, ok = f.nodes[n.parent] {
		path = append(path, n.name)
	}
	slices.Reverse(path)
	return path
}

// isAncestorOrSelf reports whether candidate is node or one of its ancestors.
func (f *Forest) isAncestorOrSelf(candidate, node NodeID) bool {
	for id := node; id != NoParent; {
		if id == candidate {
			return true
		}
		n, ok := f.nodes[id]
		if !ok {
			return false
		}
		id = n.parent
	}
	return false
}
