package dirtree

import "fmt"

// Statistics summarises a subtree.
type Statistics struct {
	Nodes    int // including the subtree root
	Leaves   int
	MaxDepth int // 0 for a lone node
}

// Stats walks the subtree under id.
func (f *Forest) Stats(id NodeID) Statistics {
	n, ok := f.nodes[id]
	if !ok {
		return Statistics{}
	}
	var s Statistics
	f.collectStats(n, 0, &s)
	return s
}

func (f *Forest) collectStats(n *Node, depth int, s *Statistics) {
	s.Nodes++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	if !n.HasChildren() {
		s.Leaves++
		return
	}
	for _, name := range n.order {
		if child, ok := f.nodes[n.children[name]]; ok {
			f.collectStats(child, depth+1, s)
		}
	}
}

func (s Statistics) String() string {
	return fmt.Sprintf("%d directories, %d without subdirectories, depth %d",
		s.Nodes, s.Leaves, s.MaxDepth)
}
