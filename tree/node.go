package tree

import (
	"github.com/go2starr/cs540-d-tree/feature"
)

/*
Header holds the fields every node of a tree has.
*/
type Header struct {
	// An ID to identify the node
	ID string
	// The ID for the parent of the node in the tree, empty for the root
	ParentID string
	// The value of the parent's split feature that leads to this node,
	// empty for the root
	Value string
	// The number of training examples that reached the node
	Weight int
}

// Head returns the header itself, so that nodes embedding it expose it.
func (h *Header) Head() *Header {
	return h
}

/*
Node is a node of the tree: either a *Leaf or a *Split. No other
implementations exist.
*/
type Node interface {
	Head() *Header
	node()
}

/*
Leaf is a node holding the classification given to every sample that
reaches it.
*/
type Leaf struct {
	Header
	Classification string
}

/*
Split is a node that sends samples to one of its children depending on
their value for Feature. Children maps each legal value of the feature to
the ID of the child node; it has exactly one entry per value.
*/
type Split struct {
	Header
	Feature  *feature.Feature
	Children map[string]string
}

func (*Leaf) node()  {}
func (*Split) node() {}

/*
ChildIDs returns the IDs of the split's children in the declared order of
the values of its feature.
*/
func (s *Split) ChildIDs() []string {
	values := s.Feature.Values()
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := s.Children[v]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
