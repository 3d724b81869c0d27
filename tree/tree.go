package tree

import (
	"context"
	"fmt"

	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/google/uuid"
)

// Tree represents a binary decision tree. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree, the features it was grown with (in
// declared order) and the classes it chooses from.
type Tree struct {
	NodeStore
	ID       string
	RootID   string
	Features []*feature.Feature
	Classes  feature.Classes
}

// New takes a NodeStore, the ID for the root Node, the features and the
// classes of a tree and returns a tree composed of the nodes in the
// NodeStore connected to the node with the given root ID. The tree gets a
// new random ID.
func New(nodeStore NodeStore, rootID string, features []*feature.Feature, classes feature.Classes) *Tree {
	return &Tree{nodeStore, uuid.New().String(), rootID, features, classes}
}

// Classify takes a sample and returns the classification the tree gives
// to it, or an error if it cannot be obtained. Walking into a split with
// no child for the sample's value, or into a node that is not in the
// store, returns a *ModelError.
func (t *Tree) Classify(ctx context.Context, s feature.Sample) (string, error) {
	if t == nil {
		return "", fmt.Errorf("nil tree cannot classify samples")
	}
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return "", fmt.Errorf("classifying sample: %w", err)
	}
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Classification, nil
		case *Split:
			v, err := s.ValueFor(node.Feature)
			if err != nil {
				return "", fmt.Errorf("classifying sample: %w", err)
			}
			childID, ok := node.Children[v]
			if !ok {
				return "", &ModelError{NodeID: node.ID, Feature: node.Feature.Name(), Value: v}
			}
			n, err = t.node(ctx, childID)
			if err != nil {
				return "", fmt.Errorf("classifying sample: %w", err)
			}
		default:
			return "", fmt.Errorf("classifying sample: unexpected node type %T", n)
		}
	}
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Children
// are visited in the declared order of their parent's feature
// values.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, Node) error) error {
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n Node, bottomup bool, f func(context.Context, Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
	}
	if err != nil {
		return err
	}
	if s, ok := n.(*Split); ok {
		for _, snID := range s.ChildIDs() {
			sn, err := t.node(ctx, snID)
			if err != nil {
				return err
			}
			err = t.traverse(ctx, sn, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		err = f(ctx, n)
	}
	return err
}

// Leaves returns the number of leaves of the tree.
func (t *Tree) Leaves(ctx context.Context) (int, error) {
	var count int
	err := t.Traverse(ctx, false, func(_ context.Context, n Node) error {
		if _, ok := n.(*Leaf); ok {
			count++
		}
		return nil
	})
	return count, err
}

// Depth returns the number of splits on the longest path from the root
// to a leaf: 0 for a tree that is a single leaf.
func (t *Tree) Depth(ctx context.Context) (int, error) {
	depths := make(map[string]int)
	err := t.Traverse(ctx, true, func(_ context.Context, n Node) error {
		s, ok := n.(*Split)
		if !ok {
			depths[n.Head().ID] = 0
			return nil
		}
		deepest := 0
		for _, id := range s.ChildIDs() {
			if depths[id] > deepest {
				deepest = depths[id]
			}
		}
		depths[s.ID] = deepest + 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return depths[t.RootID], nil
}

func (t *Tree) node(ctx context.Context, id string) (Node, error) {
	n, err := t.NodeStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %s: %w", id, err)
	}
	if n == nil {
		return nil, &ModelError{NodeID: id}
	}
	return n, nil
}
