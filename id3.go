/*
Package id3 grows binary decision trees with the ID3 algorithm.

A tree is grown from a dataset of examples described by binary features
and classified with one of two classes. Every node either becomes a leaf
or splits its examples on the feature leaving the lowest expected entropy,
with one child per value of that feature, until no examples, no mixed
classifications or no features are left.
*/
package id3

import (
	"context"
	"fmt"

	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/tree"
	"github.com/rs/zerolog"
)

// Error represents an error growing a tree
type Error string

// ErrEmptyDataset is returned when a plurality is requested from a dataset
// with no examples, which includes growing a tree from one.
const ErrEmptyDataset = Error("empty dataset")

func (e Error) Error() string {
	return string(e)
}

/*
Pot holds the configuration trees are grown with: the features that can
be split on, in the order used to break ties, the classes examples are
classified with, the node store new nodes are created in and a logger.
*/
type Pot struct {
	features  []*feature.Feature
	classes   feature.Classes
	nodeStore tree.NodeStore
	logger    zerolog.Logger
}

// Option configures a Pot
type Option func(*Pot)

// WithNodeStore makes the pot create nodes in the given store instead of
// a new in-memory one.
func WithNodeStore(ns tree.NodeStore) Option {
	return func(p *Pot) {
		p.nodeStore = ns
	}
}

// WithLogger makes the pot log every decision at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pot) {
		p.logger = l
	}
}

/*
New takes the features and classes trees will be grown with and options,
and returns a Pot.
*/
func New(features []*feature.Feature, classes feature.Classes, opts ...Option) *Pot {
	p := &Pot{features: features, classes: classes, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.nodeStore == nil {
		p.nodeStore = tree.NewMemoryNodeStore()
	}
	return p
}

/*
Train takes a context, a dataset and the features to grow a tree with and
returns the tree grown on a new in-memory node store, with the dataset's
classes.
*/
func Train(ctx context.Context, d dataset.Dataset, features []*feature.Feature) (*tree.Tree, error) {
	return New(features, d.Classes()).Grow(ctx, d)
}

/*
Grow takes a context and a dataset and grows a tree from it. It returns
the tree or an error if the dataset is empty, its classes are not the
pot's, it cannot be queried or nodes cannot be stored. The context is
checked before developing each node.
*/
func (p *Pot) Grow(ctx context.Context, d dataset.Dataset) (*tree.Tree, error) {
	if !d.Classes().Equal(p.classes) {
		return nil, fmt.Errorf("growing tree: dataset classes %v, expected %v", d.Classes(), p.classes)
	}
	count, err := d.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("growing tree: %w", ErrEmptyDataset)
	}
	features := append([]*feature.Feature{}, p.features...)
	root, err := p.grow(ctx, tree.Header{}, d, d, features)
	if err != nil {
		return nil, err
	}
	t := tree.New(p.nodeStore, root.Head().ID, p.features, p.classes)
	p.logger.Debug().Str("tree", t.ID).Str("root", t.RootID).Int("examples", count).Msg("tree grown")
	return t, nil
}

func (p *Pot) grow(ctx context.Context, h tree.Header, d, parent dataset.Dataset, features []*feature.Feature) (tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count, err := d.Count()
	if err != nil {
		return nil, err
	}
	h.Weight = count
	if count == 0 {
		label, err := Plurality(parent)
		if err != nil {
			return nil, err
		}
		return p.leaf(ctx, h, label, "no examples")
	}
	counts, err := d.CountClassifications()
	if err != nil {
		return nil, err
	}
	if len(counts) == 1 {
		for label := range counts {
			return p.leaf(ctx, h, label, "uniform classification")
		}
	}
	if len(features) == 0 {
		label, err := Plurality(d)
		if err != nil {
			return nil, err
		}
		return p.leaf(ctx, h, label, "no features left")
	}
	part, index, err := selectPartition(d, features, p.classes.First())
	if err != nil {
		return nil, err
	}
	split := &tree.Split{Header: h, Feature: part.Feature, Children: make(map[string]string)}
	err = p.nodeStore.Create(ctx, split)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().
		Str("node", split.ID).
		Str("feature", part.Feature.Name()).
		Float64("entropy", part.Entropy()).
		Int("examples", count).
		Msg("split")
	remaining := make([]*feature.Feature, 0, len(features)-1)
	remaining = append(remaining, features[:index]...)
	remaining = append(remaining, features[index+1:]...)
	for i, v := range part.Feature.Values() {
		child, err := p.grow(ctx, tree.Header{ParentID: split.ID, Value: v}, part.Subsets[i], d, remaining)
		if err != nil {
			return nil, err
		}
		split.Children[v] = child.Head().ID
	}
	err = p.nodeStore.Store(ctx, split)
	if err != nil {
		return nil, err
	}
	return split, nil
}

func (p *Pot) leaf(ctx context.Context, h tree.Header, label, reason string) (tree.Node, error) {
	leaf := &tree.Leaf{Header: h, Classification: label}
	err := p.nodeStore.Create(ctx, leaf)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().
		Str("node", leaf.ID).
		Str("classification", label).
		Int("examples", h.Weight).
		Msg(reason)
	return leaf, nil
}
