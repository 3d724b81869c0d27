/*
Package json serializes trees as JSON documents.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/tree"
)

type jsonFeature struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type jsonTreeHeader struct {
	ID       string         `json:"id"`
	RootID   string         `json:"rootID"`
	Classes  []string       `json:"classes"`
	Features []*jsonFeature `json:"features"`
}

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree
and an io.Writer and serializes the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
  - "id": a string with the ID of the tree
  - "rootID": a string with the ID of the node at the root of the tree
  - "classes": an array with the two classes of the tree
  - "features": an array with the features of the tree in declared order,
    each an object with a "name" and its "values"
  - "nodes": an array containing the nodes that can be traversed on the tree
    serialized by a NodeEncodeDecoder.

An error is returned if the tree cannot be traversed, serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, w io.Writer) error {
	ned := NewNodeEncodeDecoder(t.Features)
	err := marshalJSONTreeHeader(t, w)
	if err != nil {
		return err
	}
	var i int
	err = t.Traverse(ctx, false, func(ctx context.Context, n tree.Node) error {
		err := writeNode(i, n, ned, w)
		i++
		return err
	})
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("]}\n"))
	return err
}

/*
ReadJSONTree takes a context.Context, a pointer to a tree.Tree, a
feature.Registry and an io.Reader and unmarshals the contents of the
io.Reader onto the given tree, storing its nodes in the tree's NodeStore.
The features of the tree are interned in the registry, so samples built
with features from the same registry can be classified by the tree.
An error is returned if the JSON cannot be read from the io.Reader or
unmarshalled onto the tree.
*/
func ReadJSONTree(ctx context.Context, t *tree.Tree, reg *feature.Registry, r io.Reader) error {
	dec := json.NewDecoder(r)
	jt := &struct {
		jsonTreeHeader
		Nodes []json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jt)
	if err != nil {
		return err
	}
	features, classes, err := jt.jsonTreeHeader.decode(reg)
	if err != nil {
		return err
	}
	ned := NewNodeEncodeDecoder(features)
	for _, jn := range jt.Nodes {
		n, err := ned.Decode(jn)
		if err != nil {
			return err
		}
		err = t.NodeStore.Store(ctx, n)
		if err != nil {
			return err
		}
	}
	t.ID = jt.ID
	t.RootID = jt.RootID
	t.Features = features
	t.Classes = classes
	return nil
}

/*
MarshalHeader takes a tree and returns the JSON object WriteJSONTree
writes for it, without the "nodes" field.
*/
func MarshalHeader(t *tree.Tree) ([]byte, error) {
	h := &jsonTreeHeader{
		ID:       t.ID,
		RootID:   t.RootID,
		Classes:  t.Classes.Labels(),
		Features: make([]*jsonFeature, 0, len(t.Features)),
	}
	for _, f := range t.Features {
		h.Features = append(h.Features, &jsonFeature{f.Name(), f.Values()})
	}
	return json.Marshal(h)
}

/*
UnmarshalHeader takes a JSON object as written by MarshalHeader, a tree
and a feature.Registry, and sets the ID, root ID, features and classes of
the tree from it. Features are interned in the registry.
*/
func UnmarshalHeader(data []byte, t *tree.Tree, reg *feature.Registry) error {
	h := &jsonTreeHeader{}
	err := json.Unmarshal(data, h)
	if err != nil {
		return err
	}
	features, classes, err := h.decode(reg)
	if err != nil {
		return err
	}
	t.ID = h.ID
	t.RootID = h.RootID
	t.Features = features
	t.Classes = classes
	return nil
}

func (h *jsonTreeHeader) decode(reg *feature.Registry) ([]*feature.Feature, feature.Classes, error) {
	if h.RootID == "" {
		return nil, feature.Classes{}, fmt.Errorf("no root node id available")
	}
	if len(h.Classes) != 2 {
		return nil, feature.Classes{}, fmt.Errorf("expected 2 classes, got %d", len(h.Classes))
	}
	features := make([]*feature.Feature, 0, len(h.Features))
	for _, jf := range h.Features {
		if len(jf.Values) != 2 {
			return nil, feature.Classes{}, fmt.Errorf("feature %s: expected 2 values, got %d", jf.Name, len(jf.Values))
		}
		f, err := reg.Intern(jf.Name, jf.Values[0], jf.Values[1])
		if err != nil {
			return nil, feature.Classes{}, err
		}
		features = append(features, f)
	}
	return features, feature.NewClasses(h.Classes[0], h.Classes[1]), nil
}

func marshalJSONTreeHeader(t *tree.Tree, w io.Writer) error {
	jh, err := MarshalHeader(t)
	if err != nil {
		return err
	}
	// reopen the object to append the nodes array
	jh = append(jh[:len(jh)-1], []byte(`,"nodes":[`)...)
	_, err = w.Write(jh)
	return err
}

func writeNode(i int, n tree.Node, ned NodeEncodeDecoder, w io.Writer) error {
	if i != 0 {
		_, err := w.Write([]byte(","))
		if err != nil {
			return err
		}
	}
	jn, err := ned.Encode(n)
	if err != nil {
		return err
	}
	_, err = w.Write(jn)
	return err
}
