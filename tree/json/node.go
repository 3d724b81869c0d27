package json

import (
	"encoding/json"
	"fmt"

	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a tree.Node
	//and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (tree.Node, error)
}

type nodeEncodeDecoder struct {
	features []*feature.Feature
}

type node struct {
	ID             string            `json:"id"`
	ParentID       string            `json:"pId,omitempty"`
	Value          string            `json:"v,omitempty"`
	Weight         int               `json:"w"`
	Classification string            `json:"c,omitempty"`
	Feature        string            `json:"f,omitempty"`
	Subtrees       map[string]string `json:"st,omitempty"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that encodes nodes
as JSON objects. Split features are encoded by name and decoded into
the feature with that name among the given ones.

A leaf is encoded with a "c" property holding its classification. A split
is encoded with an "f" property holding the name of its feature and an "st"
object mapping each value of the feature to the ID of a child. Both have
"id", "pId" (parent ID), "v" (value leading to the node) and "w" (weight)
properties.
*/
func NewNodeEncodeDecoder(features []*feature.Feature) NodeEncodeDecoder {
	return &nodeEncodeDecoder{features}
}

func (ned *nodeEncodeDecoder) Encode(n tree.Node) ([]byte, error) {
	h := n.Head()
	jn := &node{
		ID:       h.ID,
		ParentID: h.ParentID,
		Value:    h.Value,
		Weight:   h.Weight,
	}
	switch n := n.(type) {
	case *tree.Leaf:
		jn.Classification = n.Classification
	case *tree.Split:
		jn.Feature = n.Feature.Name()
		jn.Subtrees = n.Children
	default:
		return nil, fmt.Errorf("marshalling node %v: unknown node type %T", h.ID, n)
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	h := tree.Header{ID: jn.ID, ParentID: jn.ParentID, Value: jn.Value, Weight: jn.Weight}
	if jn.Feature == "" {
		if jn.Classification == "" {
			return nil, fmt.Errorf("unmarshalling node %v: neither a classification nor a feature", jn.ID)
		}
		return &tree.Leaf{Header: h, Classification: jn.Classification}, nil
	}
	var nf *feature.Feature
	for _, f := range ned.features {
		if f.Name() == jn.Feature {
			nf = f
			break
		}
	}
	if nf == nil {
		return nil, fmt.Errorf("unmarshalling node %v: unknown feature %v", jn.ID, jn.Feature)
	}
	for _, v := range nf.Values() {
		if _, ok := jn.Subtrees[v]; !ok {
			return nil, fmt.Errorf("unmarshalling node %v: no subtree for %s=%s", jn.ID, nf.Name(), v)
		}
	}
	if len(jn.Subtrees) != len(nf.Values()) {
		return nil, fmt.Errorf("unmarshalling node %v: %d subtrees for feature %s", jn.ID, len(jn.Subtrees), nf.Name())
	}
	return &tree.Split{Header: h, Feature: nf, Children: jn.Subtrees}, nil
}
