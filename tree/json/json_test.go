package json

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	id3 "github.com/go2starr/cs540-d-tree"
	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grownTree(t *testing.T, reg *feature.Registry) (*tree.Tree, dataset.Dataset) {
	wind, err := reg.Intern("wind", "strong", "weak")
	require.NoError(t, err)
	outlook, err := reg.Intern("outlook", "sunny", "rainy")
	require.NoError(t, err)
	features := []*feature.Feature{wind, outlook}
	play := feature.NewClasses("yes", "no")
	rows := [][3]string{
		{"yes", "strong", "sunny"},
		{"no", "strong", "rainy"},
		{"yes", "weak", "rainy"},
		{"yes", "weak", "sunny"},
	}
	var examples []*dataset.Example
	for i, row := range rows {
		e := dataset.NewExample(string(rune('a'+i)), features, play)
		require.NoError(t, e.SetClassification(row[0]))
		require.NoError(t, e.SetFeatureValue(wind, row[1]))
		require.NoError(t, e.SetFeatureValue(outlook, row[2]))
		examples = append(examples, e)
	}
	d := dataset.New(examples, play)
	tr, err := id3.Train(context.Background(), d, features)
	require.NoError(t, err)
	return tr, d
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := feature.NewRegistry()
	tr, d := grownTree(t, reg)

	var buf bytes.Buffer
	require.NoError(t, WriteJSONTree(ctx, tr, &buf))
	assert.True(t, json.Valid(buf.Bytes()))

	read := &tree.Tree{NodeStore: tree.NewMemoryNodeStore()}
	require.NoError(t, ReadJSONTree(ctx, read, reg, &buf))
	assert.Equal(t, tr.ID, read.ID)
	assert.Equal(t, tr.RootID, read.RootID)
	assert.Equal(t, tr.Features, read.Features)
	assert.True(t, tr.Classes.Equal(read.Classes))
	assert.Equal(t, tr.String(), read.String())

	examples, err := d.Examples()
	require.NoError(t, err)
	for _, e := range examples {
		want, err := tr.Classify(ctx, e)
		require.NoError(t, err)
		got, err := read.Classify(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReadJSONTreeInternsFeatures(t *testing.T) {
	ctx := context.Background()
	tr, _ := grownTree(t, feature.NewRegistry())
	var buf bytes.Buffer
	require.NoError(t, WriteJSONTree(ctx, tr, &buf))

	reg := feature.NewRegistry()
	read := &tree.Tree{NodeStore: tree.NewMemoryNodeStore()}
	require.NoError(t, ReadJSONTree(ctx, read, reg, &buf))
	require.Len(t, read.Features, 2)
	assert.Same(t, reg.Lookup("wind"), read.Features[0])
	assert.Same(t, reg.Lookup("outlook"), read.Features[1])
}

func TestReadJSONTreeErrors(t *testing.T) {
	tests := map[string]string{
		"not json":        `{`,
		"no root":         `{"classes":["yes","no"],"features":[],"nodes":[]}`,
		"one class":       `{"rootID":"1","classes":["yes"],"features":[],"nodes":[]}`,
		"three values":    `{"rootID":"1","classes":["yes","no"],"features":[{"name":"wind","values":["a","b","c"]}],"nodes":[]}`,
		"unknown feature": `{"rootID":"1","classes":["yes","no"],"features":[],"nodes":[{"id":"1","w":1,"f":"wind","st":{"strong":"2","weak":"3"}}]}`,
		"missing subtree": `{"rootID":"1","classes":["yes","no"],"features":[{"name":"wind","values":["strong","weak"]}],"nodes":[{"id":"1","w":1,"f":"wind","st":{"strong":"2"}}]}`,
		"empty node":      `{"rootID":"1","classes":["yes","no"],"features":[],"nodes":[{"id":"1","w":1}]}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			read := &tree.Tree{NodeStore: tree.NewMemoryNodeStore()}
			err := ReadJSONTree(context.Background(), read, feature.NewRegistry(), strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestNodeEncodeDecoder(t *testing.T) {
	wind := feature.New("wind", "strong", "weak")
	ned := NewNodeEncodeDecoder([]*feature.Feature{wind})

	leaf := &tree.Leaf{Header: tree.Header{ID: "2", ParentID: "1", Value: "strong", Weight: 3}, Classification: "no"}
	data, err := ned.Encode(leaf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2","pId":"1","v":"strong","w":3,"c":"no"}`, string(data))
	n, err := ned.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, leaf, n)

	split := &tree.Split{Header: tree.Header{ID: "1", Weight: 5}, Feature: wind, Children: map[string]string{"strong": "2", "weak": "3"}}
	data, err = ned.Encode(split)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","w":5,"f":"wind","st":{"strong":"2","weak":"3"}}`, string(data))
	n, err = ned.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, split, n)
}
