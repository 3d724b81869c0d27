package id3

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/tree"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wind     = feature.New("wind", "strong", "weak")
	outlook  = feature.New("outlook", "sunny", "rainy")
	features = []*feature.Feature{wind, outlook}
	play     = feature.NewClasses("yes", "no")
)

func example(t *testing.T, label, class, w, o string) *dataset.Example {
	e := dataset.NewExample(label, features, play)
	require.NoError(t, e.SetClassification(class))
	require.NoError(t, e.SetFeatureValue(wind, w))
	require.NoError(t, e.SetFeatureValue(outlook, o))
	return e
}

// sunnyDays plays only when it is sunny, whatever the wind.
func sunnyDays(t *testing.T) []*dataset.Example {
	return []*dataset.Example{
		example(t, "d1", "yes", "strong", "sunny"),
		example(t, "d2", "no", "strong", "rainy"),
		example(t, "d3", "yes", "weak", "sunny"),
		example(t, "d4", "no", "weak", "rainy"),
	}
}

func rootOf(t *testing.T, tr *tree.Tree) tree.Node {
	n, err := tr.Get(context.Background(), tr.RootID)
	require.NoError(t, err)
	require.NotNil(t, n)
	return n
}

func TestTrainWeather(t *testing.T) {
	ctx := context.Background()
	examples := sunnyDays(t)
	d := dataset.New(examples, play)

	tr, err := Train(ctx, d, features)
	require.NoError(t, err)

	root, ok := rootOf(t, tr).(*tree.Split)
	require.True(t, ok)
	assert.Same(t, outlook, root.Feature)
	assert.Equal(t, 4, root.Weight)

	ev, err := tr.Test(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 100.0, ev.Accuracy())
	assert.Empty(t, ev.Mismatched)

	leaves, err := tr.Leaves(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, leaves)
}

func TestUniformClassificationYieldsLeaf(t *testing.T) {
	examples := []*dataset.Example{
		example(t, "d1", "no", "strong", "sunny"),
		example(t, "d2", "no", "weak", "rainy"),
	}
	for _, fs := range [][]*feature.Feature{nil, features} {
		tr, err := New(fs, play).Grow(context.Background(), dataset.New(examples, play))
		require.NoError(t, err)
		leaf, ok := rootOf(t, tr).(*tree.Leaf)
		require.True(t, ok)
		assert.Equal(t, "no", leaf.Classification)
		assert.Equal(t, 2, leaf.Weight)
	}
}

func TestEmptyExamplesYieldPluralityOfParent(t *testing.T) {
	ctx := context.Background()
	parent := dataset.New([]*dataset.Example{
		example(t, "d1", "no", "strong", "sunny"),
		example(t, "d2", "no", "weak", "rainy"),
		example(t, "d3", "yes", "weak", "sunny"),
	}, play)
	empty := dataset.New(nil, play)

	p := New(features, play)
	n, err := p.grow(ctx, tree.Header{}, empty, parent, features)
	require.NoError(t, err)
	leaf, ok := n.(*tree.Leaf)
	require.True(t, ok)
	assert.Equal(t, "no", leaf.Classification)
	assert.Equal(t, 0, leaf.Weight)
}

func TestNoFeaturesLeftYieldsPlurality(t *testing.T) {
	tests := map[string]struct {
		classes feature.Classes
		labels  []string
		want    string
	}{
		"majority":             {play, []string{"no", "yes", "no"}, "no"},
		"tie goes to first":    {play, []string{"no", "yes"}, "yes"},
		"tie with other order": {feature.NewClasses("no", "yes"), []string{"yes", "no"}, "no"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var examples []*dataset.Example
			for _, l := range test.labels {
				e := dataset.NewExample(l, nil, test.classes)
				require.NoError(t, e.SetClassification(l))
				examples = append(examples, e)
			}
			tr, err := New(nil, test.classes).Grow(context.Background(), dataset.New(examples, test.classes))
			require.NoError(t, err)
			leaf, ok := rootOf(t, tr).(*tree.Leaf)
			require.True(t, ok)
			assert.Equal(t, test.want, leaf.Classification)
		})
	}
}

func TestUnseenValueYieldsLeafChild(t *testing.T) {
	ctx := context.Background()
	d := dataset.New([]*dataset.Example{
		example(t, "d1", "yes", "strong", "sunny"),
		example(t, "d2", "no", "weak", "sunny"),
		example(t, "d3", "no", "weak", "sunny"),
		example(t, "d4", "yes", "weak", "sunny"),
	}, play)

	tr, err := Train(ctx, d, features)
	require.NoError(t, err)
	root, ok := rootOf(t, tr).(*tree.Split)
	require.True(t, ok)
	assert.Same(t, wind, root.Feature)

	weakNode, err := tr.Get(ctx, root.Children["weak"])
	require.NoError(t, err)
	weak, ok := weakNode.(*tree.Split)
	require.True(t, ok)
	assert.Same(t, outlook, weak.Feature)
	require.Len(t, weak.Children, 2)

	rainyNode, err := tr.Get(ctx, weak.Children["rainy"])
	require.NoError(t, err)
	rainy, ok := rainyNode.(*tree.Leaf)
	require.True(t, ok)
	assert.Equal(t, "no", rainy.Classification)
	assert.Equal(t, 0, rainy.Weight)
	assert.Equal(t, "rainy", rainy.Value)
	assert.Equal(t, weak.ID, rainy.ParentID)

	got, err := tr.Classify(ctx, example(t, "x", "yes", "weak", "rainy"))
	require.NoError(t, err)
	assert.Equal(t, "no", got)
}

func TestEverySplitPartitionsItsExamples(t *testing.T) {
	ctx := context.Background()
	humidity := feature.New("humidity", "high", "normal")
	fs := []*feature.Feature{wind, outlook, humidity}
	var examples []*dataset.Example
	labels := []string{"yes", "no", "no", "yes", "no", "no", "yes", "yes"}
	i := 0
	for _, w := range wind.Values() {
		for _, o := range outlook.Values() {
			for _, h := range humidity.Values() {
				e := dataset.NewExample(string(rune('a'+i)), fs, play)
				require.NoError(t, e.SetClassification(labels[i]))
				require.NoError(t, e.SetFeatureValue(wind, w))
				require.NoError(t, e.SetFeatureValue(outlook, o))
				require.NoError(t, e.SetFeatureValue(humidity, h))
				examples = append(examples, e)
				i++
			}
		}
	}
	d := dataset.New(examples, play)
	tr, err := Train(ctx, d, fs)
	require.NoError(t, err)

	err = tr.Traverse(ctx, false, func(ctx context.Context, n tree.Node) error {
		s, ok := n.(*tree.Split)
		if !ok {
			return nil
		}
		assert.Len(t, s.Children, 2)
		weight := 0
		for _, v := range s.Feature.Values() {
			child, err := tr.Get(ctx, s.Children[v])
			require.NoError(t, err)
			require.NotNil(t, child)
			assert.Equal(t, v, child.Head().Value)
			assert.Equal(t, s.ID, child.Head().ParentID)
			weight += child.Head().Weight
		}
		assert.Equal(t, s.Weight, weight)
		return nil
	})
	require.NoError(t, err)

	ev, err := tr.Test(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 100.0, ev.Accuracy())
}

func TestTiesKeepFirstFeature(t *testing.T) {
	a := feature.New("a", "t", "f")
	b := feature.New("b", "t", "f")
	var examples []*dataset.Example
	for i, v := range []string{"t", "f"} {
		e := dataset.NewExample("x", []*feature.Feature{a, b}, play)
		require.NoError(t, e.SetClassification(play.Labels()[i]))
		require.NoError(t, e.SetFeatureValue(a, v))
		require.NoError(t, e.SetFeatureValue(b, v))
		examples = append(examples, e)
	}
	d := dataset.New(examples, play)

	for _, order := range [][]*feature.Feature{{a, b}, {b, a}} {
		tr, err := Train(context.Background(), d, order)
		require.NoError(t, err)
		root, ok := rootOf(t, tr).(*tree.Split)
		require.True(t, ok)
		assert.Same(t, order[0], root.Feature)
	}
}

func TestGrowIsDeterministic(t *testing.T) {
	ctx := context.Background()
	d := dataset.New([]*dataset.Example{
		example(t, "d1", "yes", "strong", "sunny"),
		example(t, "d2", "no", "weak", "sunny"),
		example(t, "d3", "yes", "weak", "rainy"),
		example(t, "d4", "no", "strong", "rainy"),
	}, play)

	first, err := Train(ctx, d, features)
	require.NoError(t, err)
	second, err := Train(ctx, d, features)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	for _, w := range wind.Values() {
		for _, o := range outlook.Values() {
			s := example(t, "x", "yes", w, o)
			c1, err := first.Classify(ctx, s)
			require.NoError(t, err)
			c2, err := second.Classify(ctx, s)
			require.NoError(t, err)
			assert.Equal(t, c1, c2)
		}
	}
}

func TestGrowErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Train(ctx, dataset.New(nil, play), features)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = New(features, feature.NewClasses("no", "yes")).Grow(ctx, dataset.New(sunnyDays(t), play))
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Train(cancelled, dataset.New(sunnyDays(t), play), features)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGrowWithOptions(t *testing.T) {
	var buf bytes.Buffer
	ns := tree.NewMemoryNodeStore()
	p := New(features, play, WithNodeStore(ns), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	tr, err := p.Grow(context.Background(), dataset.New(sunnyDays(t), play))
	require.NoError(t, err)
	assert.Equal(t, ns, tr.NodeStore)
	assert.Contains(t, buf.String(), `"feature":"outlook"`)
	assert.Contains(t, buf.String(), `"message":"uniform classification"`)
}

func TestPlurality(t *testing.T) {
	_, err := Plurality(dataset.New(nil, play))
	assert.ErrorIs(t, err, ErrEmptyDataset)

	label, err := Plurality(dataset.New(sunnyDays(t), play))
	require.NoError(t, err)
	assert.Equal(t, "yes", label)
}

func TestPartition(t *testing.T) {
	d := dataset.New([]*dataset.Example{
		example(t, "d1", "yes", "strong", "sunny"),
		example(t, "d2", "no", "weak", "sunny"),
		example(t, "d3", "no", "weak", "sunny"),
		example(t, "d4", "yes", "weak", "sunny"),
	}, play)

	p, err := NewPartition(d, wind, "yes")
	require.NoError(t, err)
	require.Len(t, p.Subsets, 2)
	total := 0
	for _, s := range p.Subsets {
		n, err := s.Count()
		require.NoError(t, err)
		total += n
	}
	assert.Equal(t, 4, total)
	assert.InDelta(t, 0.75*BooleanEntropy(1.0/3.0), p.Entropy(), 1e-12)

	p, err = NewPartition(d, outlook, "yes")
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, p.Entropy(), 1e-12)
}

func TestBooleanEntropy(t *testing.T) {
	assert.InDelta(t, 0.0, BooleanEntropy(0), 1e-12)
	assert.InDelta(t, 0.0, BooleanEntropy(1), 1e-12)
	assert.InDelta(t, math.Ln2, BooleanEntropy(0.5), 1e-12)
	q := 0.25
	assert.InDelta(t, -(q*math.Log(q) + (1-q)*math.Log(1-q)), BooleanEntropy(q), 1e-12)
}
