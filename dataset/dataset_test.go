package dataset

import (
	"testing"

	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wind    = feature.New("wind", "strong", "weak")
	outlook = feature.New("outlook", "sunny", "rainy")
	play    = feature.NewClasses("yes", "no")
)

func newExample(t *testing.T, label, class, w, o string) *Example {
	e := NewExample(label, []*feature.Feature{wind, outlook}, play)
	require.NoError(t, e.SetClassification(class))
	require.NoError(t, e.SetFeatureValue(wind, w))
	require.NoError(t, e.SetFeatureValue(outlook, o))
	return e
}

func TestExampleSetters(t *testing.T) {
	e := NewExample("d1", []*feature.Feature{wind, outlook}, play)

	assert.ErrorIs(t, e.SetClassification("maybe"), ErrInvalidClassification)
	assert.NoError(t, e.SetClassification("no"))
	assert.Equal(t, "no", e.Classification())

	assert.ErrorIs(t, e.SetFeatureValue(wind, "calm"), ErrInvalidFeatureValue)
	assert.ErrorIs(t, e.SetFeatureValue(feature.New("wind", "strong", "weak"), "weak"), ErrUnknownFeature)
	assert.ErrorIs(t, e.SetFeatureValueAt(2, "weak"), ErrUnknownFeature)
	assert.ErrorIs(t, e.SetFeatureValueAt(1, "weak"), ErrInvalidFeatureValue)

	assert.ErrorIs(t, e.Complete(), ErrMissingValue)
	_, err := e.ValueFor(wind)
	assert.ErrorIs(t, err, ErrMissingValue)

	require.NoError(t, e.SetFeatureValueAt(0, "weak"))
	require.NoError(t, e.SetFeatureValue(outlook, "sunny"))
	assert.NoError(t, e.Complete())

	v, err := e.ValueFor(wind)
	require.NoError(t, err)
	assert.Equal(t, "weak", v)
	assert.Equal(t, "sunny", e.FeatureValue(outlook))
	assert.Equal(t, "d1", e.Label())
	assert.Equal(t, "d1: wind=weak outlook=sunny => no", e.String())

	_, err = e.ValueFor(feature.New("humidity", "high", "normal"))
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestSetClassificationOnlyAcceptsLegalLabels(t *testing.T) {
	tests := map[string]bool{
		"yes": true,
		"no":  true,
		"":    false,
		"YES": false,
		"n":   false,
	}
	for label, valid := range tests {
		e := NewExample("x", nil, play)
		err := e.SetClassification(label)
		if valid {
			assert.NoError(t, err, label)
		} else {
			assert.ErrorIs(t, err, ErrInvalidClassification, label)
		}
	}
}

func TestDatasetImplementations(t *testing.T) {
	examples := []*Example{
		newExample(t, "d1", "yes", "strong", "sunny"),
		newExample(t, "d2", "no", "strong", "rainy"),
		newExample(t, "d3", "yes", "weak", "sunny"),
		newExample(t, "d4", "no", "weak", "rainy"),
		newExample(t, "d5", "no", "weak", "sunny"),
	}

	implementations := map[string]Dataset{
		"memory": NewMemoryIntensive(examples, play),
		"cpu":    NewCPUIntensive(examples, play),
		"auto":   New(examples, play),
	}

	for name, d := range implementations {
		t.Run(name, func(t *testing.T) {
			count, err := d.Count()
			require.NoError(t, err)
			assert.Equal(t, 5, count)

			counts, err := d.CountClassifications()
			require.NoError(t, err)
			assert.Equal(t, map[string]int{"yes": 2, "no": 3}, counts)
			assert.True(t, d.Classes().Equal(play))

			weak, err := d.SubsetWith(feature.NewCriterion(wind, "weak"))
			require.NoError(t, err)
			weakSunny, err := weak.SubsetWith(feature.NewCriterion(outlook, "sunny"))
			require.NoError(t, err)

			es, err := weakSunny.Examples()
			require.NoError(t, err)
			require.Len(t, es, 2)
			assert.Equal(t, "d3", es[0].Label())
			assert.Equal(t, "d5", es[1].Label())
			assert.Len(t, weakSunny.Criteria(), 2)

			count, err = weakSunny.Count()
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			none, err := weakSunny.SubsetWith(feature.NewCriterion(outlook, "rainy"))
			require.NoError(t, err)
			count, err = none.Count()
			require.NoError(t, err)
			assert.Equal(t, 0, count)
		})
	}
}

func TestSubsetWithUnknownFeatureFails(t *testing.T) {
	examples := []*Example{newExample(t, "d1", "yes", "strong", "sunny")}
	humidity := feature.New("humidity", "high", "normal")

	_, err := NewMemoryIntensive(examples, play).SubsetWith(feature.NewCriterion(humidity, "high"))
	assert.ErrorIs(t, err, ErrUnknownFeature)

	lazy, err := NewCPUIntensive(examples, play).SubsetWith(feature.NewCriterion(humidity, "high"))
	require.NoError(t, err)
	_, err = lazy.Count()
	assert.ErrorIs(t, err, ErrUnknownFeature)
}
