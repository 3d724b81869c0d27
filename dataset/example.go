package dataset

import (
	"fmt"
	"strings"

	"github.com/go2starr/cs540-d-tree/feature"
)

/*
Example represents a labelled data point: a value for each of a known list
of features, a classification among two legal classes and a tag used to
identify it in reports.

Examples are filled once through their setters, which validate every
value, and only read afterwards.
*/
type Example struct {
	label          string
	features       []*feature.Feature
	classes        feature.Classes
	values         map[*feature.Feature]string
	classification string
}

/*
NewExample takes a label, the features the example will hold values for
and the legal classes, and returns an example with no values set.
*/
func NewExample(label string, features []*feature.Feature, classes feature.Classes) *Example {
	return &Example{
		label:    label,
		features: features,
		classes:  classes,
		values:   make(map[*feature.Feature]string, len(features)),
	}
}

/*
SetFeatureValue takes a feature and a value and records the value for the
feature. It returns an error wrapping ErrUnknownFeature if the feature is
not one of the example's features and ErrInvalidFeatureValue if the value
is not legal for it.
*/
func (e *Example) SetFeatureValue(f *feature.Feature, value string) error {
	if !e.knows(f) {
		return fmt.Errorf("example %s: %w %v", e.label, ErrUnknownFeature, f)
	}
	if ok, err := f.Valid(value); !ok {
		return fmt.Errorf("example %s: %w: %v", e.label, ErrInvalidFeatureValue, err)
	}
	e.values[f] = value
	return nil
}

/*
SetFeatureValueAt works like SetFeatureValue for the feature at the given
position in the example's feature list.
*/
func (e *Example) SetFeatureValueAt(index int, value string) error {
	if index < 0 || index >= len(e.features) {
		return fmt.Errorf("example %s: %w at position %d", e.label, ErrUnknownFeature, index)
	}
	return e.SetFeatureValue(e.features[index], value)
}

/*
SetClassification records the classification for the example, or returns
an error wrapping ErrInvalidClassification if the label is not one of the
legal classes.
*/
func (e *Example) SetClassification(label string) error {
	if !e.classes.Valid(label) {
		return fmt.Errorf("example %s: %w %q, expected one of %v", e.label, ErrInvalidClassification, label, e.classes.Labels())
	}
	e.classification = label
	return nil
}

// FeatureValue returns the value recorded for the feature, or "" if none is.
func (e *Example) FeatureValue(f *feature.Feature) string {
	return e.values[f]
}

/*
ValueFor returns the value recorded for the feature, or an error if the
feature is unknown to the example or has no value. It makes examples
satisfy feature.Sample.
*/
func (e *Example) ValueFor(f *feature.Feature) (string, error) {
	v, ok := e.values[f]
	if ok {
		return v, nil
	}
	if !e.knows(f) {
		return "", fmt.Errorf("example %s: %w %v", e.label, ErrUnknownFeature, f)
	}
	return "", fmt.Errorf("example %s: %w for feature %v", e.label, ErrMissingValue, f)
}

// Classification returns the example's classification label.
func (e *Example) Classification() string {
	return e.classification
}

// Label returns the tag identifying the example.
func (e *Example) Label() string {
	return e.label
}

// Classes returns the legal classes of the example.
func (e *Example) Classes() feature.Classes {
	return e.classes
}

// Features returns the features the example holds values for.
func (e *Example) Features() []*feature.Feature {
	return e.features
}

/*
Complete returns an error wrapping ErrMissingValue unless the example has
a classification and a value for every one of its features.
*/
func (e *Example) Complete() error {
	if e.classification == "" {
		return fmt.Errorf("example %s: %w for classification", e.label, ErrMissingValue)
	}
	for _, f := range e.features {
		if _, ok := e.values[f]; !ok {
			return fmt.Errorf("example %s: %w for feature %v", e.label, ErrMissingValue, f)
		}
	}
	return nil
}

func (e *Example) knows(f *feature.Feature) bool {
	for _, known := range e.features {
		if known == f {
			return true
		}
	}
	return false
}

func (e *Example) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: ", e.label)
	for _, f := range e.features {
		fmt.Fprintf(&sb, "%s=%s ", f.Name(), e.values[f])
	}
	fmt.Fprintf(&sb, "=> %s", e.classification)
	return sb.String()
}
