/*
Package inputsample provides an implementation of feature.Sample whose
values are read from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/feature"
)

/*
readSample represents a sample whose feature values
are retrieved from a reader. A feature value will be
requested using a FeatureValueRequester before reading it.
*/
type readSample struct {
	obtainedValues        map[*feature.Feature]string
	undefinedValue        string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              []*feature.Feature
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(*feature.Feature) error
	RejectValueFor(*feature.Feature, string) error
}

/*
New takes an io.Reader, a slice of features, a
FeatureValueRequester and an undefinedValue coding string
and returns a feature.Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader.

The parsing expects each value to be presented ending with the
'\n' character, that is in new lines. Lines are read until one holding
a legal value for the feature is found; the rest are rejected with the
FeatureValueRequester's RejectValueFor method. The undefinedValue string
on its own line makes ValueFor return an error wrapping
dataset.ErrMissingValue.

Values are remembered, so each feature is requested at most once.
Attempting to obtain a value for a feature not in the given features slice
returns an error wrapping dataset.ErrUnknownFeature.
*/
func New(r io.Reader, features []*feature.Feature, featureValueRequester FeatureValueRequester, undefinedValue string) feature.Sample {
	scanner := bufio.NewScanner(r)
	return &readSample{make(map[*feature.Feature]string), undefinedValue, scanner, featureValueRequester, features}
}

func (rs *readSample) ValueFor(f *feature.Feature) (string, error) {
	value, ok := rs.obtainedValues[f]
	if ok {
		return value, nil
	}
	known := false
	for _, kf := range rs.features {
		if kf == f {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("%w %s, do not know how to read its value", dataset.ErrUnknownFeature, f.Name())
	}
	err := rs.featureValueRequester.RequestValueFor(f)
	if err != nil {
		return "", err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		if line == rs.undefinedValue {
			return "", fmt.Errorf("%w for feature %s", dataset.ErrMissingValue, f.Name())
		}
		if ok, _ := f.Valid(line); ok {
			rs.obtainedValues[f] = line
			return line, nil
		}
		err = rs.featureValueRequester.RejectValueFor(f, line)
		if err != nil {
			return "", err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("EOF when requesting value for %s", f.Name())
}
