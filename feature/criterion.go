package feature

import "fmt"

/*
Criterion represents a constraint on a feature: the value it must take.

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the sample's value for the feature is the one required by the criterion.

Its Feature method returns the feature on which the criterion is applied.
*/
type Criterion interface {
	Feature() *Feature
	Value() string
	SatisfiedBy(sample Sample) (bool, error)
}

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the feature
passed as parameter, or an error if the sample has no value for it.
*/
type Sample interface {
	ValueFor(*Feature) (string, error)
}

type criterion struct {
	feature *Feature
	value   string
}

/*
NewCriterion takes a feature and one of its values and returns a
Criterion satisfied by samples taking that value for the feature.
*/
func NewCriterion(f *Feature, value string) Criterion {
	return &criterion{f, value}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (c *criterion) Feature() *Feature {
	return c.feature
}

func (c *criterion) Value() string {
	return c.value
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion. An error is returned when the sample cannot
provide a value for the feature.
*/
func (c *criterion) SatisfiedBy(sample Sample) (bool, error) {
	val, err := sample.ValueFor(c.feature)
	if err != nil {
		return false, err
	}
	return c.value == val, nil
}

func (c *criterion) String() string {
	return fmt.Sprintf("%s is %s", c.feature.Name(), c.value)
}
