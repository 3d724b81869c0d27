/*
Package feature defines the binary features examples are described with,
the pair of classes they can be labelled with and the criteria used to
partition them.
*/
package feature

import "fmt"

/*
Feature represents a property that can be observed and that can only
take one of two values.

Features are compared by identity: two *Feature values describe the same
property only if they are the same pointer. Use a Registry to make sure a
name always resolves to the same instance.
*/
type Feature struct {
	name   string
	values [2]string
}

/*
New takes a name string and the two values the feature may take and
returns a feature with the given name and values, in that order.
*/
func New(name, first, second string) *Feature {
	return &Feature{name, [2]string{first, second}}
}

/*
Name returns a string with the name of the feature
*/
func (f *Feature) Name() string {
	return f.name
}

/*
Values returns a string slice with the two values available for the
feature in the order they were declared
*/
func (f *Feature) Values() []string {
	return []string{f.values[0], f.values[1]}
}

/*
Valid receives a value and returns a boolean and an error. When the
value is one of the values of the feature, the method returns true and
nil. Otherwise it returns false and an error describing the reason.
*/
func (f *Feature) Valid(value string) (bool, error) {
	if value == f.values[0] || value == f.values[1] {
		return true, nil
	}
	return false, fmt.Errorf("feature %s got unknown value %q, expected one of %v", f.name, value, f.Values())
}

func (f *Feature) String() string {
	return f.name
}
