package feature

import "fmt"

/*
Classes holds the two labels examples can be classified with. The order
matters: the first label is the reference against which entropy is
measured and the one plurality votes prefer on ties.
*/
type Classes struct {
	labels [2]string
}

/*
NewClasses takes the two classification labels and returns Classes with
them in the given order.
*/
func NewClasses(first, second string) Classes {
	return Classes{[2]string{first, second}}
}

// First returns the first declared label.
func (c Classes) First() string {
	return c.labels[0]
}

// Labels returns both labels in declared order.
func (c Classes) Labels() []string {
	return []string{c.labels[0], c.labels[1]}
}

/*
Valid returns whether the given label is one of the two classification
labels.
*/
func (c Classes) Valid(label string) bool {
	return label == c.labels[0] || label == c.labels[1]
}

// Equal reports whether both Classes declare the same labels in the same order.
func (c Classes) Equal(o Classes) bool {
	return c.labels == o.labels
}

// IsZero reports whether no labels were declared.
func (c Classes) IsZero() bool {
	return c.labels == [2]string{}
}

func (c Classes) String() string {
	return fmt.Sprintf("{%s, %s}", c.labels[0], c.labels[1])
}
