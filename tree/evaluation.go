package tree

import (
	"context"
	"fmt"

	"github.com/go2starr/cs540-d-tree/dataset"
)

/*
Evaluation is the outcome of testing a tree against a dataset.
*/
type Evaluation struct {
	// Number of examples tested
	Total int
	// Number of examples the tree classified as labelled
	Correct int
	// Labels of the misclassified examples, in dataset order
	Mismatched []string
	// Confusion counts examples by actual classification and then
	// by the classification the tree gave them
	Confusion map[string]map[string]int
}

// Accuracy returns the percentage of correctly classified examples, or 0
// when no examples were tested.
func (e *Evaluation) Accuracy() float64 {
	if e.Total == 0 {
		return 0.0
	}
	return 100.0 * float64(e.Correct) / float64(e.Total)
}

func (e *Evaluation) String() string {
	return fmt.Sprintf("%d/%d (%.2f%%)", e.Correct, e.Total, e.Accuracy())
}

/*
Test takes a context.Context and a dataset.Dataset, classifies every
example of the dataset with the tree and compares the result with the
example's classification. It returns an Evaluation, or an error if an
example could not be classified.
*/
func (t *Tree) Test(ctx context.Context, d dataset.Dataset) (*Evaluation, error) {
	examples, err := d.Examples()
	if err != nil {
		return nil, err
	}
	ev := &Evaluation{Confusion: make(map[string]map[string]int)}
	for _, e := range examples {
		predicted, err := t.Classify(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("testing example %s: %w", e.Label(), err)
		}
		actual := e.Classification()
		ev.Total++
		if predicted == actual {
			ev.Correct++
		} else {
			ev.Mismatched = append(ev.Mismatched, e.Label())
		}
		if ev.Confusion[actual] == nil {
			ev.Confusion[actual] = make(map[string]int)
		}
		ev.Confusion[actual][predicted]++
	}
	return ev, nil
}
