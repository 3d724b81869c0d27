/*
Package dataset provides the examples trees are grown from and tested
against, and the datasets that group them.
*/
package dataset

import (
	"fmt"

	"github.com/go2starr/cs540-d-tree/feature"
)

const (
	exampleCountThresholdForDatasetImplementation = 1000
)

/*
Dataset represents a collection of examples.

Its SubsetWith method takes a feature.Criterion and returns a subset that only
contains examples that satisfy it.

Its CountClassifications method returns how many examples take each
classification label.

Its Examples method returns the examples it contains, always in the order
they were given when the dataset was created.
*/
type Dataset interface {
	Count() (int, error)
	Examples() ([]*Example, error)
	SubsetWith(feature.Criterion) (Dataset, error)
	CountClassifications() (map[string]int, error)
	Classes() feature.Classes
	Criteria() []feature.Criterion
}

type memoryIntensiveSubsettingDataset struct {
	classes  feature.Classes
	examples []*Example
	criteria []feature.Criterion
}

type cpuIntensiveSubsettingDataset struct {
	classes  feature.Classes
	count    *int
	examples []*Example
	criteria []feature.Criterion
}

/*
New takes a slice of examples and their classes and returns a dataset built
with them. The dataset will be a CPU intensive one when the number of
examples is over exampleCountThresholdForDatasetImplementation
*/
func New(examples []*Example, classes feature.Classes) Dataset {
	if len(examples) > exampleCountThresholdForDatasetImplementation {
		return NewCPUIntensive(examples, classes)
	}
	return NewMemoryIntensive(examples, classes)
}

/*
NewMemoryIntensive takes a slice of examples and returns a Dataset
built with them. A memory-intensive dataset is an implementation that
replicates the slice of examples when subsetting to reduce
calculations at the cost of increased memory.
*/
func NewMemoryIntensive(examples []*Example, classes feature.Classes) Dataset {
	return &memoryIntensiveSubsettingDataset{classes, examples, nil}
}

/*
NewCPUIntensive takes a slice of examples and returns a Dataset
built with them. A cpu-intensive dataset is an implementation that
instead of replicating the examples when subsetting, stores the
applying feature criteria to define the subset and keeps the same
example slice. This can achieve a drastic reduction in memory use
that comes at the cost of CPU time: every calculation that goes over
the examples of the dataset will apply the feature criteria of the dataset
on all original examples (the ones provided to this method).
*/
func NewCPUIntensive(examples []*Example, classes feature.Classes) Dataset {
	return &cpuIntensiveSubsettingDataset{classes, nil, examples, nil}
}

func (s *memoryIntensiveSubsettingDataset) Count() (int, error) {
	return len(s.examples), nil
}

func (s *cpuIntensiveSubsettingDataset) Count() (int, error) {
	if s.count != nil {
		return *s.count, nil
	}
	var length int
	err := s.iterateOnDataset(func(_ *Example) (bool, error) {
		length++
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	s.count = &length
	return length, nil
}

func (s *memoryIntensiveSubsettingDataset) Examples() ([]*Example, error) {
	return s.examples, nil
}

func (s *cpuIntensiveSubsettingDataset) Examples() ([]*Example, error) {
	var examples []*Example
	err := s.iterateOnDataset(func(e *Example) (bool, error) {
		examples = append(examples, e)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return examples, nil
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(fc feature.Criterion) (Dataset, error) {
	examples := []*Example{}
	for _, e := range s.examples {
		ok, err := fc.SatisfiedBy(e)
		if err != nil {
			return nil, err
		}
		if ok {
			examples = append(examples, e)
		}
	}
	return &memoryIntensiveSubsettingDataset{s.classes, examples, append([]feature.Criterion{fc}, s.criteria...)}, nil
}

func (s *cpuIntensiveSubsettingDataset) SubsetWith(fc feature.Criterion) (Dataset, error) {
	criteria := append([]feature.Criterion{fc}, s.criteria...)
	return &cpuIntensiveSubsettingDataset{s.classes, nil, s.examples, criteria}, nil
}

func (s *memoryIntensiveSubsettingDataset) CountClassifications() (map[string]int, error) {
	result := make(map[string]int)
	for _, e := range s.examples {
		result[e.Classification()]++
	}
	return result, nil
}

func (s *cpuIntensiveSubsettingDataset) CountClassifications() (map[string]int, error) {
	result := make(map[string]int)
	err := s.iterateOnDataset(func(e *Example) (bool, error) {
		result[e.Classification()]++
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *memoryIntensiveSubsettingDataset) Classes() feature.Classes {
	return s.classes
}

func (s *cpuIntensiveSubsettingDataset) Classes() feature.Classes {
	return s.classes
}

func (s *memoryIntensiveSubsettingDataset) Criteria() []feature.Criterion {
	return s.criteria
}

func (s *cpuIntensiveSubsettingDataset) Criteria() []feature.Criterion {
	return s.criteria
}

func (s *memoryIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("[ %v ]", len(s.examples))
}

func (s *cpuIntensiveSubsettingDataset) String() string {
	count, _ := s.Count()
	return fmt.Sprintf("[ %v ]", count)
}

func (s *cpuIntensiveSubsettingDataset) iterateOnDataset(lambda func(*Example) (bool, error)) error {
	for _, e := range s.examples {
		skip := false
		for _, criterion := range s.criteria {
			ok, err := criterion.SatisfiedBy(e)
			if err != nil {
				return err
			}
			if !ok {
				skip = true
				break
			}
		}
		if !skip {
			ok, err := lambda(e)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}
	}
	return nil
}
