package id3

import (
	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/feature"
	"gonum.org/v1/gonum/stat"
)

/*
Partition represents a partition of a dataset according to a binary
feature: one subset per value of the feature, in declared value order,
along with the entropy expected to remain after splitting on it.
*/
type Partition struct {
	Feature *feature.Feature
	Subsets []dataset.Dataset
	entropy float64
}

/*
NewPartition takes a dataset, a feature and a reference classification
label and returns the partition of the dataset for the feature.

The expected remaining entropy is the sum over the values of the feature
of count/total * H(p/count), where count is the number of examples taking
the value, p the number of those classified with the reference label and
H the boolean entropy. Values no example takes add nothing.
*/
func NewPartition(d dataset.Dataset, f *feature.Feature, reference string) (*Partition, error) {
	total, err := d.Count()
	if err != nil {
		return nil, err
	}
	values := f.Values()
	result := &Partition{Feature: f, Subsets: make([]dataset.Dataset, 0, len(values))}
	for _, v := range values {
		subset, err := d.SubsetWith(feature.NewCriterion(f, v))
		if err != nil {
			return nil, err
		}
		result.Subsets = append(result.Subsets, subset)
		count, err := subset.Count()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}
		counts, err := subset.CountClassifications()
		if err != nil {
			return nil, err
		}
		q := float64(counts[reference]) / float64(count)
		result.entropy += float64(count) / float64(total) * BooleanEntropy(q)
	}
	return result, nil
}

// Entropy returns the entropy expected to remain after the partition.
func (p *Partition) Entropy() float64 {
	return p.entropy
}

/*
BooleanEntropy returns the entropy in nats of a boolean variable that is
true with probability q. It is 0 for q 0 and 1.
*/
func BooleanEntropy(q float64) float64 {
	return stat.Entropy([]float64{q, 1 - q})
}

/*
selectPartition partitions the dataset with every feature and returns
the partition with the strictly lowest expected remaining entropy along
with the index of its feature. Ties keep the earliest feature.
*/
func selectPartition(d dataset.Dataset, features []*feature.Feature, reference string) (*Partition, int, error) {
	var selected *Partition
	var index int
	for i, f := range features {
		p, err := NewPartition(d, f, reference)
		if err != nil {
			return nil, 0, err
		}
		if selected == nil || p.entropy < selected.entropy {
			selected = p
			index = i
		}
	}
	return selected, index, nil
}
