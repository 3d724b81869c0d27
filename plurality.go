package id3

import (
	"github.com/go2starr/cs540-d-tree/dataset"
)

/*
Plurality takes a dataset and returns the classification most of its
examples have. On a tie the label declared first in the dataset's classes
wins. An empty dataset has no plurality: ErrEmptyDataset is returned.
*/
func Plurality(d dataset.Dataset) (string, error) {
	count, err := d.Count()
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrEmptyDataset
	}
	counts, err := d.CountClassifications()
	if err != nil {
		return "", err
	}
	var result string
	most := -1
	for _, label := range d.Classes().Labels() {
		if counts[label] > most {
			result = label
			most = counts[label]
		}
	}
	return result, nil
}
