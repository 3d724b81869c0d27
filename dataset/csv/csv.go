/*
Package csv reads and writes examples as CSV.

The header row names the columns: a "label" column with the tag of each
example, a class column (its name is configurable) with the classification
and one column per feature, in any order. Every feature known to the reader
must have a column.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/feature"
)

// LabelColumn is the name of the column holding example labels
const LabelColumn = "label"

/*
Writer is an interface for a sink to which examples
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given examples
	// and will return the actually written number of
	// examples and an error (if not all examples
	// could be written)
	Write([]*dataset.Example) (int, error)
	// Count returns the total number of examples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count    int
	features []*feature.Feature
	w        *csv.Writer
}

type columns struct {
	label    int
	class    int
	features []*feature.Feature
}

/*
ReadDataset takes an io.Reader for a CSV stream, a slice of features, the
classes and the name of the class column, and returns a dataset.Dataset
with the examples parsed from the reader or an error.
*/
func ReadDataset(reader io.Reader, features []*feature.Feature, classes feature.Classes, classColumn string) (dataset.Dataset, error) {
	examples := []*dataset.Example{}
	err := ReadDatasetByExample(reader, features, classes, classColumn, func(_ int, e *dataset.Example) (bool, error) {
		examples = append(examples, e)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(examples, classes), nil
}

/*
ReadDatasetByExample takes an io.Reader for a CSV stream, a slice of features,
the classes, the name of the class column and a lambda function on an integer
and an example that returns a boolean value.
It parses the examples from the reader and for each it calls the lambda function
with the example and its index as parameters. If the lambda function returns true,
it will continue processing the next example, otherwise it will stop. An error is
returned if something goes wrong when reading the file or parsing an example.
*/
func ReadDatasetByExample(reader io.Reader, features []*feature.Feature, classes feature.Classes, classColumn string, lambda func(int, *dataset.Example) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	cols, err := parseColumnsFromCSVHeader(header, features, classColumn)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		e, err := parseExampleFromCSVRow(row, cols, features, classes)
		if err != nil {
			return fmt.Errorf("parsing line %d: %w", l, err)
		}
		ok, err := lambda(l-2, e)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string and the rest of parameters of
ReadDataset, opens the file to which the filepath points to (os.Stdin if it is
empty) and uses ReadDataset to return a dataset.Dataset or an error read from it.
*/
func ReadDatasetFromFilePath(filepath string, features []*feature.Feature, classes feature.Classes, classColumn string) (dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	d, err := ReadDataset(f, features, classes, classColumn)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return d, err
}

/*
NewWriter takes an io.Writer, a slice of features and the name of the
class column and returns a Writer that will write any examples on the
io.Writer, after writing the header row.
*/
func NewWriter(writer io.Writer, features []*feature.Feature, classColumn string) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(features)+2)
	record = append(record, LabelColumn, classColumn)
	for _, f := range features {
		record = append(record, f.Name())
	}
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{features: features, w: w}, nil
}

/*
WriteDataset takes a writer, a dataset, a slice of features and the
name of the class column and dumps the dataset to the writer in CSV format.
*/
func WriteDataset(writer io.Writer, d dataset.Dataset, features []*feature.Feature, classColumn string) error {
	cw, err := NewWriter(writer, features, classColumn)
	if err != nil {
		return err
	}
	examples, err := d.Examples()
	if err != nil {
		return err
	}
	_, err = cw.Write(examples)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func parseColumnsFromCSVHeader(header []string, features []*feature.Feature, classColumn string) (*columns, error) {
	cols := &columns{label: -1, class: -1, features: make([]*feature.Feature, len(header))}
	byName := make(map[string]*feature.Feature, len(features))
	for _, f := range features {
		byName[f.Name()] = f
	}
	found := 0
	for i, name := range header {
		switch {
		case name == LabelColumn:
			cols.label = i
		case name == classColumn:
			cols.class = i
		case byName[name] != nil:
			cols.features[i] = byName[name]
			found++
		default:
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
	}
	if cols.class < 0 {
		return nil, fmt.Errorf("parsing header: missing class column %s", classColumn)
	}
	if found != len(features) {
		return nil, fmt.Errorf("parsing header: %d of %d features have a column", found, len(features))
	}
	return cols, nil
}

func parseExampleFromCSVRow(row []string, cols *columns, features []*feature.Feature, classes feature.Classes) (*dataset.Example, error) {
	var label string
	if cols.label >= 0 {
		label = row[cols.label]
	}
	e := dataset.NewExample(label, features, classes)
	if err := e.SetClassification(row[cols.class]); err != nil {
		return nil, err
	}
	for i, f := range cols.features {
		if f == nil {
			continue
		}
		if err := e.SetFeatureValue(f, row[i]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(examples []*dataset.Example) (int, error) {
	for n, e := range examples {
		if err := cw.writeExample(e); err != nil {
			return n, err
		}
	}
	return len(examples), nil
}

func (cw *csvWriter) writeExample(e *dataset.Example) error {
	record := make([]string, 0, len(cw.features)+2)
	record = append(record, e.Label(), e.Classification())
	for _, f := range cw.features {
		v, err := e.ValueFor(f)
		if err != nil {
			return err
		}
		record = append(record, v)
	}
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for example %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
