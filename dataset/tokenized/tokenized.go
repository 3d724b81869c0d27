/*
Package tokenized reads and writes datasets in a whitespace separated
token format.

A document holds, in this order:
  * the two classification labels
  * the number of features, followed by the name and the two values of
    each feature
  * the number of examples, followed by the label, the classification and
    one value per feature (in declared feature order) of each example

Tokens are lower-cased and a '/' starts a comment that runs until the end
of the line.
*/
package tokenized

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/feature"
)

// Error represents an error on the structure of a tokenized document
type Error string

const (
	// ErrUnexpectedEOF is returned when the document ends before all the
	// announced features or examples are read.
	ErrUnexpectedEOF = Error("unexpected end of input")
	// ErrExpectedInteger is returned when a count is not an integer.
	ErrExpectedInteger = Error("expected a non-negative integer")
	// ErrHeaderMismatch is returned when a document does not declare the
	// features and classes it is expected to.
	ErrHeaderMismatch = Error("header mismatch")
)

func (e Error) Error() string {
	return string(e)
}

/*
ParseError describes where a document could not be parsed: the line and
the offending token (empty at end of input) along with the cause.
*/
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (pe *ParseError) Error() string {
	if pe.Token == "" {
		return fmt.Sprintf("line %d: %v", pe.Line, pe.Err)
	}
	return fmt.Sprintf("line %d: token %q: %v", pe.Line, pe.Token, pe.Err)
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}

/*
Document is the content of a tokenized file: its classes, its features in
declared order and its examples in the order they appear.
*/
type Document struct {
	Classes  feature.Classes
	Features []*feature.Feature
	Examples []*dataset.Example
}

// Dataset returns a dataset.Dataset with the document's examples.
func (d *Document) Dataset() dataset.Dataset {
	return dataset.New(d.Examples, d.Classes)
}

type header struct {
	classes  feature.Classes
	features [][3]string
}

/*
Decode takes an io.Reader and a feature.Registry and parses a document
from the reader. Features declared by the document are interned in the
registry, so decoding several documents with the same registry yields
examples sharing feature identity. An error is returned if the document is
malformed or holds an invalid classification or feature value.
*/
func Decode(r io.Reader, reg *feature.Registry) (*Document, error) {
	t := newTokenizer(r)
	h, err := readHeader(t)
	if err != nil {
		return nil, err
	}
	doc := &Document{Classes: h.classes}
	for _, fd := range h.features {
		f, err := reg.Intern(fd[0], fd[1], fd[2])
		if err != nil {
			return nil, &ParseError{Line: t.line, Token: fd[0], Err: err}
		}
		doc.Features = append(doc.Features, f)
	}
	doc.Examples, err = readExamples(t, doc.Features, doc.Classes)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

/*
DecodeWith takes an io.Reader, a slice of features and classes and parses
a document whose examples use the given feature instances. This is how a
test document is read for a tree grown from another document: the header
of the document must declare features with the same names and values, in
the same order, and the same classes, otherwise an error wrapping
ErrHeaderMismatch is returned.
*/
func DecodeWith(r io.Reader, features []*feature.Feature, classes feature.Classes) (*Document, error) {
	t := newTokenizer(r)
	h, err := readHeader(t)
	if err != nil {
		return nil, err
	}
	if !h.classes.Equal(classes) {
		return nil, fmt.Errorf("%w: classes %v, expected %v", ErrHeaderMismatch, h.classes, classes)
	}
	if len(h.features) != len(features) {
		return nil, fmt.Errorf("%w: %d features declared, expected %d", ErrHeaderMismatch, len(h.features), len(features))
	}
	for i, fd := range h.features {
		f := features[i]
		if fd != [3]string{f.Name(), f.Values()[0], f.Values()[1]} {
			return nil, fmt.Errorf("%w: feature %d declared as %s %v, expected %s %v", ErrHeaderMismatch, i+1, fd[0], fd[1:], f.Name(), f.Values())
		}
	}
	examples, err := readExamples(t, features, classes)
	if err != nil {
		return nil, err
	}
	return &Document{Classes: classes, Features: features, Examples: examples}, nil
}

/*
DecodeFile takes a filepath string and a feature.Registry, opens the file
and uses Decode to parse it.
*/
func DecodeFile(filepath string, reg *feature.Registry) (*Document, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Decode(f, reg)
	if err != nil {
		err = fmt.Errorf("parsing %s: %w", filepath, err)
	}
	return doc, err
}

/*
DecodeFileWith takes a filepath string, a slice of features and classes,
opens the file and uses DecodeWith to parse it.
*/
func DecodeFileWith(filepath string, features []*feature.Feature, classes feature.Classes) (*Document, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := DecodeWith(f, features, classes)
	if err != nil {
		err = fmt.Errorf("parsing %s: %w", filepath, err)
	}
	return doc, err
}

/*
Encode writes the document onto the io.Writer in the format Decode reads.
*/
func Encode(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	labels := doc.Classes.Labels()
	fmt.Fprintf(bw, "%s %s\n", labels[0], labels[1])
	fmt.Fprintf(bw, "%d\n", len(doc.Features))
	for _, f := range doc.Features {
		vs := f.Values()
		fmt.Fprintf(bw, "%s %s %s\n", f.Name(), vs[0], vs[1])
	}
	fmt.Fprintf(bw, "%d\n", len(doc.Examples))
	for _, e := range doc.Examples {
		if err := e.Complete(); err != nil {
			return err
		}
		record := make([]string, 0, len(doc.Features)+2)
		record = append(record, e.Label(), e.Classification())
		for _, f := range doc.Features {
			record = append(record, e.FeatureValue(f))
		}
		fmt.Fprintln(bw, strings.Join(record, " "))
	}
	return bw.Flush()
}

func readHeader(t *tokenizer) (*header, error) {
	first, err := t.word()
	if err != nil {
		return nil, err
	}
	second, err := t.word()
	if err != nil {
		return nil, err
	}
	h := &header{classes: feature.NewClasses(first, second)}
	n, err := t.integer()
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var fd [3]string
		for j := range fd {
			fd[j], err = t.word()
			if err != nil {
				return nil, err
			}
		}
		h.features = append(h.features, fd)
	}
	return h, nil
}

func readExamples(t *tokenizer, features []*feature.Feature, classes feature.Classes) ([]*dataset.Example, error) {
	n, err := t.integer()
	if err != nil {
		return nil, err
	}
	examples := make([]*dataset.Example, 0, n)
	for i := 0; i < n; i++ {
		label, err := t.word()
		if err != nil {
			return nil, err
		}
		e := dataset.NewExample(label, features, classes)
		class, err := t.word()
		if err != nil {
			return nil, err
		}
		if err = e.SetClassification(class); err != nil {
			return nil, &ParseError{Line: t.line, Token: class, Err: err}
		}
		for j := range features {
			value, err := t.word()
			if err != nil {
				return nil, err
			}
			if err = e.SetFeatureValueAt(j, value); err != nil {
				return nil, &ParseError{Line: t.line, Token: value, Err: err}
			}
		}
		examples = append(examples, e)
	}
	return examples, nil
}

type tokenizer struct {
	scanner *bufio.Scanner
	line    int
	pending []string
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{scanner: bufio.NewScanner(r)}
}

func (t *tokenizer) word() (string, error) {
	for len(t.pending) == 0 {
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return "", &ParseError{Line: t.line, Err: err}
			}
			return "", &ParseError{Line: t.line, Err: ErrUnexpectedEOF}
		}
		t.line++
		line := t.scanner.Text()
		if i := strings.IndexByte(line, '/'); i >= 0 {
			line = line[:i]
		}
		t.pending = strings.Fields(strings.ToLower(line))
	}
	token := t.pending[0]
	t.pending = t.pending[1:]
	return token, nil
}

func (t *tokenizer) integer() (int, error) {
	token, err := t.word()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, &ParseError{Line: t.line, Token: token, Err: ErrExpectedInteger}
	}
	return n, nil
}
