/*
Package yaml provides methods to parse feature.Feature and feature.Classes
specifications, also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io"
	"os"

	"github.com/go2starr/cs540-d-tree/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata holds the features and the classes described by a metadata
document. Features keep the order in which they were declared.
*/
type Metadata struct {
	Features []*feature.Feature
	Classes  feature.Classes
}

/*
ReadMetadata takes a slice of bytes with a metadata specification in YML and
a feature.Registry, and returns the metadata parsed from it or an error.
The YML is expected to be an object with a classes property holding a list
of exactly two labels and a features property. The value for features
should be an object with a property for each feature with its name and a
list of exactly two values. Features are interned in the given registry in
the order they are declared.
*/
func ReadMetadata(md []byte, reg *feature.Registry) (*Metadata, error) {
	doc := struct {
		Classes  []string
		Features yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	// MapSlice keeps the declaration order but resolves scalars such as
	// yes/no to booleans, so values are read again as plain strings.
	values := struct {
		Features map[string][]string
	}{}
	err = yaml.Unmarshal(md, &values)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(doc.Classes) != 2 {
		return nil, fmt.Errorf("metadata must declare exactly 2 classes, got %d", len(doc.Classes))
	}
	if len(doc.Features) == 0 {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	result := &Metadata{Classes: feature.NewClasses(doc.Classes[0], doc.Classes[1])}
	for _, item := range doc.Features {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("invalid feature name %v of type %T", item.Key, item.Key)
		}
		vs, ok := values.Features[name]
		if !ok {
			return nil, fmt.Errorf("invalid declaration for feature %s of type %T", name, item.Value)
		}
		if len(vs) != 2 {
			return nil, fmt.Errorf("feature %s must declare exactly 2 values, got %d", name, len(vs))
		}
		f, err := reg.Intern(name, vs[0], vs[1])
		if err != nil {
			return nil, err
		}
		result.Features = append(result.Features, f)
	}
	return result, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string, reg *feature.Registry) (*Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md, reg)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}

/*
WriteMetadata takes an io.Writer and metadata and writes the metadata onto
the writer as a YML document ReadMetadata can parse, keeping the order of
the features.
*/
func WriteMetadata(w io.Writer, md *Metadata) error {
	doc := struct {
		Classes  []string      `yaml:"classes"`
		Features yaml.MapSlice `yaml:"features"`
	}{Classes: md.Classes.Labels()}
	for _, f := range md.Features {
		doc.Features = append(doc.Features, yaml.MapItem{Key: f.Name(), Value: f.Values()})
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshalling yml metadata: %v", err)
	}
	_, err = w.Write(data)
	return err
}
