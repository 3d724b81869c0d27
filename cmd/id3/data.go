package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/dataset/csv"
	"github.com/go2starr/cs540-d-tree/dataset/tokenized"
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/feature/yaml"
	"github.com/go2starr/cs540-d-tree/tree"
	tjson "github.com/go2starr/cs540-d-tree/tree/json"
	"github.com/go2starr/cs540-d-tree/tree/redisstore"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/redis.v5"
)

const (
	formatTokenized = "tokenized"
	formatCSV       = "csv"
)

/*
dataFlags are the flags describing where and how a set of examples is
read from.
*/
type dataFlags struct {
	input              string
	format             string
	metadataInput      string
	classColumn        string
	cpuIntensiveSet    bool
	memoryIntensiveSet bool
}

func (df *dataFlags) register(cmd *cobra.Command, inputUsage string) {
	cmd.Flags().StringP("input", "i", "", inputUsage)
	cmd.Flags().StringP("format", "f", "", "format of the input: tokenized or csv (defaults to csv for .csv files, tokenized otherwise)")
	cmd.Flags().StringP("metadata", "m", "", "path to a YML file with the classes and features of a CSV input")
	cmd.Flags().StringP("class-column", "c", "class", "name of the column holding the classification of a CSV input")
}

func (df *dataFlags) registerSubsetting(cmd *cobra.Command) {
	cmd.Flags().Bool("memory-intensive", false, "force the use of memory-intensive subsetting to decrease time at the cost of increasing memory use")
	cmd.Flags().Bool("cpu-intensive", false, "force the use of cpu-intensive subsetting to decrease memory use at the cost of increasing time")
}

func (df *dataFlags) load(v *viper.Viper) {
	df.input = v.GetString("input")
	df.format = v.GetString("format")
	df.metadataInput = v.GetString("metadata")
	df.classColumn = v.GetString("class-column")
	df.cpuIntensiveSet = v.GetBool("cpu-intensive")
	df.memoryIntensiveSet = v.GetBool("memory-intensive")
}

// Validate checks the flags needed to read examples without a tree.
func (df *dataFlags) Validate() error {
	if err := df.validateFormat(); err != nil {
		return err
	}
	if df.resolvedFormat() == formatCSV && df.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set for a CSV input")
	}
	return nil
}

func (df *dataFlags) validateFormat() error {
	switch df.format {
	case "", formatTokenized, formatCSV:
	default:
		return fmt.Errorf("unknown format %q, expected %s or %s", df.format, formatTokenized, formatCSV)
	}
	if df.cpuIntensiveSet && df.memoryIntensiveSet {
		return fmt.Errorf("cannot set both memory-intensive and cpu-intensive flags at the same time")
	}
	return nil
}

func (df *dataFlags) resolvedFormat() string {
	if df.format != "" {
		return df.format
	}
	if strings.EqualFold(filepath.Ext(df.input), ".csv") {
		return formatCSV
	}
	return formatTokenized
}

/*
examples reads the examples of the input along with the features and
classes describing them. For a tokenized input these come from the
document header; for a CSV input, from the metadata file. Features are
interned in the registry.
*/
func (df *dataFlags) examples(stdin io.Reader, reg *feature.Registry) ([]*feature.Feature, feature.Classes, []*dataset.Example, error) {
	r, closer, err := openInput(df.input, stdin)
	if err != nil {
		return nil, feature.Classes{}, nil, err
	}
	defer closer()
	if df.resolvedFormat() == formatCSV {
		log.Debug().Str("path", df.metadataInput).Msg("reading metadata")
		md, err := yaml.ReadMetadataFromFile(df.metadataInput, reg)
		if err != nil {
			return nil, feature.Classes{}, nil, err
		}
		examples, err := readCSVExamples(r, md.Features, md.Classes, df.classColumn)
		if err != nil {
			return nil, feature.Classes{}, nil, err
		}
		return md.Features, md.Classes, examples, nil
	}
	doc, err := tokenized.Decode(r, reg)
	if err != nil {
		return nil, feature.Classes{}, nil, fmt.Errorf("parsing %s: %w", inputName(df.input), err)
	}
	return doc.Features, doc.Classes, doc.Examples, nil
}

/*
examplesWith reads the examples of the input for the given features and
classes, typically the ones of a tree.
*/
func (df *dataFlags) examplesWith(stdin io.Reader, features []*feature.Feature, classes feature.Classes) ([]*dataset.Example, error) {
	r, closer, err := openInput(df.input, stdin)
	if err != nil {
		return nil, err
	}
	defer closer()
	if df.resolvedFormat() == formatCSV {
		return readCSVExamples(r, features, classes, df.classColumn)
	}
	doc, err := tokenized.DecodeWith(r, features, classes)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", inputName(df.input), err)
	}
	return doc.Examples, nil
}

func (df *dataFlags) dataset(examples []*dataset.Example, classes feature.Classes) dataset.Dataset {
	if df.memoryIntensiveSet {
		return dataset.NewMemoryIntensive(examples, classes)
	}
	if df.cpuIntensiveSet {
		return dataset.NewCPUIntensive(examples, classes)
	}
	return dataset.New(examples, classes)
}

func readCSVExamples(r io.Reader, features []*feature.Feature, classes feature.Classes, classColumn string) ([]*dataset.Example, error) {
	var examples []*dataset.Example
	err := csv.ReadDatasetByExample(r, features, classes, classColumn, func(_ int, e *dataset.Example) (bool, error) {
		examples = append(examples, e)
		return true, nil
	})
	return examples, err
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" {
		log.Debug().Msg("reading from STDIN")
		return stdin, func() {}, nil
	}
	log.Debug().Str("path", path).Msg("opening input")
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %v", path, err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func inputName(path string) string {
	if path == "" {
		return "STDIN"
	}
	return path
}

/*
treeFlags are the flags describing where a tree is read from: a JSON file
or a redis DB.
*/
type treeFlags struct {
	treeInput string
	redisURL  string
	treeID    string
}

func (tf *treeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringP("tree", "t", "", "path to a file from which the tree will be read and parsed as JSON")
	cmd.Flags().String("redis-url", "", "URL of a redis DB holding the tree, as in redis://localhost:6379/0")
	cmd.Flags().String("tree-id", "", "ID of the tree in the redis DB")
}

func (tf *treeFlags) load(v *viper.Viper) {
	tf.treeInput = v.GetString("tree")
	tf.redisURL = v.GetString("redis-url")
	tf.treeID = v.GetString("tree-id")
}

func (tf *treeFlags) Validate() error {
	if tf.treeInput != "" && tf.redisURL != "" {
		return fmt.Errorf("cannot set both tree and redis-url flags at the same time")
	}
	if tf.redisURL != "" {
		if tf.treeID == "" {
			return fmt.Errorf("required tree-id flag was not set to read a tree from redis")
		}
		return nil
	}
	if tf.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func (tf *treeFlags) tree(ctx context.Context, reg *feature.Registry) (*tree.Tree, error) {
	if tf.redisURL != "" {
		rc, err := newRedisClient(tf.redisURL)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("tree", tf.treeID).Msg("loading tree from redis")
		return redisstore.LoadTree(rc, redisPrefix(tf.treeID), reg)
	}
	return loadTree(ctx, tf.treeInput, reg)
}

func loadTree(ctx context.Context, path string, reg *feature.Registry) (*tree.Tree, error) {
	log.Debug().Str("path", path).Msg("loading tree")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", path, err)
	}
	defer f.Close()
	t := &tree.Tree{NodeStore: tree.NewMemoryNodeStore()}
	err = tjson.ReadJSONTree(ctx, t, reg, f)
	if err != nil {
		err = fmt.Errorf("parsing tree in JSON from %s: %v", path, err)
	}
	return t, err
}

func newRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %v", err)
	}
	rc := redis.NewClient(opts)
	if err = rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis: %v", err)
	}
	return rc, nil
}

func redisPrefix(treeID string) string {
	return "id3:" + treeID
}
