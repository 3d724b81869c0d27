package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/go2starr/cs540-d-tree/dataset"
	"github.com/go2starr/cs540-d-tree/dataset/csv"
	"github.com/go2starr/cs540-d-tree/dataset/tokenized"
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*rootCmdConfig
	dataFlags
	setOutput        string
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set of examples into two sets",
		Long: `Split a set of examples into an output set and a split set, typically a training and a test set.
Every example is assigned to the split set with the given probability. Both sets are written in the
format of the input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.load()
			err := config.Validate()
			if err != nil {
				return exit(1, err)
			}
			features, classes, examples, err := config.examples(cmd.InOrStdin(), feature.NewRegistry())
			if err != nil {
				return exit(2, err)
			}
			if config.seed == 0 {
				config.seed = time.Now().UnixNano()
			}
			log.Debug().Int64("seed", config.seed).Msg("splitting examples")
			randomizer := rand.New(rand.NewSource(config.seed))
			var kept, split []*dataset.Example
			for _, e := range examples {
				if (100 * randomizer.Float32()) > float32(config.splitProbability) {
					kept = append(kept, e)
				} else {
					split = append(split, e)
				}
			}
			err = config.writeExamples(config.setOutput, cmd.OutOrStdout(), features, classes, kept)
			if err != nil {
				return exit(3, fmt.Errorf("writing output set: %v", err))
			}
			err = config.writeExamples(config.splitOutput, cmd.OutOrStdout(), features, classes, split)
			if err != nil {
				return exit(4, fmt.Errorf("writing split set: %v", err))
			}
			log.Info().
				Int("examples", len(examples)).
				Int("output", len(kept)).
				Int("split", len(split)).
				Msg("set split")
			return nil
		},
	}
	config.register(cmd, "path to a file with the examples to split (defaults to STDIN)")
	cmd.Flags().StringP("output", "o", "", "path to a file to dump the output set (defaults to STDOUT)")
	cmd.Flags().StringP("split-output", "s", "", "path to a file to dump the split set (required)")
	cmd.Flags().IntP("split-probability", "p", 20, "probability as percent integer that an example of the set will be assigned to the split set")
	cmd.Flags().Int64("seed", 0, "seed for the random assignment of examples (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) load() {
	scc.dataFlags.load(scc.v)
	scc.setOutput = scc.v.GetString("output")
	scc.splitOutput = scc.v.GetString("split-output")
	scc.splitProbability = scc.v.GetInt("split-probability")
	scc.seed = scc.v.GetInt64("seed")
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return scc.dataFlags.Validate()
}

func (scc *splitCmdConfig) writeExamples(path string, stdout io.Writer, features []*feature.Feature, classes feature.Classes, examples []*dataset.Example) error {
	w, closer, err := openOutput(path, stdout)
	if err != nil {
		return err
	}
	if scc.resolvedFormat() == formatCSV {
		err = writeCSV(w, features, scc.classColumn, examples)
	} else {
		err = tokenized.Encode(w, &tokenized.Document{Classes: classes, Features: features, Examples: examples})
	}
	if cerr := closer(); err == nil {
		err = cerr
	}
	return err
}

func writeCSV(w io.Writer, features []*feature.Feature, classColumn string, examples []*dataset.Example) error {
	cw, err := csv.NewWriter(w, features, classColumn)
	if err != nil {
		return err
	}
	if _, err = cw.Write(examples); err != nil {
		return err
	}
	return cw.Flush()
}
