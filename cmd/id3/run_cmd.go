package main

import (
	"fmt"
	"strconv"

	id3 "github.com/go2starr/cs540-d-tree"
	"github.com/go2starr/cs540-d-tree/dataset/tokenized"
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <training-file> <test-file>",
		Short: "Grow a tree from a training file and test it against a test file",
		Long: `Grow a tree from a training file and test it against a test file, both in the tokenized format.
The labels of the test examples the tree misclassifies are printed one per line,
followed by the percentage of correctly classified test examples and the tree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg := feature.NewRegistry()
			log.Debug().Str("path", args[0]).Msg("reading training set")
			training, err := tokenized.DecodeFile(args[0], reg)
			if err != nil {
				return exit(2, err)
			}
			log.Debug().Str("path", args[1]).Msg("reading test set")
			test, err := tokenized.DecodeFileWith(args[1], training.Features, training.Classes)
			if err != nil {
				return exit(3, err)
			}
			log.Info().
				Int("examples", len(training.Examples)).
				Int("features", len(training.Features)).
				Msg("growing tree")
			t, err := id3.New(training.Features, training.Classes, id3.WithLogger(log.Logger)).Grow(ctx, training.Dataset())
			if err != nil {
				return exit(4, fmt.Errorf("growing the tree: %w", err))
			}
			ev, err := t.Test(ctx, test.Dataset())
			if err != nil {
				return exit(5, fmt.Errorf("testing the tree: %w", err))
			}
			log.Info().Str("accuracy", ev.String()).Msg("tree tested")
			out := cmd.OutOrStdout()
			for _, label := range ev.Mismatched {
				fmt.Fprintln(out, label)
			}
			fmt.Fprintln(out, strconv.FormatFloat(ev.Accuracy(), 'f', -1, 64))
			if err = t.Print(ctx, out); err != nil {
				return exit(6, err)
			}
			return nil
		},
	}
	return cmd
}
