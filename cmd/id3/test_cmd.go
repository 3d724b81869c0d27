package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/tree"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	dataFlags
	treeFlags
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long: `Test the performance of a tree against a set of examples.
The accuracy, the labels of the misclassified examples and a confusion matrix are printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.load()
			err := config.Validate()
			if err != nil {
				return exit(1, err)
			}
			ctx := cmd.Context()
			t, err := config.tree(ctx, feature.NewRegistry())
			if err != nil {
				return exit(2, err)
			}
			examples, err := config.examplesWith(cmd.InOrStdin(), t.Features, t.Classes)
			if err != nil {
				return exit(3, err)
			}
			log.Info().Int("examples", len(examples)).Msg("testing tree")
			ev, err := t.Test(ctx, config.dataset(examples, t.Classes))
			if err != nil {
				return exit(4, fmt.Errorf("testing the tree: %w", err))
			}
			writeEvaluation(cmd.OutOrStdout(), ev, t.Classes)
			return nil
		},
	}
	config.dataFlags.register(cmd, "path to a file with the examples to test the tree against (defaults to STDIN)")
	config.registerSubsetting(cmd)
	config.treeFlags.register(cmd)
	return cmd
}

func (tcc *testCmdConfig) load() {
	tcc.dataFlags.load(tcc.v)
	tcc.treeFlags.load(tcc.v)
}

func (tcc *testCmdConfig) Validate() error {
	if err := tcc.treeFlags.Validate(); err != nil {
		return err
	}
	return tcc.validateFormat()
}

func writeEvaluation(w io.Writer, ev *tree.Evaluation, classes feature.Classes) {
	fmt.Fprintf(w, "accuracy: %s\n", ev.String())
	if len(ev.Mismatched) > 0 {
		fmt.Fprintln(w, "misclassified:")
		for _, label := range ev.Mismatched {
			fmt.Fprintf(w, "  %s\n", label)
		}
	}
	table := tablewriter.NewWriter(w)
	header := []string{"actual \\ predicted"}
	header = append(header, classes.Labels()...)
	table.SetHeader(header)
	for _, actual := range classes.Labels() {
		row := []string{actual}
		for _, predicted := range classes.Labels() {
			row = append(row, strconv.Itoa(ev.Confusion[actual][predicted]))
		}
		table.Append(row)
	}
	table.Render()
}
