package main

import (
	"fmt"
	"io"

	"github.com/go2starr/cs540-d-tree/dataset/inputsample"
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeFlags
	undefinedValue string
}

type writerFeatureValueRequester struct {
	w              io.Writer
	undefinedValue string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify a sample answering questions",
		Long:  `Use a tree to classify a sample answering only the questions about the features the tree needs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.load(config.v)
			config.undefinedValue = config.v.GetString("undefined-value")
			err := config.Validate()
			if err != nil {
				return exit(1, err)
			}
			ctx := cmd.Context()
			t, err := config.tree(ctx, feature.NewRegistry())
			if err != nil {
				return exit(2, err)
			}
			out := cmd.OutOrStdout()
			requester := &writerFeatureValueRequester{out, config.undefinedValue}
			sample := inputsample.New(cmd.InOrStdin(), t.Features, requester, config.undefinedValue)
			label, err := t.Classify(ctx, sample)
			if err != nil {
				return exit(3, err)
			}
			fmt.Fprintf(out, "The sample is classified as %s\n", label)
			return nil
		},
	}
	config.register(cmd)
	cmd.Flags().StringP("undefined-value", "u", "?", "value to input to define a sample's value for a feature as undefined")
	return cmd
}

func (wfvr *writerFeatureValueRequester) RequestValueFor(f *feature.Feature) error {
	_, err := fmt.Fprintf(wfvr.w, "Please provide the sample's %s:\n(valid values are %v or %s if undefined)\n", f.Name(), f.Values(), wfvr.undefinedValue)
	return err
}

func (wfvr *writerFeatureValueRequester) RejectValueFor(f *feature.Feature, value string) error {
	_, err := fmt.Fprintf(wfvr.w, "%s is not a valid value for the sample's %s. Please provide one of %v or %s if undefined.\n", value, f.Name(), f.Values(), wfvr.undefinedValue)
	return err
}
