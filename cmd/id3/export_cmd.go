package main

import (
	"fmt"

	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/feature/yaml"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type exportCmdConfig struct {
	*rootCmdConfig
	dataFlags
	output         string
	metadataOutput string
}

func exportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &exportCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a set of examples to CSV",
		Long: `Export a set of examples in the tokenized format to CSV, optionally writing
the YML metadata needed to read the CSV back.`,
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
			w, closer, err := openOutput(config.output, cmd.OutOrStdout())
			if err != nil {
				return exit(3, err)
			}
			err = writeCSV(w, features, config.classColumn, examples)
			if cerr := closer(); err == nil {
				err = cerr
			}
			if err != nil {
				return exit(3, fmt.Errorf("writing CSV: %v", err))
			}
			if config.metadataOutput != "" {
				err = config.writeMetadata(&yaml.Metadata{Features: features, Classes: classes})
				if err != nil {
					return exit(4, fmt.Errorf("writing metadata: %v", err))
				}
			}
			log.Info().Int("examples", len(examples)).Msg("set exported")
			return nil
		},
	}
	config.register(cmd, "path to a file with the examples to export (defaults to STDIN)")
	cmd.Flags().StringP("output", "o", "", "path to a file to write the CSV to (defaults to STDOUT)")
	cmd.Flags().String("metadata-output", "", "path to a file to write the YML metadata describing the CSV to")
	return cmd
}

func (ecc *exportCmdConfig) load() {
	ecc.dataFlags.load(ecc.v)
	ecc.output = ecc.v.GetString("output")
	ecc.metadataOutput = ecc.v.GetString("metadata-output")
}

func (ecc *exportCmdConfig) Validate() error {
	if ecc.resolvedFormat() != formatTokenized {
		return fmt.Errorf("only sets in the %s format can be exported", formatTokenized)
	}
	return ecc.dataFlags.Validate()
}

func (ecc *exportCmdConfig) writeMetadata(md *yaml.Metadata) error {
	w, closer, err := openOutput(ecc.metadataOutput, nil)
	if err != nil {
		return err
	}
	err = yaml.WriteMetadata(w, md)
	if cerr := closer(); err == nil {
		err = cerr
	}
	return err
}
