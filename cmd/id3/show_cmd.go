package main

import (
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type showCmdConfig struct {
	*rootCmdConfig
	treeFlags
}

func showCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &showCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a tree",
		Long:  `Print a tree as indented text, one line per split, branch and leaf.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.load(config.v)
			err := config.Validate()
			if err != nil {
				return exit(1, err)
			}
			ctx := cmd.Context()
			t, err := config.tree(ctx, feature.NewRegistry())
			if err != nil {
				return exit(2, err)
			}
			leaves, err := t.Leaves(ctx)
			if err != nil {
				return exit(3, err)
			}
			depth, err := t.Depth(ctx)
			if err != nil {
				return exit(3, err)
			}
			log.Debug().Str("tree", t.ID).Int("leaves", leaves).Int("depth", depth).Msg("printing tree")
			if err = t.Print(ctx, cmd.OutOrStdout()); err != nil {
				return exit(4, err)
			}
			return nil
		},
	}
	config.register(cmd)
	return cmd
}
