package main

import (
	"fmt"

	id3 "github.com/go2starr/cs540-d-tree"
	"github.com/go2starr/cs540-d-tree/feature"
	"github.com/go2starr/cs540-d-tree/tree"
	tjson "github.com/go2starr/cs540-d-tree/tree/json"
	"github.com/go2starr/cs540-d-tree/tree/redisstore"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/redis.v5"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataFlags
	output   string
	redisURL string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of examples",
		Long: `Grow a tree from a set of examples in the tokenized format or in CSV with a YML metadata file.
The tree is written in JSON, or stored in a redis DB when a redis URL is given, in which case
the ID of the stored tree is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.load()
			err := config.Validate()
			if err != nil {
				return exit(1, err)
			}
			ctx := cmd.Context()
			features, classes, examples, err := config.examples(cmd.InOrStdin(), feature.NewRegistry())
			if err != nil {
				return exit(2, err)
			}
			opts := []id3.Option{id3.WithLogger(log.Logger)}
			var treeID string
			var rc *redis.Client
			if config.redisURL != "" {
				rc, err = newRedisClient(config.redisURL)
				if err != nil {
					return exit(3, err)
				}
				defer rc.Close()
				treeID = uuid.New().String()
				ns := redisstore.New(rc, redisPrefix(treeID), tjson.NewNodeEncodeDecoder(features))
				opts = append(opts, id3.WithNodeStore(ns))
			}
			log.Info().
				Int("examples", len(examples)).
				Int("features", len(features)).
				Msg("growing tree")
			t, err := id3.New(features, classes, opts...).Grow(ctx, config.dataset(examples, classes))
			if err != nil {
				return exit(4, fmt.Errorf("growing the tree: %w", err))
			}
			if config.redisURL != "" {
				t.ID = treeID
				if err = redisstore.SaveHeader(rc, redisPrefix(treeID), t); err != nil {
					return exit(5, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), treeID)
				return nil
			}
			if err = config.writeTree(cmd, t); err != nil {
				return exit(5, err)
			}
			return nil
		},
	}
	config.register(cmd, "path to a file with the examples to grow the tree from (defaults to STDIN)")
	config.registerSubsetting(cmd)
	cmd.Flags().StringP("output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().String("redis-url", "", "URL of a redis DB in which to store the generated tree instead of writing it, as in redis://localhost:6379/0")
	return cmd
}

func (gcc *growCmdConfig) load() {
	gcc.dataFlags.load(gcc.v)
	gcc.output = gcc.v.GetString("output")
	gcc.redisURL = gcc.v.GetString("redis-url")
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.output != "" && gcc.redisURL != "" {
		return fmt.Errorf("cannot set both output and redis-url flags at the same time")
	}
	return gcc.dataFlags.Validate()
}

func (gcc *growCmdConfig) writeTree(cmd *cobra.Command, t *tree.Tree) error {
	w, closer, err := openOutput(gcc.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	err = tjson.WriteJSONTree(cmd.Context(), t, w)
	if cerr := closer(); err == nil {
		err = cerr
	}
	return err
}
