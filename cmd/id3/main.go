package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	v *viper.Viper
}

// exitError carries the exit code the process must end with.
type exitError struct {
	code int
	err  error
}

func (ee *exitError) Error() string {
	return ee.err.Error()
}

func (ee *exitError) Unwrap() error {
	return ee.err
}

func exit(code int, err error) error {
	return &exitError{code, err}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cliParser().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{v: viper.New()}
	rootCmd := &cobra.Command{
		Use:           "id3",
		Short:         "id3 is a tool to grow binary decision trees",
		Long:          `A tool to grow binary decision trees with the ID3 algorithm from your data, test them, and use them to classify samples`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.init(cmd)
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug information on STDERR")
	rootCmd.PersistentFlags().String("config", "", "path to a config file (YAML, JSON or TOML) with default values for flags")
	rootCmd.AddCommand(
		versionCmd(),
		runCmd(),
		growCmd(config),
		testCmd(config),
		showCmd(config),
		predictCmd(config),
		splitCmd(config),
		exportCmd(config),
	)
	return rootCmd
}

// init binds the flags of the command being run, reads the config file
// and sets up the global logger. Flags take precedence over environment
// variables prefixed with ID3_, which take precedence over the config file.
func (rcc *rootCmdConfig) init(cmd *cobra.Command) error {
	v := rcc.v
	v.SetEnvPrefix("ID3")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return exit(1, err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return exit(1, fmt.Errorf("reading config file %s: %v", path, err))
		}
	}
	level := zerolog.InfoLevel
	if v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}
