package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	payu "github.com/hugochinchilla79/payu_sdk"
)

var Version = "dev"

type options struct {
	envFiles []string
	debug    bool
	logger   zerolog.Logger
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "payu",
		Short:         "PayU Latam API client and eligibility policy tool",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if opts.debug {
				level = zerolog.DebugLevel
			}
			opts.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()
		},
	}
	rootCmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log every request")

	rootCmd.AddCommand(pingCmd(opts))
	rootCmd.AddCommand(methodsCmd(opts))
	rootCmd.AddCommand(orderCmd(opts))
	rootCmd.AddCommand(eligibilityCmd())
	rootCmd.AddCommand(cvvCmd())
	rootCmd.AddCommand(policyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds a client from the dotenv files and the environment.
func newClient(opts *options) (*payu.Client, error) {
	cfg, err := payu.LoadConfigFromDotEnv(opts.envFiles...)
	if err != nil {
		return nil, err
	}
	return payu.NewClient(cfg, payu.WithLogger(opts.logger))
}
