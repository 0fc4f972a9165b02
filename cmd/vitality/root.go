package main

import (
	"context"
	"io"
	"log"

	"github.com/spf13/cobra"

	"alcyxob/vitality-planner/internal/bootstrap"
	"alcyxob/vitality-planner/internal/config"
)

// CLI holds state shared by every subcommand.
type CLI struct {
	configDir string
	verbose   bool
}

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	cli := &CLI{}

	rootCmd := &cobra.Command{
		Use:   "vitality",
		Short: "Personalised wellness plans with daily adherence tracking",
		Long: `vitality generates a wellness plan (macros, a 3-day diet, a weekly exercise
roadmap and habits) from your profile, then tracks which habits and workouts
you complete each day.

Configuration is read from config.yaml in --config and from environment
variables such as GEMINI_API_KEY and STORE_BACKEND.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !cli.verbose {
				log.SetOutput(io.Discard)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cli.configDir, "config", "c", ".", "directory containing config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "show diagnostic logs")

	rootCmd.AddCommand(
		cli.newGenerateCommand(),
		cli.newPlanCommand(),
		cli.newTrackCommand(),
		cli.newProgressCommand(),
		cli.newResetCommand(),
		cli.newTokenCommand(),
	)
	return rootCmd
}

func (cli *CLI) loadConfig() (config.Config, error) {
	return config.LoadConfig(cli.configDir)
}

// withSession opens the configured session for the duration of fn.
func (cli *CLI) withSession(ctx context.Context, fn func(cfg config.Config, session *bootstrap.Session) error) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	session, err := bootstrap.NewSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()
	return fn(cfg, session)
}
