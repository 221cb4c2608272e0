// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, the configuration flags and the entry
// point for execution.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/toeirei/paymaster/buildvars"
	"github.com/toeirei/paymaster/internal/config"
	"github.com/toeirei/paymaster/internal/i18n"
	"github.com/toeirei/paymaster/internal/logging"
	"github.com/toeirei/paymaster/ui/tui"
)

// errActionFailed is returned when a command ended with an error
// notification. The notification itself has already been printed.
var errActionFailed = errors.New("action failed")

// options is the state shared by the commands of one root command.
type options struct {
	cfgFile string
	verbose bool
	cfg     config.Config
	// isTerminal reports whether the root command may start the TUI.
	isTerminal func() bool
	runTUI     func(ctx context.Context, cfg config.Config) error
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates and configures a new root cobra command. Each call
// returns an independent command tree, which keeps tests isolated.
func NewRootCmd() *cobra.Command {
	o := &options{
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		runTUI:     tui.Run,
	}
	return newRootCmd(o)
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paymaster",
		Short: "Paymaster manages the payment methods of a payments API.",
		Long: `Paymaster is a console for the payment methods API. It searches,
retrieves, creates, edits and deletes payment methods and marks a method as
the default of its owner.

Running without a subcommand on a terminal launches the interactive TUI.`,
		Version:       buildvars.VersionOrDefault("dev"),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setupDefaultServices(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.isTerminal() {
				return cmd.Help()
			}
			return o.runTUI(cmd.Context(), o.cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "config file")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	flags.String("base-url", "", "Base URL of the payment methods API")
	flags.Duration("timeout", 0, "Timeout of a single API request")
	flags.Duration("notification-delay", 0, "How long TUI notifications stay visible")
	flags.String("language", "", `Interface language ("en", "de")`)
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write logs to this file while the TUI runs")
	flags.Bool("audit", false, "Record every API call in the action journal")
	flags.String("db-type", "", "Journal database type (sqlite, postgres, mysql)")
	flags.String("db-dsn", "", "Journal database connection string (DSN)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Launch the interactive console",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.runTUI(cmd.Context(), o.cfg)
			},
		},
		newSearchCmd(o),
		newGetCmd(o),
		newCreateCmd(o),
		newEditCmd(o),
		newDeleteCmd(o),
		newSetDefaultCmd(o),
		newHistoryCmd(o),
		newConfigCmd(o),
	)
	return cmd
}

// setupDefaultServices loads .env, then the layered configuration.
func (o *options) setupDefaultServices(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warnf("could not read .env: %v", err)
	}

	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}
	o.cfg, err = config.LoadConfig[config.Config](cmd, config.Defaults(), configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if o.verbose {
		o.cfg.Log.Level = "debug"
	}
	if err := logging.SetLevel(o.cfg.Log.Level); err != nil {
		return err
	}
	i18n.Init(o.cfg.Language)
	logging.Debugf("config: api %s, language %s", o.cfg.API.BaseURL, o.cfg.Language)
	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}
