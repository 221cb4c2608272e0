// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/toeirei/paymaster/internal/audit"
	"github.com/toeirei/paymaster/internal/config"
	"github.com/toeirei/paymaster/internal/i18n"
	"github.com/toeirei/paymaster/ui"
)

func newHistoryCmd(o *options) *cobra.Command {
	var (
		limit  int
		export string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the action journal",
		Long: `Lists the most recent entries of the action journal, newest first.
With --export the whole journal is written as zstd compressed JSON instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.cfg.Audit.Enabled {
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("history.disabled"))
				return ui.ErrJournalDisabled
			}
			journal, err := audit.Open(cmd.Context(), o.cfg.Database.Type, o.cfg.Database.Dsn)
			if err != nil {
				return fmt.Errorf("could not open action journal: %w", err)
			}
			defer func() { _ = journal.Close() }()

			if export != "" {
				f, err := os.Create(export)
				if err != nil {
					return err
				}
				n, err := journal.Export(cmd.Context(), f)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return fmt.Errorf("could not export action journal: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("history.exported", n, export))
				return nil
			}

			entries, err := journal.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printJournal(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries to show, 0 for all")
	cmd.Flags().StringVar(&export, "export", "", "Write the journal to this file (zstd compressed JSON)")
	return cmd
}

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or store the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(o.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	var system bool
	write := &cobra.Command{
		Use:   "write",
		Short: "Store the effective configuration in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteConfigFile(&o.cfg, system); err != nil {
				return err
			}
			path, _ := config.GetConfigPath(system)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	write.Flags().BoolVar(&system, "system", false, "Write the system wide file instead of the user file")
	cmd.AddCommand(write)
	return cmd
}
