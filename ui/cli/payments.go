// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/toeirei/paymaster/client"
	"github.com/toeirei/paymaster/core/model"
)

func newSearchCmd(o *options) *cobra.Command {
	var (
		typ    string
		name   string
		userID int
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search payment methods",
		Long:  `Lists every payment method matching all given filters. Without filters every method is listed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := client.SearchQuery{Name: strings.TrimSpace(name)}
			if typ != "" && !strings.EqualFold(typ, "ANY") {
				v, err := parseVariant(typ)
				if err != nil {
					return err
				}
				q.Type = v
			}
			if cmd.Flags().Changed("user-id") {
				q.UserID = &userID
			}

			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.run(s.console.Search(q)); err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), s.console.Results().Records())
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "Payment method type (PAYPAL, CREDIT_CARD, ANY)")
	cmd.Flags().StringVar(&name, "name", "", "Exact payment method name")
	cmd.Flags().IntVar(&userID, "user-id", 0, "Owner id")
	return cmd
}

func newGetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Retrieve one payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.run(s.console.Retrieve(id)); err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), s.console.Results().Records())
			return nil
		},
	}
}

func newCreateCmd(o *options) *cobra.Command {
	var (
		typ  string
		sets []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment method",
		Example: `  paymaster create --type PAYPAL --set name=Wallet --set user_id=7 --set email=me@example.com
  paymaster create --type CREDIT_CARD --set name=Card --set user_id=7 --set card_number=4111111111111111`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := model.DefaultVariant
			if typ != "" {
				v, err := parseVariant(typ)
				if err != nil {
					return err
				}
				variant = v
			}
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.console.OpenCreate(); err != nil {
				return err
			}
			if err := s.console.Modal().SelectVariant(string(variant)); err != nil {
				return err
			}
			return s.submit(sets)
		},
	}
	cmd.Flags().StringVar(&typ, "type", string(model.DefaultVariant), "Payment method type (PAYPAL, CREDIT_CARD)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment key=value, repeatable")
	return cmd
}

func newEditCmd(o *options) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a payment method",
		Long:  `Loads the payment method, applies the given field assignments and saves it. Fields that are not set keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			s, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			record, err := s.app.API.Get(cmd.Context(), id)
			if err != nil {
				s.app.Notes.Error(client.Message(err))
				return errActionFailed
			}
			s.console.Results().Upsert(record, false)
			if err := s.console.Edit(id); err != nil {
				return err
			}
			if err := s.submit(sets); err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), s.console.Results().Records())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment key=value, repeatable")
	return cmd
}

func newDeleteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.rowAction(cmd, args[0], func(s *session, id int) error {
				t, err := s.console.Delete(id)
				if err != nil {
					return err
				}
				return s.run(t)
			})
		},
	}
}

func newSetDefaultCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <id>",
		Short: "Mark a payment method as its owner's default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.rowAction(cmd, args[0], func(s *session, id int) error {
				t, err := s.console.SetDefault(id)
				if err != nil {
					return err
				}
				return s.run(t)
			})
		},
	}
}

// rowAction lists a placeholder row for id so the row bound action can run
// without fetching the method first.
func (o *options) rowAction(cmd *cobra.Command, rawID string, fn func(*session, int) error) error {
	id, err := parseIDArg(rawID)
	if err != nil {
		return err
	}
	s, err := o.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	s.console.Results().Upsert(model.Record{ID: id}, false)
	return fn(s, id)
}
