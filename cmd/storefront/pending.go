package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
)

func pendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Inspect or abandon the in-flight checkout",
	}

	cmd.AddCommand(pendingShowCmd())
	cmd.AddCommand(pendingAbandonCmd())

	return cmd
}

func pendingShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the checkout awaiting a payment processor redirect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			asJSON, _ := cmd.Flags().GetBool("json")

			p, err := application.Checkout().Pending(cmd.Context())
			if errors.Is(err, service.ErrNoPendingPayment) {
				if asJSON {
					return printJSON(out, nil)
				}
				fmt.Fprintln(out, "No pending payment")
				return nil
			}
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(out, p)
			}

			fmt.Fprintf(out, "Order:    %s (%s)\n", p.OrderNumber, p.OrderID)
			fmt.Fprintf(out, "Amount:   %d\n", p.Amount)
			fmt.Fprintf(out, "Origin:   %s\n", p.Origin)
			fmt.Fprintf(out, "Lines:    %d\n", len(p.Lines))
			fmt.Fprintf(out, "Started:  %s\n", p.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Attempt:  %s\n", p.AttemptID)
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output as JSON")

	return cmd
}

func pendingAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Discard the pending checkout so a late redirect is rejected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Checkout().Abandon(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Pending payment discarded")
			return nil
		},
	}
}
