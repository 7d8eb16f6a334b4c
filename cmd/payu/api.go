package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func pingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the payments and reports APIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			if err := client.PingAll(ctx); err != nil {
				return err
			}
			fmt.Printf("PayU %s: payments and reports APIs reachable\n", client.Config().Env)
			return nil
		},
	}
}

func methodsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the payment methods enabled for the merchant",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(opts)
			if err != nil {
				return err
			}
			resp, err := client.Payments.GetPaymentMethods(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range resp.Data.PaymentMethods {
				state := "disabled"
				if m.Enabled {
					state = "enabled"
				}
				fmt.Printf("  %-4s %-24s %s\n", m.Country, m.Description, state)
			}
			return nil
		},
	}
}

func orderCmd(opts *options) *cobra.Command {
	var (
		id        int64
		reference string
	)
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Show an order by id or reference code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (id == 0) == (reference == "") {
				return fmt.Errorf("exactly one of --id or --reference is required")
			}
			client, err := newClient(opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var payload json.RawMessage
			if id != 0 {
				resp, err := client.Queries.OrderByID(ctx, id)
				if err != nil {
					return err
				}
				if resp.Data.Result != nil {
					payload = resp.Data.Result.Payload
				}
			} else {
				resp, err := client.Queries.OrderByReference(ctx, reference)
				if err != nil {
					return err
				}
				if resp.Data.Result != nil {
					payload = resp.Data.Result.Payload
				}
			}
			if len(payload) == 0 {
				fmt.Println("no order found")
				return nil
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "PayU order id")
	cmd.Flags().StringVar(&reference, "reference", "", "Merchant reference code")
	return cmd
}
