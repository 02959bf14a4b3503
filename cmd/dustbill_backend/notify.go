package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func notifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Operate on queued notification emails",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "resend [record-id]",
		Short: "Dispatch an email log row again",
		Long: `Dispatch an email log row again, whatever document it belongs to.
The row is marked sent or failed exactly as on the HTTP dispatcher.

Examples:
  dustbill notify resend 6f1c2a9e-4b7d-4c1e-9a0f-2d3e4f5a6b7c`,
		Args: cobra.ExactArgs(1),
		RunE: runNotifyResend,
	})
	return cmd
}

func runNotifyResend(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	ctx := cmd.Context()

	a, err := newApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.close()

	data, err := a.services.Notification.ResendAny(ctx, args[0])
	if err != nil {
		return fmt.Errorf("resend %s: %w", args[0], err)
	}
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
