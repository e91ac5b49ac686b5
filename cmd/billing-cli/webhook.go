package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"quadra_billing/internal/adapter/http/handlers"
	"quadra_billing/internal/usecase"

	"github.com/spf13/cobra"
)

func signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [payload-file]",
		Short: "Print the webhook signature of a payload file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			if secret == "" {
				return fmt.Errorf("--secret or WEBHOOK_SECRET is required")
			}
			body, err := readPayload(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), usecase.SignWebhookPayload([]byte(secret), body))
			return nil
		},
	}

	cmd.Flags().StringP("secret", "s", os.Getenv("WEBHOOK_SECRET"), "Shared webhook secret")

	return cmd
}

func sendWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send-webhook [payload-file]",
		Short: "Sign a payload and POST it to the webhook endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			url, _ := cmd.Flags().GetString("url")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			if secret == "" {
				return fmt.Errorf("--secret or WEBHOOK_SECRET is required")
			}
			body, err := readPayload(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			status, resp, err := postWebhook(ctx, url, secret, body)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", status, resp)
			if status >= http.StatusBadRequest {
				return fmt.Errorf("webhook rejected with status %d", status)
			}
			return nil
		},
	}

	cmd.Flags().StringP("secret", "s", os.Getenv("WEBHOOK_SECRET"), "Shared webhook secret")
	cmd.Flags().StringP("url", "u", "http://localhost:8080/v1/webhooks/payments", "Webhook endpoint")
	cmd.Flags().Duration("timeout", 10*time.Second, "Request timeout")

	return cmd
}

func postWebhook(ctx context.Context, url, secret string, body []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handlers.HeaderWebhookSignature, usecase.SignWebhookPayload([]byte(secret), body))

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("post webhook: %w", err)
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return res.StatusCode, "", fmt.Errorf("read response: %w", err)
	}
	return res.StatusCode, string(bytes.TrimSpace(raw)), nil
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return body, nil
}
