package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/storefront/internal/storefront/app"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront agent - shopper session and payment reconciliation",
		Version:      app.BuildVersion,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(sessionCmd())
	rootCmd.AddCommand(pendingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(app.LoadConfig())
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

// openApp builds the application for one-shot commands. Logs go to stderr so
// stdout carries only the command's result.
func openApp() (*app.Application, error) {
	cfg := app.LoadConfig()
	cfg.LogOutput = os.Stderr
	cfg.LogFormat = "text"

	application, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
