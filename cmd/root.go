package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vagalivre/vagalivre/internal/app"
	"github.com/vagalivre/vagalivre/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "vagalivre",
	Short: "Job board for employers and candidates",
	Long: `VagaLivre is a job board: employers register, post and manage job
listings and review applications; candidates browse, filter, and apply
with a resume. State lives on this device, or on the configured remote
backend when one is set up ('vagalivre config set remote.url ...').`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config commands must work even when the configured remote
		// backend is unreachable, so they skip the full container
		if cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return config.Initialize()
		}

		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store app in command context
		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Teardown: cancels subscriptions and closes the store
		if application := app.GetAppFromContext(cmd.Context()); application != nil {
			application.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getApp pulls the container out of the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	application := app.GetAppFromContext(cmd.Context())
	if application == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return application, nil
}
