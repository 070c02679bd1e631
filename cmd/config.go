package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vagalivre/vagalivre/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		fmt.Printf("%s %s\n", labelStyle.Render("Data Dir:"), config.AppConfig.DataDir)

		if config.AppConfig.RemoteEnabled() {
			fmt.Printf("%s %s\n", labelStyle.Render("Mode:"), "remote")
			fmt.Printf("%s %s\n", labelStyle.Render("Remote URL:"), config.AppConfig.Remote.URL)
			fmt.Printf("%s %s\n", labelStyle.Render("Poll Interval:"), config.AppConfig.Remote.PollInterval)
		} else {
			fmt.Printf("%s %s\n", labelStyle.Render("Mode:"), "offline")
		}

		// Show whether a password is set without printing it
		if config.AppConfig.Remote.Password != "" {
			fmt.Printf("%s %s\n", labelStyle.Render("Remote Password:"), "✓ Configured")
		} else {
			fmt.Printf("%s %s\n", labelStyle.Render("Remote Password:"), "✗ Not configured")
		}
	},
}

var setConfigCmd = &cobra.Command{
	Use:     "set",
	Short:   "Update a configuration value",
	Example: `  vagalivre config set --key remote.url --value redis://localhost:6379
  vagalivre config set --key remote.poll_interval --value 15s
  vagalivre config set --key data_dir --value /var/lib/vagalivre`,
	Run: func(cmd *cobra.Command, args []string) {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			fmt.Println("Both --key and --value are required")
			return
		}

		// Validate key
		validKeys := []string{"data_dir", "remote.url", "remote.password", "remote.db", "remote.poll_interval"}
		valid := false
		for _, k := range validKeys {
			if k == key {
				valid = true
				break
			}
		}
		if !valid {
			fmt.Printf("Invalid key. Must be one of: %v\n", validKeys)
			return
		}

		if err := config.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✓ Configuration updated: %s\n", key)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
