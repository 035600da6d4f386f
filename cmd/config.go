package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hirematch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		path := cfgFile
		if path == "" {
			path = config.GetConfigPath()
		}

		cmd.Println(titleStyle.Render("Configuration"))
		cmd.Printf("%s %s\n", labelStyle.Render("Config File:"), path)
		cmd.Printf("%s %s\n", labelStyle.Render("Database:"), a.Config.DBPath)
		cmd.Printf("%s %s\n", labelStyle.Render("Server Address:"), a.Config.ServerAddr)
		cmd.Printf("%s %d/min\n", labelStyle.Render("Search Rate Limit:"), a.Config.RateLimitPerMin)

		workers := fmt.Sprintf("%d", a.Config.Workers)
		if a.Config.Workers == 0 {
			workers = "auto"
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Workers:"), workers)
		cmd.Printf("%s %d\n", labelStyle.Render("Default Limit:"), a.Config.DefaultLimit)
		cmd.Printf("%s json=%t debug=%t\n", labelStyle.Render("Logging:"), a.Config.LogJSON, a.Config.LogDebug)
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  hirematch config set --key default_limit --value 50
  hirematch config set --key server_addr --value 127.0.0.1:9090
  hirematch config set --key workers --value 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("error updating config: %w", err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
