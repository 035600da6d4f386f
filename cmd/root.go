package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khrees2412/hirematch/internal/app"
)

const appName = "hirematch"

// skipAppAnnotation marks commands that run without config or database.
const skipAppAnnotation = "skip-app"

var (
	cfgFile string

	// application is kept for cleanup once the command returns.
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Score and rank candidates against search criteria",
	Long: `Hirematch keeps a pool of candidate profiles and ranks them against
recruiter search criteria: skills, experience, work type, job type, location,
education, availability and salary. Criteria never exclude a candidate; they
only move them up or down the ranking.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsApp(cmd) {
			return nil
		}

		a, err := app.NewApp(cmd.Context(), cfgFile)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		application = a

		cmd.SetContext(app.SetAppInContext(cmd.Context(), a))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.hirematch/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("log_debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("json"))
}

// Execute runs the root command
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	if application != nil {
		application.Close()
	}
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

// needsApp reports whether cmd needs config and database. Annotated commands,
// their subcommands and cobra's built-in commands do not.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipAppAnnotation] == "true" {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// getApp returns the App stored by PersistentPreRunE
func getApp(cmd *cobra.Command) (*app.App, error) {
	a := app.GetAppFromContext(cmd.Context())
	if a == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}
