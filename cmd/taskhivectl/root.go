package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	outputFmt string
	authToken string
)

var rootCmd = &cobra.Command{
	Use:   "taskhivectl",
	Short: "CLI for the taskhive server",
	Long: `taskhivectl is a small client for the taskhive task service.

Authenticate with "register" or "login" to obtain an access token, then pass
it via --token or the TASKHIVE_TOKEN environment variable for task commands.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Taskhive server URL")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token (default: from TASKHIVE_TOKEN env)")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(healthCmd)
}

// resolvedToken returns the effective bearer token.
// Priority: --token flag > TASKHIVE_TOKEN env var.
func resolvedToken() string {
	if authToken != "" {
		return authToken
	}
	return os.Getenv("TASKHIVE_TOKEN")
}
