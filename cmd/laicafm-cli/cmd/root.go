package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marioarbosiberica-bot/LaicaFM/client"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "laicafm-cli",
	Short: "LaicaFM CLI tool",
	Long: `laicafm-cli is a command-line interface for a LaicaFM radio station.

It can inspect and control playback, manage the song catalog and playlists,
post to the station chat, and follow the live event stream.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("LAICAFM_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultURL, "base URL of the LaicaFM service")
}

// apiClient builds a REST client for the configured server.
func apiClient() *client.Client {
	return client.New(serverURL)
}
