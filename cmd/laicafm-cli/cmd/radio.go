package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start playback of the active playlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient().Play(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Playback started.")
		return nil
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient().Pause(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Playback paused.")
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to the next song in the active playlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient().Next(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Skipped to next song.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(nextCmd)
}
