package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current playback state",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := apiClient().Status(cmd.Context())
		if err != nil {
			return err
		}
		playing := "paused"
		if st.IsPlaying {
			playing = "playing"
		}
		if st.CurrentSong != nil {
			fmt.Printf("Now: %s - %s (%.0fs / %.0fs)\n",
				st.CurrentSong.Artist, st.CurrentSong.Title,
				st.CurrentPosition, st.CurrentSong.Duration)
		} else {
			fmt.Println("Now: nothing queued")
		}
		fmt.Printf("State: %s  Live: %v  Listeners: %d  Playlist: %d songs\n",
			playing, st.IsLive, st.Listeners, st.PlaylistLength)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Sample and show current station statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := apiClient().CurrentStats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Listeners: %d  Playing: %v  Live: %v  At: %s\n",
			st.Listeners, st.IsPlaying, st.IsLive, st.Timestamp.Format("15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsCmd)
}
