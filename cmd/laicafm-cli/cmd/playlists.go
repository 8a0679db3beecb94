package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "Manage playlists",
}

var playlistsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all playlists",
	RunE: func(cmd *cobra.Command, args []string) error {
		playlists, err := apiClient().Playlists(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range playlists {
			active := ""
			if p.IsActive {
				active = "  [active]"
			}
			fmt.Printf("%s  %s (%d songs)%s\n", p.ID, p.Name, len(p.Songs), active)
		}
		return nil
	},
}

var playlistsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := apiClient().CreatePlaylist(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created playlist %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

var playlistsAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <song-id>",
	Short: "Append a song to a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient().AddSongToPlaylist(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Song added.")
		return nil
	},
}

func init() {
	playlistsCmd.AddCommand(playlistsListCmd)
	playlistsCmd.AddCommand(playlistsCreateCmd)
	playlistsCmd.AddCommand(playlistsAddCmd)
	rootCmd.AddCommand(playlistsCmd)
}
