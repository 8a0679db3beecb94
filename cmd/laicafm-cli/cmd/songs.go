package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "Manage the song catalog",
}

var songsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all songs in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, err := apiClient().Songs(cmd.Context())
		if err != nil {
			return err
		}
		if len(songs) == 0 {
			fmt.Println("The catalog is empty.")
			return nil
		}
		for _, s := range songs {
			fmt.Printf("%s  %s - %s (%.0fs)\n", s.ID, s.Artist, s.Title, s.Duration)
		}
		return nil
	},
}

var uploadContentType string

var songsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an audio file to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		// Open the file before touching the network: a missing or
		// unreadable file must never produce a request.
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		defer f.Close()

		contentType := uploadContentType
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(path))
		}
		song, err := apiClient().Upload(cmd.Context(), filepath.Base(path), contentType, f)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s - %s (%s)\n", song.Artist, song.Title, song.ID)
		return nil
	},
}

var songsDeleteCmd = &cobra.Command{
	Use:   "delete <song-id>",
	Short: "Delete a song from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient().DeleteSong(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Song deleted.")
		return nil
	},
}

func init() {
	songsUploadCmd.Flags().StringVar(&uploadContentType, "content-type", "", "override the detected MIME type")
	songsCmd.AddCommand(songsListCmd)
	songsCmd.AddCommand(songsUploadCmd)
	songsCmd.AddCommand(songsDeleteCmd)
	rootCmd.AddCommand(songsCmd)
}
