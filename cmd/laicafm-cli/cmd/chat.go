package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Read and post to the station chat",
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent chat messages in chronological order",
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := apiClient().ChatHistory(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range messages {
			fmt.Printf("[%s] %s: %s\n", m.Timestamp.Format("15:04:05"), m.Username, m.Message)
		}
		return nil
	},
}

var chatPostCmd = &cobra.Command{
	Use:   "post <username> <message>",
	Short: "Post a chat message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := apiClient().PostChatMessage(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Posted as %s at %s\n", m.Username, m.Timestamp.Format("15:04:05"))
		return nil
	},
}

func init() {
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatPostCmd)
	rootCmd.AddCommand(chatCmd)
}
