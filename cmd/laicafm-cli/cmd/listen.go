package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marioarbosiberica-bot/LaicaFM/client"
)

var listenReconnect time.Duration

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Follow the live event stream until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := client.NewSyncClient(serverURL,
			client.WithReconnectDelay(listenReconnect),
			client.WithStateHandler(func(st client.RadioState) {
				if st.CurrentSong != nil {
					fmt.Printf("state: %s - %s  playing=%v  listeners=%d  pos=%.0fs\n",
						st.CurrentSong.Artist, st.CurrentSong.Title,
						st.IsPlaying, st.Listeners, st.CurrentPosition)
					return
				}
				fmt.Printf("state: idle  listeners=%d\n", st.Listeners)
			}),
			client.WithChatHandler(func(m client.ChatMessage) {
				fmt.Printf("chat:  %s: %s\n", m.Username, m.Message)
			}),
		)
		if err != nil {
			return err
		}
		sc.Start()
		defer sc.Close()

		fmt.Printf("Listening to %s (Ctrl-C to stop)\n", serverURL)
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		return nil
	},
}

func init() {
	listenCmd.Flags().DurationVar(&listenReconnect, "reconnect", client.DefaultReconnectDelay, "delay between reconnection attempts")
	rootCmd.AddCommand(listenCmd)
}
