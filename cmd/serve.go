package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systemcrm/bitrix-planfix-sync/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server that receives Bitrix deal events",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.NewServer(client)

		fmt.Printf("Listening for deal webhooks on port %d\n", cfg.WebhookPort)
		return srv.Start(cfg.WebhookPort)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
