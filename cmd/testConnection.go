package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use: "test",
}

var testConnectionCmd = &cobra.Command{
	Use: "connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.BitrixClient.TestConnection(ctx); err != nil {
			return fmt.Errorf("bitrix connection test failed: %w", err)
		}

		fmt.Println("Bitrix connection test successful")

		if err := client.PlanfixClient.TestConnection(ctx); err != nil {
			return fmt.Errorf("planfix connection test failed: %w", err)
		}

		fmt.Println("Planfix connection test successful")
		return nil
	},
}

func init() {
	testCmd.AddCommand(testConnectionCmd)
	rootCmd.AddCommand(testCmd)
}
