package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the pipeline once for a single deal id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one argument (deal ID)")
		}

		dealId, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid deal ID - must be an integer")
		}

		var runErr error
		action := func() {
			runErr = client.ProcessDeal(ctx, dealId)
		}

		if err := spinner.New().
			Title(fmt.Sprintf("Syncing deal %d...", dealId)).
			Action(action).
			Run(); err != nil {
			return fmt.Errorf("running sync spinner: %w", err)
		}

		if runErr != nil {
			fmt.Println(failStyle.Render(fmt.Sprintf("Deal %d sync failed: %v", dealId, runErr)))
			return runErr
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("Deal %d synced - see the log for degraded steps, if any", dealId)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
