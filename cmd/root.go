package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/systemcrm/bitrix-planfix-sync/internal/sync"
)

const logFileName = "bpsync.log"

var (
	ctx    context.Context
	cfg    sync.Config
	client *sync.Client
	debug  bool
)

var rootCmd = &cobra.Command{
	Use:               "bitrix-planfix-sync",
	Short:             "One-shot Bitrix24 deal to Planfix task synchronization",
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/bpsync_config.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cobra.OnInitialize(initConfig)
}

func preRun(cmd *cobra.Command, args []string) error {
	ctx = context.Background()

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	if err := setLogger(filepath.Join(home, logFileName), debug); err != nil {
		return fmt.Errorf("setting logger: %w", err)
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}

	// The config command exists to fill in missing values, so it skips
	// validation.
	if cmd.Name() == "config" {
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	client = sync.NewClient(&cfg)
	return nil
}
