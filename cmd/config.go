package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/systemcrm/bitrix-planfix-sync/internal/sync"
)

const (
	configFileSubPath  = "/bpsync_config.json"
	defaultWebhookPort = 9093
)

var cfgFile string

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg"},
	Short:   "Interactively edit gateway credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		assigneeId := strconv.Itoa(cfg.Planfix.DefaultAssigneeId)

		if err := credsForm(&cfg, &assigneeId).Run(); err != nil {
			return fmt.Errorf("running creds form: %w", err)
		}

		cfg.Planfix.DefaultAssigneeId = strToInt(assigneeId)

		viper.Set("bitrix", cfg.Bitrix)
		viper.Set("planfix", cfg.Planfix)

		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		client = sync.NewClient(&cfg)
		return client.TestConnection(ctx)
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	// A local .env can hold credentials during development; real env vars
	// still win.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigType("json")
		viper.SetConfigName("bpsync_config")
	}

	bindEnvOverrides()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			setCfgDefaults()
			path := home + configFileSubPath
			fmt.Println("Creating default config file")
			if err := viper.WriteConfigAs(path); err != nil {
				fmt.Println("Error creating default config file:", err)
				os.Exit(1)
			}
		} else {
			fmt.Println("Error reading config file:", err)
			os.Exit(1)
		}
	}
}

func bindEnvOverrides() {
	envKeys := map[string]string{
		"bitrix.api_creds.webhook_url":    "BITRIX_WEBHOOK_URL",
		"bitrix.api_creds.admin_login":    "BITRIX_ADMIN_LOGIN",
		"bitrix.api_creds.admin_password": "BITRIX_ADMIN_PASSWORD",
		"planfix.api_creds.api_url":       "PLANFIX_API_URL",
		"planfix.api_creds.auth_token":    "PLANFIX_AUTH_TOKEN",
		"planfix.default_assignee_id":     "PLANFIX_DEFAULT_ASSIGNEE_ID",
		"webhook_port":                    "BPSYNC_WEBHOOK_PORT",
	}

	for key, env := range envKeys {
		cobra.CheckErr(viper.BindEnv(key, env))
	}
}

func setCfgDefaults() {
	viper.SetDefault("bitrix", sync.BitrixCfg{})
	viper.SetDefault("planfix", sync.PlanfixCfg{})
	viper.SetDefault("webhook_port", defaultWebhookPort)
}

func credsForm(cfg *sync.Config, assigneeId *string) *huh.Form {
	return huh.NewForm(
		inputGroup("Bitrix Webhook URL", &cfg.Bitrix.Creds.WebhookUrl, requiredInput, true),
		inputGroup("Bitrix Admin Login", &cfg.Bitrix.Creds.AdminLogin, requiredInput, true),
		inputGroup("Bitrix Admin Password", &cfg.Bitrix.Creds.AdminPassword, requiredInput, true),
		inputGroup("Planfix API URL", &cfg.Planfix.Creds.ApiUrl, requiredInput, true),
		inputGroup("Planfix Auth Token", &cfg.Planfix.Creds.AuthToken, requiredInput, true),
		inputGroup("Planfix Default Assignee ID", assigneeId, requiredIntInput, true),
	).WithHeight(3).WithShowHelp(false).WithTheme(huh.ThemeBase16())
}

// inputGroup creates a huh Group with an input field, this is just to make
// credsForm prettier.
func inputGroup(title string, value *string, validate func(string) error, inline bool) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder(*value).
			Validate(validate).
			Inline(inline).
			Value(value),
	)
}

// Validator for required huh Input fields
func requiredInput(s string) error {
	if s == "" {
		return errors.New("field is required")
	}
	return nil
}

func requiredIntInput(s string) error {
	if strToInt(s) == 0 {
		return errors.New("field must be a non-zero integer")
	}
	return nil
}

func strToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return i
}

func init() {
	rootCmd.AddCommand(configCmd)
}
