package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/systemcrm/bitrix-planfix-sync/internal/bitrix"
	"github.com/systemcrm/bitrix-planfix-sync/internal/planfix"
)

const defaultCallTimeout = 60 * time.Second

type Client struct {
	BitrixClient  *bitrix.Client
	PlanfixClient *planfix.Client
	Cfg           *Config
	Mapping       *Mapping
}

type Config struct {
	Bitrix      BitrixCfg  `mapstructure:"bitrix" json:"bitrix"`
	Planfix     PlanfixCfg `mapstructure:"planfix" json:"planfix"`
	WebhookPort int        `mapstructure:"webhook_port" json:"webhook_port"`
}

type BitrixCfg struct {
	Creds bitrix.Creds `mapstructure:"api_creds" json:"api_creds"`
}

type PlanfixCfg struct {
	Creds planfix.Creds `mapstructure:"api_creds" json:"api_creds"`

	// DefaultAssigneeId receives every task whose responsible user has no
	// Planfix account. Required - the pipeline refuses to run without it.
	DefaultAssigneeId int `mapstructure:"default_assignee_id" json:"default_assignee_id"`
}

func NewClient(cfg *Config) *Client {
	httpClient := &http.Client{Timeout: defaultCallTimeout}

	return &Client{
		BitrixClient:  bitrix.NewClient(cfg.Bitrix.Creds, httpClient),
		PlanfixClient: planfix.NewClient(cfg.Planfix.Creds, httpClient),
		Cfg:           cfg,
		Mapping:       NewDefaultMapping(),
	}
}

func (cfg *Config) Validate() error {
	slog.Debug("validating required fields")
	var missing []string

	requiredFields := map[string]string{
		"bitrix.api_creds.webhook_url":    cfg.Bitrix.Creds.WebhookUrl,
		"bitrix.api_creds.admin_login":    cfg.Bitrix.Creds.AdminLogin,
		"bitrix.api_creds.admin_password": cfg.Bitrix.Creds.AdminPassword,
		"planfix.api_creds.api_url":       cfg.Planfix.Creds.ApiUrl,
		"planfix.api_creds.auth_token":    cfg.Planfix.Creds.AuthToken,
	}

	for k, v := range requiredFields {
		if v == "" {
			slog.Warn("missing required config value", "key", k)
			missing = append(missing, k)
		}
	}

	if cfg.Planfix.DefaultAssigneeId == 0 {
		slog.Warn("missing required config value", "key", "planfix.default_assignee_id")
		missing = append(missing, "planfix.default_assignee_id")
	}

	if len(missing) > 0 {
		slog.Error("missing required config values", "missing", missing)
		return errors.New("missing 1 or more required config values")
	}

	return nil
}

func (c *Client) TestConnection(ctx context.Context) error {
	var failedTests []string
	if err := c.BitrixClient.TestConnection(ctx); err != nil {
		slog.Error("bitrix api connection test", "error", err)
		failedTests = append(failedTests, "bitrix")
	}

	if err := c.PlanfixClient.TestConnection(ctx); err != nil {
		slog.Error("planfix api connection test", "error", err)
		failedTests = append(failedTests, "planfix")
	}

	if len(failedTests) > 0 {
		slog.Error("connection test", "failedTests", failedTests)
		return fmt.Errorf("failed connection tests: %v", strings.Join(failedTests, ","))
	}

	slog.Info("connection tests successful")
	return nil
}
