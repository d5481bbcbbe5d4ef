package bitrix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

type Client struct {
	creds        Creds
	portalScheme string
	portalDomain string
	httpClient   *http.Client
}

type Creds struct {
	WebhookUrl    string `mapstructure:"webhook_url" json:"webhook_url"`
	AdminLogin    string `mapstructure:"admin_login" json:"admin_login"`
	AdminPassword string `mapstructure:"admin_password" json:"admin_password"`
}

func NewClient(creds Creds, httpClient *http.Client) *Client {
	creds.WebhookUrl = strings.TrimSuffix(creds.WebhookUrl, "/")

	// File downloads go against the portal host itself, not the webhook
	// path, so keep its location around.
	scheme, domain := "https", ""
	if u, err := url.Parse(creds.WebhookUrl); err == nil {
		domain = u.Host
		if u.Scheme != "" {
			scheme = u.Scheme
		}
	}

	return &Client{
		creds:        creds,
		portalScheme: scheme,
		portalDomain: domain,
		httpClient:   httpClient,
	}
}

func (c *Client) TestConnection(ctx context.Context) error {
	var parts []addressFields
	if err := c.call(ctx, "crm.address.list", map[string]interface{}{
		"filter": map[string]string{"ENTITY_ID": "1"},
	}, &parts); err != nil {
		return err
	}

	return nil
}

type apiResponse struct {
	Result           json.RawMessage `json:"result"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

// call issues a Bitrix REST method through the inbound webhook URL. An
// API-level error (missing entity, bad id) leaves target untouched and
// returns nil - only transport failures surface as errors.
func (c *Client) call(ctx context.Context, method string, params interface{}, target interface{}) error {
	u := fmt.Sprintf("%s/%s.json", c.creds.WebhookUrl, method)

	jsonBytes, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshaling request params to json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("an error occured creating the request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("an error occured sending the request: %w", err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			slog.Warn("closing bitrix response body", "error", err)
		}
	}(res.Body)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("an error occured reading the response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		// Bitrix reports missing entities with an error body, not a bare
		// status - treat those as absent rather than failing the call.
		apiRes := apiResponse{}
		if jsonErr := json.Unmarshal(data, &apiRes); jsonErr == nil && apiRes.Error != "" {
			slog.Debug("bitrix api error treated as absent",
				"method", method, "apiError", apiRes.Error, "description", apiRes.ErrorDescription)
			return nil
		}

		return fmt.Errorf("status code: %s", res.Status)
	}

	apiRes := apiResponse{}
	if err := json.Unmarshal(data, &apiRes); err != nil {
		return fmt.Errorf("an error occured unmarshaling the response to JSON: %w", err)
	}

	if apiRes.Error != "" {
		slog.Debug("bitrix api error treated as absent",
			"method", method, "apiError", apiRes.Error, "description", apiRes.ErrorDescription)
		return nil
	}

	if target != nil && len(apiRes.Result) > 0 && string(apiRes.Result) != "null" {
		if err := json.Unmarshal(apiRes.Result, target); err != nil {
			return fmt.Errorf("an error occured unmarshaling the result to JSON: %w", err)
		}
	}

	return nil
}
