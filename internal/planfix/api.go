package planfix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

type Client struct {
	creds      Creds
	baseUrl    string
	httpClient *http.Client
}

type Creds struct {
	ApiUrl    string `mapstructure:"api_url" json:"api_url"`
	AuthToken string `mapstructure:"auth_token" json:"auth_token"`
}

func NewClient(creds Creds, httpClient *http.Client) *Client {
	return &Client{
		creds:      creds,
		baseUrl:    strings.TrimSuffix(creds.ApiUrl, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) TestConnection(ctx context.Context) error {
	body := ListRequest{
		Offset:   0,
		PageSize: 1,
		Fields:   "id",
	}

	contacts := ContactsResp{}
	if err := c.apiRequest(ctx, "contact/list", &body, &contacts); err != nil {
		return err
	}

	return nil
}

// apiRequest posts a JSON body to a Planfix endpoint with the bearer token
// header. Every non-2xx response is a transport failure for the caller to
// handle - Planfix has no "not found" entity responses on these endpoints,
// only empty lists.
func (c *Client) apiRequest(ctx context.Context, endpoint string, payload interface{}, target interface{}) error {
	u := fmt.Sprintf("%s/%s", c.baseUrl, endpoint)

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request body to json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("an error occured creating the request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.creds.AuthToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("an error occured sending the request: %w", err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			slog.Warn("closing planfix response body", "error", err)
		}
	}(res.Body)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("an error occured reading the response body: %w", err)
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		slog.Warn("planfix api request failed", "endpoint", endpoint, "statusCode", res.StatusCode, "body", string(data))
		return fmt.Errorf("status code: %s", res.Status)
	}

	if target != nil {
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("an error occured unmarshaling the response to JSON: %w", err)
		}
	}

	return nil
}
