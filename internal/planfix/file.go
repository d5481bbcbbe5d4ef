package planfix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// UploadFile streams a binary payload to the Planfix file store and returns
// the new file's id. Unlike the JSON endpoints, file/ takes multipart form
// data, so this bypasses apiRequest.
func (c *Client) UploadFile(ctx context.Context, filename string, content []byte) (int, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", "application/octet-stream")

	part, err := writer.CreatePart(header)
	if err != nil {
		return 0, fmt.Errorf("creating multipart form part: %w", err)
	}

	if _, err := part.Write(content); err != nil {
		return 0, fmt.Errorf("writing file content to form: %w", err)
	}

	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("closing multipart writer: %w", err)
	}

	u := fmt.Sprintf("%s/file/", c.baseUrl)
	req, err := http.NewRequestWithContext(ctx, "POST", u, &buf)
	if err != nil {
		return 0, fmt.Errorf("an error occured creating the upload request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.creds.AuthToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("an error occured sending the upload request: %w", err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			slog.Warn("closing upload response body", "error", err)
		}
	}(res.Body)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, fmt.Errorf("an error occured reading the upload response: %w", err)
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		slog.Warn("planfix file upload failed", "filename", filename, "statusCode", res.StatusCode, "body", string(data))
		return 0, fmt.Errorf("status code: %s", res.Status)
	}

	resp := PostResp{}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("an error occured unmarshaling the upload response: %w", err)
	}

	if resp.Id == 0 {
		return 0, fmt.Errorf("upload response contained no file id")
	}

	return resp.Id, nil
}
