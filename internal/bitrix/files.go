package bitrix

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DealFile is a downloaded attachment, alive only between download and
// re-upload.
type DealFile struct {
	FieldKey string
	Filename string
	Content  []byte
}

// DownloadDealFiles fetches every attachment found on the deal. Downloads
// go against the portal host with form-encoded admin credentials, since the
// REST webhook cannot serve file bodies. A failed download is logged and
// skipped - partial success is the expected outcome, not an error.
func (c *Client) DownloadDealFiles(ctx context.Context, deal *Deal) []DealFile {
	if deal == nil || len(deal.Files) == 0 {
		return nil
	}

	// Stable field order keeps download logs and upload sequences
	// comparable across runs.
	fieldKeys := make([]string, 0, len(deal.Files))
	for fieldKey := range deal.Files {
		fieldKeys = append(fieldKeys, fieldKey)
	}
	sort.Strings(fieldKeys)

	var downloaded []DealFile
	for _, fieldKey := range fieldKeys {
		for _, desc := range deal.Files[fieldKey] {
			file, err := c.downloadFile(ctx, fieldKey, desc)
			if err != nil {
				slog.Warn("skipping deal file", "fieldKey", fieldKey, "fileId", desc.Id.String(), "error", err)
				continue
			}

			downloaded = append(downloaded, *file)
		}
	}

	return downloaded
}

func (c *Client) downloadFile(ctx context.Context, fieldKey string, desc FileDescriptor) (*DealFile, error) {
	u := fmt.Sprintf("%s://%s%s&login=yes", c.portalScheme, c.portalDomain, desc.DownloadUrl)

	form := url.Values{
		"AUTH_FORM":     {"Y"},
		"TYPE":          {"AUTH"},
		"USER_LOGIN":    {c.creds.AdminLogin},
		"USER_PASSWORD": {c.creds.AdminPassword},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("an error occured creating the download request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("an error occured sending the download request: %w", err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			slog.Warn("closing download response body", "error", err)
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %s", res.Status)
	}

	// An HTML body means the portal served its auth page instead of the
	// file.
	contentType := strings.ToLower(res.Header.Get("Content-Type"))
	if strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("received html response instead of file body")
	}

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("an error occured reading the file body: %w", err)
	}

	return &DealFile{
		FieldKey: fieldKey,
		Filename: filenameFromHeader(res.Header.Get("Content-Disposition"), desc),
		Content:  content,
	}, nil
}

var filenameRe = regexp.MustCompile(`filename="([^"]+)"`)

// filenameFromHeader pulls the filename out of a content-disposition
// header by pattern, not a strict media-type parse - legacy portals stuff
// raw Windows-1251 bytes into the quoted string, which a strict parser
// rejects.
func filenameFromHeader(disposition string, desc FileDescriptor) string {
	match := filenameRe.FindStringSubmatch(disposition)
	if match == nil {
		return fmt.Sprintf("file_%s", desc.Id.String())
	}

	return decodeFilename(match[1])
}

// decodeFilename re-decodes legacy-encoded header values. Older portals
// send Windows-1251 bytes in the filename parameter, which arrive here as
// an invalid UTF-8 string.
func decodeFilename(name string) string {
	if utf8.ValidString(name) {
		return name
	}

	decoded, err := charmap.Windows1251.NewDecoder().String(name)
	if err != nil {
		return name
	}

	return decoded
}
