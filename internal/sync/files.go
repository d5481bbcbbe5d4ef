package sync

import (
	"context"
	"log/slog"

	"github.com/systemcrm/bitrix-planfix-sync/internal/bitrix"
)

// syncDealFiles downloads every attachment from the deal and re-uploads it
// to Planfix, returning the map from source custom field key to the new
// Planfix file ids. One file failing leaves the rest of the map intact.
func (c *Client) syncDealFiles(ctx context.Context, deal *bitrix.Deal) map[string][]int {
	files := c.BitrixClient.DownloadDealFiles(ctx, deal)

	fileIds := map[string][]int{}
	for _, f := range files {
		id, err := c.PlanfixClient.UploadFile(ctx, f.Filename, f.Content)
		if err != nil {
			slog.Error("failed to upload deal file",
				"filename", f.Filename, "fieldKey", f.FieldKey, "error", err)
			continue
		}

		fileIds[f.FieldKey] = append(fileIds[f.FieldKey], id)
		slog.Info("deal file uploaded", "filename", f.Filename, "fieldKey", f.FieldKey, "planfixFileId", id)
	}

	return fileIds
}
