package bitrix

import (
	"context"
	"encoding/json"
	"fmt"
)

// Deal carries the handful of standard fields the sync reads, plus every
// file attachment found in the deal's custom fields. File detection happens
// once here, at decode time - a value is a file when it (or each element of
// a list) carries a downloadUrl key.
type Deal struct {
	Id           string
	Title        string
	ContactId    string
	CompanyId    string
	AssignedById string

	// Files maps the originating custom field key to its attachments.
	Files map[string][]FileDescriptor
}

type FileDescriptor struct {
	Id          json.Number `json:"id"`
	DownloadUrl string      `json:"downloadUrl"`
}

func (d *Deal) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	d.Id = stringField(fields, "ID")
	d.Title = stringField(fields, "TITLE")
	d.ContactId = stringField(fields, "CONTACT_ID")
	d.CompanyId = stringField(fields, "COMPANY_ID")
	d.AssignedById = stringField(fields, "ASSIGNED_BY_ID")

	d.Files = map[string][]FileDescriptor{}
	for key, raw := range fields {
		descs := parseFileValue(raw)
		if len(descs) > 0 {
			d.Files[key] = descs
		}
	}

	return nil
}

func parseFileValue(raw json.RawMessage) []FileDescriptor {
	single := FileDescriptor{}
	if err := json.Unmarshal(raw, &single); err == nil && single.DownloadUrl != "" {
		return []FileDescriptor{single}
	}

	var list []FileDescriptor
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0].DownloadUrl != "" {
		var descs []FileDescriptor
		for _, f := range list {
			if f.DownloadUrl != "" {
				descs = append(descs, f)
			}
		}
		return descs
	}

	return nil
}

// stringField tolerates both string and numeric representations, since
// Bitrix is not consistent about id field types across portals.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

func (c *Client) GetDeal(ctx context.Context, dealId int) (*Deal, error) {
	deal := &Deal{}
	if err := c.call(ctx, "crm.deal.get", map[string]int{"ID": dealId}, deal); err != nil {
		return nil, fmt.Errorf("an error occured getting the deal: %w", err)
	}

	if deal.Id == "" {
		return nil, nil
	}

	return deal, nil
}
