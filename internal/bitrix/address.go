package bitrix

import (
	"context"
	"fmt"
	"strings"
)

type addressFields struct {
	Country    string `json:"COUNTRY"`
	Province   string `json:"PROVINCE"`
	Region     string `json:"REGION"`
	City       string `json:"CITY"`
	PostalCode string `json:"POSTAL_CODE"`
	Address1   string `json:"ADDRESS_1"`
	Address2   string `json:"ADDRESS_2"`
}

// GetAddress returns the owning entity's first address record as a single
// line, non-empty parts joined with ", ". No address is an empty string,
// not an error.
func (c *Client) GetAddress(ctx context.Context, entityId int) (string, error) {
	var records []addressFields
	if err := c.call(ctx, "crm.address.list", map[string]interface{}{
		"filter": map[string]int{"ENTITY_ID": entityId},
	}, &records); err != nil {
		return "", fmt.Errorf("an error occured getting the address: %w", err)
	}

	if len(records) == 0 {
		return "", nil
	}

	parts := []string{
		records[0].Country,
		records[0].Province,
		records[0].Region,
		records[0].City,
		records[0].PostalCode,
		records[0].Address1,
		records[0].Address2,
	}

	var filtered []string
	for _, part := range parts {
		if part != "" {
			filtered = append(filtered, part)
		}
	}

	return strings.Join(filtered, ", "), nil
}
