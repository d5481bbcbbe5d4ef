package bitrix

import (
	"context"
	"fmt"
)

type Company struct {
	Id      string       `json:"ID"`
	Title   string       `json:"TITLE"`
	Address string       `json:"ADDRESS"`
	Email   []MultiField `json:"EMAIL"`
	Phone   []MultiField `json:"PHONE"`
}

func (c *Client) GetCompany(ctx context.Context, companyId int) (*Company, error) {
	company := &Company{}
	if err := c.call(ctx, "crm.company.get", map[string]int{"ID": companyId}, company); err != nil {
		return nil, fmt.Errorf("an error occured getting the company: %w", err)
	}

	if company.Id == "" {
		return nil, nil
	}

	return company, nil
}
