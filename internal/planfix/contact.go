package planfix

import (
	"context"
	"fmt"
)

// directory lookups share one query shape: filtered contact/list returning
// ids only, first match wins, zero matches means id 0.

func (c *Client) FindContactByPhone(ctx context.Context, phone string) (int, error) {
	return c.findContact(ctx, Filter{
		Type:     FilterContactPhone,
		Operator: "equal",
		Value:    phone,
	})
}

func (c *Client) FindCompanyByName(ctx context.Context, name string) (int, error) {
	return c.findContact(ctx, Filter{
		Type:     FilterContactName,
		Operator: "equal",
		Value:    name,
	})
}

// FindCompanyByTaxId matches on the custom tax id field.
func (c *Client) FindCompanyByTaxId(ctx context.Context, taxIdFieldId int, inn string) (int, error) {
	return c.findContact(ctx, Filter{
		Type:     FilterContactCustom,
		Operator: "equal",
		Value:    inn,
		Field:    &taxIdFieldId,
	})
}

func (c *Client) findContact(ctx context.Context, filter Filter) (int, error) {
	body := ListRequest{
		Offset:   0,
		PageSize: 100,
		Fields:   "id",
		Filters:  []Filter{filter},
	}

	contacts := ContactsResp{}
	if err := c.apiRequest(ctx, "contact/list", &body, &contacts); err != nil {
		return 0, fmt.Errorf("an error occured searching the contact directory: %w", err)
	}

	if len(contacts.Contacts) == 0 {
		return 0, nil
	}

	return contacts.Contacts[0].Id, nil
}

// PostContact creates a directory record (contact or company, depending on
// the body's isCompany flag), or updates one when the body carries an id.
func (c *Client) PostContact(ctx context.Context, payload *ContactPostBody) (int, error) {
	resp := PostResp{}
	if err := c.apiRequest(ctx, "contact/", payload, &resp); err != nil {
		return 0, fmt.Errorf("an error occured creating the contact: %w", err)
	}

	return resp.Id, nil
}
