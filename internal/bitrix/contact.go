package bitrix

import (
	"context"
	"fmt"
)

type Contact struct {
	Id         string       `json:"ID"`
	Name       string       `json:"NAME"`
	LastName   string       `json:"LAST_NAME"`
	SecondName string       `json:"SECOND_NAME"`
	Email      []MultiField `json:"EMAIL"`
	Phone      []MultiField `json:"PHONE"`
}

// MultiField is Bitrix's shape for repeatable contact points (phones,
// emails).
type MultiField struct {
	Value     string `json:"VALUE"`
	ValueType string `json:"VALUE_TYPE"`
}

func (c *Client) GetContact(ctx context.Context, contactId int) (*Contact, error) {
	contact := &Contact{}
	if err := c.call(ctx, "crm.contact.get", map[string]int{"ID": contactId}, contact); err != nil {
		return nil, fmt.Errorf("an error occured getting the contact: %w", err)
	}

	if contact.Id == "" {
		return nil, nil
	}

	return contact, nil
}
