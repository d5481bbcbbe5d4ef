package sync

import (
	"context"
	"log/slog"

	"github.com/systemcrm/bitrix-planfix-sync/internal/bitrix"
	"github.com/systemcrm/bitrix-planfix-sync/internal/planfix"
)

// reconcileContact finds the matching Planfix contact by phone, creating
// one when no match exists. Returns 0 when the contact could not be
// resolved - downstream consumers treat that as "no contact".
func (c *Client) reconcileContact(ctx context.Context, contact *bitrix.Contact) int {
	if contact == nil {
		return 0
	}

	var phone string
	if len(contact.Phone) > 0 {
		phone = contact.Phone[0].Value
	}

	if phone != "" {
		existingId, err := c.PlanfixClient.FindContactByPhone(ctx, phone)
		if err != nil {
			slog.Error("error searching planfix contact by phone", "phone", phone, "error", err)
		} else if existingId != 0 {
			slog.Info("planfix contact matched by phone", "planfixContactId", existingId)
			return existingId
		}
	}

	payload := &planfix.ContactPostBody{
		Template:  &planfix.TemplateRef{Id: c.Mapping.ContactTemplateId},
		Name:      contact.Name,
		Lastname:  contact.LastName,
		IsCompany: false,
		Email:     firstValue(contact.Email),
		Phones:    transformPhones(contact.Phone),
	}

	contactId, err := c.PlanfixClient.PostContact(ctx, payload)
	if err != nil {
		slog.Error("failed to create planfix contact", "bitrixContactId", contact.Id, "error", err)
		return 0
	}

	slog.Info("planfix contact created", "planfixContactId", contactId)
	return contactId
}

// transformPhones converts Bitrix multifield phones into the Planfix phone
// entry shape. Absent input yields an empty list, never null.
func transformPhones(phones []bitrix.MultiField) []planfix.Phone {
	result := []planfix.Phone{}
	for _, p := range phones {
		if p.Value == "" {
			continue
		}

		result = append(result, planfix.Phone{Number: p.Value, Type: 1})
	}

	return result
}

func firstValue(fields []bitrix.MultiField) string {
	if len(fields) == 0 {
		return ""
	}

	return fields[0].Value
}
