package sync

import (
	"context"
	"log/slog"

	"github.com/systemcrm/bitrix-planfix-sync/internal/bitrix"
	"github.com/systemcrm/bitrix-planfix-sync/internal/planfix"
)

// reconcileCompany finds the matching Planfix company, preferring a tax id
// lookup when the Bitrix company carries requisites and falling back to a
// name lookup otherwise. When neither matches, it creates the company with
// its address, requisite custom fields, and a back-reference to the
// already-resolved contact. Returns 0 when the company stays unresolved.
func (c *Client) reconcileCompany(ctx context.Context, deal *bitrix.Deal, company *bitrix.Company, contactId int) int {
	if company == nil {
		return 0
	}

	bitrixCompanyId := entityId(deal.CompanyId)

	address, err := c.BitrixClient.GetAddress(ctx, bitrixCompanyId)
	if err != nil {
		slog.Error("error fetching company address", "companyId", bitrixCompanyId, "error", err)
	}

	requisite, bank, err := c.BitrixClient.GetRequisites(ctx, bitrixCompanyId)
	if err != nil {
		slog.Error("error fetching company requisites", "companyId", bitrixCompanyId, "error", err)
		requisite, bank = nil, nil
	}

	var existingId int
	if requisite != nil {
		existingId, err = c.PlanfixClient.FindCompanyByTaxId(ctx, c.Mapping.TaxIdFieldId, requisite.Inn)
	} else {
		existingId, err = c.PlanfixClient.FindCompanyByName(ctx, company.Title)
	}

	if err != nil {
		slog.Error("error searching planfix company", "companyId", bitrixCompanyId, "error", err)
	} else if existingId != 0 {
		slog.Info("planfix company matched", "planfixCompanyId", existingId)
		return existingId
	}

	payload := &planfix.ContactPostBody{
		Template:        &planfix.TemplateRef{Id: c.Mapping.CompanyTemplateId},
		Name:            company.Title,
		Address:         address,
		Email:           firstValue(company.Email),
		IsCompany:       true,
		Phones:          transformPhones(company.Phone),
		CustomFieldData: c.requisiteCustomFields(requisite, bank),
	}

	if contactId != 0 {
		payload.Contacts = []planfix.IdHolder{{Id: contactId}}
	}

	companyId, err := c.PlanfixClient.PostContact(ctx, payload)
	if err != nil {
		slog.Error("failed to create planfix company", "bitrixCompanyId", bitrixCompanyId, "error", err)
		return 0
	}

	slog.Info("planfix company created", "planfixCompanyId", companyId)
	return companyId
}

// requisiteCustomFields builds the legal-detail custom fields; each one is
// present only when the source record actually carries a value.
func (c *Client) requisiteCustomFields(requisite *bitrix.Requisite, bank *bitrix.BankDetail) []planfix.CustomFieldValue {
	var fields []planfix.CustomFieldValue

	if requisite != nil {
		if requisite.Inn != "" {
			fields = append(fields, customField(c.Mapping.TaxIdFieldId, requisite.Inn))
		}
		if requisite.Kpp != "" {
			fields = append(fields, customField(c.Mapping.KppFieldId, requisite.Kpp))
		}
		if requisite.Ogrn != "" {
			fields = append(fields, customField(c.Mapping.OgrnFieldId, requisite.Ogrn))
		}
	}

	if bank != nil {
		if bank.Bik != "" {
			fields = append(fields, customField(c.Mapping.BikFieldId, bank.Bik))
		}
		if bank.AccountNum != "" {
			fields = append(fields, customField(c.Mapping.AccountNumFieldId, bank.AccountNum))
		}
	}

	return fields
}

func customField(fieldId int, value interface{}) planfix.CustomFieldValue {
	return planfix.CustomFieldValue{
		Field: planfix.FieldRef{Id: fieldId},
		Value: value,
	}
}
