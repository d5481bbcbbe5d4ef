package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/systemcrm/bitrix-planfix-sync/internal/bitrix"
)

// ProcessDeal mirrors one Bitrix deal into Planfix: files, contact, company,
// a main task and its sub-task. A missing deal aborts the run; every other
// failure degrades the value it was producing and the run carries on.
func (c *Client) ProcessDeal(ctx context.Context, dealId int) error {
	slog.Info("deal processing started", "dealId", dealId)

	deal, err := c.BitrixClient.GetDeal(ctx, dealId)
	if err != nil {
		return fmt.Errorf("an error occured getting the deal: %w", err)
	}

	if deal == nil {
		slog.Warn("deal not found, aborting sync", "dealId", dealId)
		return nil
	}

	fileIds := c.syncDealFiles(ctx, deal)

	contact := c.fetchContactDetails(ctx, deal)
	company := c.fetchCompanyDetails(ctx, deal)

	assigneeId := c.resolveAssignee(ctx, deal)

	contactId := c.reconcileContact(ctx, contact)
	companyId := c.reconcileCompany(ctx, deal, company, contactId)

	description := buildTaskDescription(deal, contact, company)

	mainTaskId := c.createMainTask(ctx, description, assigneeId, companyId, fileIds)
	c.createSubTask(ctx, description, assigneeId, companyId, mainTaskId, fileIds)

	slog.Info("deal processing finished",
		"dealId", dealId,
		"contactId", contactId,
		"companyId", companyId,
		"assigneeId", assigneeId,
		"mainTaskId", mainTaskId)
	return nil
}

func (c *Client) fetchContactDetails(ctx context.Context, deal *bitrix.Deal) *bitrix.Contact {
	contactId := entityId(deal.ContactId)
	if contactId == 0 {
		return nil
	}

	contact, err := c.BitrixClient.GetContact(ctx, contactId)
	if err != nil {
		slog.Error("error fetching deal contact", "contactId", contactId, "error", err)
		return nil
	}

	return contact
}

func (c *Client) fetchCompanyDetails(ctx context.Context, deal *bitrix.Deal) *bitrix.Company {
	companyId := entityId(deal.CompanyId)
	if companyId == 0 {
		return nil
	}

	company, err := c.BitrixClient.GetCompany(ctx, companyId)
	if err != nil {
		slog.Error("error fetching deal company", "companyId", companyId, "error", err)
		return nil
	}

	return company
}

// entityId parses a Bitrix entity reference; "" and "0" both mean no link.
func entityId(raw string) int {
	if raw == "" || raw == "0" {
		return 0
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("malformed entity id in deal", "value", raw)
		return 0
	}

	return id
}
