package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/systemcrm/bitrix-planfix-sync/internal/bitrix"
	"github.com/systemcrm/bitrix-planfix-sync/internal/planfix"
)

// createMainTask submits the "prepare and send contract & invoice" task.
// Returns 0 on failure so the caller can skip the dependent sub-task.
func (c *Client) createMainTask(ctx context.Context, description string, assigneeId, companyId int, fileIds map[string][]int) int {
	var customFields []planfix.CustomFieldValue
	for _, m := range c.Mapping.FileFields {
		if ids, ok := fileIds[m.SourceKey]; ok {
			customFields = append(customFields, customField(m.TargetFieldId, ids))
		}
	}

	payload := &planfix.TaskPostBody{
		Name:            c.Mapping.MainTaskName,
		Description:     description,
		Assignees:       assignees(assigneeId),
		Counterparty:    counterparty(companyId),
		Template:        &planfix.TemplateRef{Id: c.Mapping.MainTaskTemplateId},
		CustomFieldData: customFields,
	}

	taskId, err := c.PlanfixClient.PostTask(ctx, payload)
	if err != nil {
		slog.Error("failed to create main task", "error", err)
		return 0
	}

	slog.Info("main task created", "taskId", taskId)
	return taskId
}

// createSubTask submits the "prepare design" sub-task. It only exists as a
// child of the main task, so a missing main task id skips it entirely.
func (c *Client) createSubTask(ctx context.Context, description string, assigneeId, companyId, mainTaskId int, fileIds map[string][]int) {
	if mainTaskId == 0 {
		slog.Warn("skipping sub-task creation, main task was not created")
		return
	}

	customFields := []planfix.CustomFieldValue{
		customField(c.Mapping.SubTaskInfoFieldId, c.Mapping.SubTaskInfoValue),
	}

	if contractIds, ok := fileIds[c.Mapping.ContractSourceKey]; ok {
		customFields = append(customFields, customField(c.Mapping.ContractFieldId, contractIds))
	}

	payload := &planfix.TaskPostBody{
		Name:            c.Mapping.SubTaskName,
		Description:     description,
		Assignees:       assignees(assigneeId),
		Counterparty:    counterparty(companyId),
		Template:        &planfix.TemplateRef{Id: c.Mapping.SubTaskTemplateId},
		Parent:          &planfix.IdHolder{Id: mainTaskId},
		CustomFieldData: customFields,
	}

	taskId, err := c.PlanfixClient.PostTask(ctx, payload)
	if err != nil {
		slog.Error("failed to create sub-task", "mainTaskId", mainTaskId, "error", err)
		return
	}

	slog.Info("sub-task created", "taskId", taskId, "mainTaskId", mainTaskId)
}

// buildTaskDescription assembles the free-text summary both tasks share.
// Pure string assembly - sections for the contact and company appear only
// when those details were resolved.
func buildTaskDescription(deal *bitrix.Deal, contact *bitrix.Contact, company *bitrix.Company) string {
	var b strings.Builder

	title := deal.Title
	if title == "" {
		title = "Без названия"
	}
	fmt.Fprintf(&b, "Сделка Bitrix24: %s\n", title)

	if contact != nil {
		fmt.Fprintf(&b, "Контакт: %s %s\n", contact.Name, contact.LastName)

		if emails := joinValues(contact.Email); emails != "" {
			fmt.Fprintf(&b, "Email: %s\n", emails)
		}

		if phones := joinValues(contact.Phone); phones != "" {
			fmt.Fprintf(&b, "Телефон: %s\n", phones)
		}
	}

	if company != nil {
		companyTitle := company.Title
		if companyTitle == "" {
			companyTitle = "Неизвестная компания"
		}
		fmt.Fprintf(&b, "Компания: %s\n", companyTitle)

		if company.Address != "" {
			fmt.Fprintf(&b, "Адрес компании: %s\n", company.Address)
		}
	}

	return b.String()
}

func joinValues(fields []bitrix.MultiField) string {
	var values []string
	for _, f := range fields {
		if f.Value != "" {
			values = append(values, f.Value)
		}
	}

	return strings.Join(values, ", ")
}

func assignees(assigneeId int) planfix.Assignees {
	return planfix.Assignees{
		Users: []planfix.AssigneeRef{
			{Id: fmt.Sprintf("user:%d", assigneeId)},
		},
	}
}

func counterparty(companyId int) planfix.Counterparty {
	if companyId == 0 {
		return planfix.Counterparty{}
	}

	return planfix.Counterparty{Id: &companyId}
}
