package sync

import (
	"context"
	"log/slog"

	"github.com/systemcrm/bitrix-planfix-sync/internal/bitrix"
)

// resolveAssignee maps the deal's responsible Bitrix user to a Planfix user
// id by email. Every miss along the chain - no responsible id, no user, no
// email, no Planfix account - lands on the configured default assignee.
func (c *Client) resolveAssignee(ctx context.Context, deal *bitrix.Deal) int {
	defaultId := c.Cfg.Planfix.DefaultAssigneeId

	userId := entityId(deal.AssignedById)
	if userId == 0 {
		slog.Info("deal has no responsible user, using default assignee", "defaultAssigneeId", defaultId)
		return defaultId
	}

	user, err := c.BitrixClient.GetUser(ctx, userId)
	if err != nil {
		slog.Error("error fetching responsible user", "userId", userId, "error", err)
		return defaultId
	}

	if user == nil || user.Email == "" {
		slog.Warn("responsible user has no email, using default assignee", "userId", userId)
		return defaultId
	}

	planfixUserId, err := c.PlanfixClient.FindUserByEmail(ctx, user.Email)
	if err != nil {
		slog.Warn("no planfix user matched responsible email, using default assignee",
			"userId", userId, "email", user.Email, "error", err)
		return defaultId
	}

	slog.Info("responsible user resolved", "userId", userId, "email", user.Email, "planfixUserId", planfixUserId)
	return planfixUserId
}
