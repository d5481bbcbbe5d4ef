package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systemcrm/bitrix-planfix-sync/internal/planfix"
)

func TestResolveAssigneeFallsBackWhenNoPlanfixMatch(t *testing.T) {
	b := &bitrixStub{
		deal: map[string]interface{}{
			"ID":             "562",
			"TITLE":          "x",
			"ASSIGNED_BY_ID": "7",
		},
		users: []map[string]interface{}{{"ID": "7", "EMAIL": "unknown@example.com"}},
	}
	p := &planfixStub{}
	client := newTestClient(t, b, p)

	require.NoError(t, client.ProcessDeal(context.Background(), 562))

	require.Len(t, p.createdTasks, 2)
	assert.Equal(t, []planfix.AssigneeRef{{Id: "user:5"}}, p.createdTasks[0].Assignees.Users)
}

func TestResolveAssigneeFallsBackWhenUserHasNoEmail(t *testing.T) {
	b := &bitrixStub{
		deal: map[string]interface{}{
			"ID":             "563",
			"TITLE":          "x",
			"ASSIGNED_BY_ID": "8",
		},
		users: []map[string]interface{}{{"ID": "8"}},
	}
	p := &planfixStub{}
	client := newTestClient(t, b, p)

	require.NoError(t, client.ProcessDeal(context.Background(), 563))

	require.Len(t, p.createdTasks, 2)
	assert.Equal(t, []planfix.AssigneeRef{{Id: "user:5"}}, p.createdTasks[0].Assignees.Users)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	assert.Error(t, cfg.Validate())

	cfg.Bitrix.Creds.WebhookUrl = "https://portal.example.com/rest/1/token"
	cfg.Bitrix.Creds.AdminLogin = "admin@example.com"
	cfg.Bitrix.Creds.AdminPassword = "secret"
	cfg.Planfix.Creds.ApiUrl = "https://example.planfix.com/rest"
	cfg.Planfix.Creds.AuthToken = "tok"
	assert.Error(t, cfg.Validate(), "default assignee id is required")

	cfg.Planfix.DefaultAssigneeId = 5
	assert.NoError(t, cfg.Validate())
}
