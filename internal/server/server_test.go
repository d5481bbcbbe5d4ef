package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProcessor struct {
	err     error
	dealIds []int
}

func (p *stubProcessor) ProcessDeal(_ context.Context, dealId int) error {
	p.dealIds = append(p.dealIds, dealId)
	return p.err
}

func doSync(t *testing.T, processor *stubProcessor, target string) (*httptest.ResponseRecorder, syncResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	NewServer(processor).Handler().ServeHTTP(rec, req)

	var body syncResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	}
	return rec, body
}

func TestHandleSyncSuccess(t *testing.T) {
	processor := &stubProcessor{}
	rec, body := doSync(t, processor, "/api/v1/sync?deal_id=123")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Deal 123 processing completed", body.Message)
	assert.Empty(t, body.Error)
	assert.Equal(t, []int{123}, processor.dealIds)
}

func TestHandleSyncProcessorError(t *testing.T) {
	processor := &stubProcessor{err: errors.New("planfix unavailable")}
	rec, body := doSync(t, processor, "/api/v1/sync?deal_id=7")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, body.Error, "failed to process deal 7")
	assert.Contains(t, body.Error, "planfix unavailable")
}

func TestHandleSyncInvalidDealId(t *testing.T) {
	for _, target := range []string{
		"/api/v1/sync",
		"/api/v1/sync?deal_id=abc",
		"/api/v1/sync?deal_id=0",
		"/api/v1/sync?deal_id=-4",
	} {
		processor := &stubProcessor{}
		rec, body := doSync(t, processor, target)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "deal_id must be a positive integer", body.Error, target)
		assert.Empty(t, processor.dealIds, target)
	}
}

func TestHandlerRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync?deal_id=1", nil)
	NewServer(&stubProcessor{}).Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
