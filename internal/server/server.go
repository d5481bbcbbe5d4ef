package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// DealProcessor runs the reconciliation pipeline for one deal id.
type DealProcessor interface {
	ProcessDeal(ctx context.Context, dealId int) error
}

type Server struct {
	processor DealProcessor
}

func NewServer(processor DealProcessor) *Server {
	return &Server{processor: processor}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sync", s.handleSync)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	slog.Info("starting webhook server", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type syncResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleSync accepts the Bitrix outbound webhook carrying the deal id as a
// query parameter. The call blocks until the pipeline finishes; a degraded
// run still acknowledges with 200, only a pipeline error maps to 500.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	runId := uuid.NewString()
	log := slog.With("runId", runId)

	dealId, err := strconv.Atoi(r.URL.Query().Get("deal_id"))
	if err != nil || dealId <= 0 {
		log.Warn("webhook called without a valid deal_id", "dealId", r.URL.Query().Get("deal_id"))
		writeJSON(w, http.StatusBadRequest, syncResponse{Error: "deal_id must be a positive integer"})
		return
	}

	log.Info("webhook received", "dealId", dealId)

	if err := s.processor.ProcessDeal(r.Context(), dealId); err != nil {
		log.Error("deal processing failed", "dealId", dealId, "error", err)
		writeJSON(w, http.StatusInternalServerError, syncResponse{
			Error: fmt.Sprintf("failed to process deal %d: %v", dealId, err),
		})
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{
		Message: fmt.Sprintf("Deal %d processing completed", dealId),
	})
}

func writeJSON(w http.ResponseWriter, status int, body syncResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("writing response body", "error", err)
	}
}
