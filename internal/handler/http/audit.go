package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AuditHandler interface {
	ListByTarget(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	auditRepo audit.AuditRepository
}

func NewAuditHandler(auditRepo audit.AuditRepository) AuditHandler {
	return &AuditHandlerImpl{auditRepo: auditRepo}
}

type auditEntryResponse struct {
	ID         string          `json:"id"`
	TargetType string          `json:"target_type"`
	TargetID   string          `json:"target_id"`
	Actor      string          `json:"actor"`
	Reason     string          `json:"reason"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

func (h *AuditHandlerImpl) ListByTarget(w http.ResponseWriter, r *http.Request) {
	targetType := chi.URLParam(r, "targetType")
	targetID := chi.URLParam(r, "targetID")
	if targetType == "" || targetID == "" {
		response.BadRequest(w, "Target type and ID are required", nil)
		return
	}

	entries, err := h.auditRepo.ListByTarget(r.Context(), audit.TargetType(targetType), targetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, auditEntryResponse{
			ID:         e.ID,
			TargetType: string(e.TargetType),
			TargetID:   e.TargetID,
			Actor:      e.Actor,
			Reason:     e.Reason,
			Before:     e.Before,
			After:      e.After,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		})
	}

	response.Success(w, result)
}
