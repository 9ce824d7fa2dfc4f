package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sulfurwatch/internal/emission/models"
	"sulfurwatch/pkg/platform/httputil"
	"sulfurwatch/pkg/requestcontext"

	dErrors "sulfurwatch/pkg/domain-errors"
)

// Service defines the ledger operations exposed over HTTP.
type Service interface {
	RecordEmission(ctx context.Context, vesselID string, sulfurContent uint64, position string, isECA bool) (*models.Reading, error)
	GetHistory(ctx context.Context, vesselID string) ([]*models.Reading, error)
}

type Handler struct {
	ledger Service
	logger *slog.Logger
}

func New(ledger Service, logger *slog.Logger) *Handler {
	return &Handler{ledger: ledger, logger: logger}
}

// Register mounts the ledger routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/emissions", h.handleRecord)
	r.Get("/vessels/{vesselID}/emissions", h.handleHistory)
}

// recordRequest has no timestamp or compliance field: both are assigned by
// the server.
type recordRequest struct {
	VesselID      string  `json:"vessel_id"`
	SulfurContent *uint64 `json:"sulfur_content"`
	Position      string  `json:"position"`
	IsECA         bool    `json:"is_eca"`
}

type historyResponse struct {
	VesselID string            `json:"vessel_id"`
	Readings []*models.Reading `json:"readings"`
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.SulfurContent == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "sulfur_content is required"))
		return
	}

	reading, err := h.ledger.RecordEmission(ctx, req.VesselID, *req.SulfurContent, req.Position, req.IsECA)
	if err != nil {
		h.logFailure(ctx, "record emission request failed", req.VesselID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, reading)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vesselID := chi.URLParam(r, "vesselID")

	readings, err := h.ledger.GetHistory(ctx, vesselID)
	if err != nil {
		h.logFailure(ctx, "history request failed", vesselID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, historyResponse{VesselID: vesselID, Readings: readings})
}

func (h *Handler) logFailure(ctx context.Context, msg, vesselID string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"vessel_id", vesselID,
		"error", err,
	)
}
