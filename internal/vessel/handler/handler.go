package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sulfurwatch/internal/vessel/models"
	"sulfurwatch/pkg/platform/httputil"
	"sulfurwatch/pkg/requestcontext"

	dErrors "sulfurwatch/pkg/domain-errors"
)

// Service defines the vessel directory operations exposed over HTTP.
type Service interface {
	Register(ctx context.Context, vesselID, owner, flagState string) (*models.Vessel, error)
	Status(ctx context.Context, vesselID string) (*models.Status, error)
}

type Handler struct {
	vessels Service
	logger  *slog.Logger
}

func New(vessels Service, logger *slog.Logger) *Handler {
	return &Handler{vessels: vessels, logger: logger}
}

// Register mounts the vessel routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/vessels", h.handleRegister)
	r.Get("/vessels/{vesselID}", h.handleStatus)
}

type registerRequest struct {
	VesselID  string `json:"vessel_id"`
	Owner     string `json:"owner"`
	FlagState string `json:"flag_state"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	v, err := h.vessels.Register(ctx, req.VesselID, req.Owner, req.FlagState)
	if err != nil {
		h.logFailure(ctx, "register vessel failed", req.VesselID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vesselID := chi.URLParam(r, "vesselID")

	status, err := h.vessels.Status(ctx, vesselID)
	if err != nil {
		h.logFailure(ctx, "vessel lookup failed", vesselID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) logFailure(ctx context.Context, msg, vesselID string, err error) {
	if h.logger == nil {
		return
	}
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"vessel_id", vesselID,
		"error", err,
	)
}
