package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/pkg/platform/httputil"
	platformstrings "sulfurwatch/pkg/platform/strings"
	"sulfurwatch/pkg/requestcontext"

	dErrors "sulfurwatch/pkg/domain-errors"
)

// Service defines the notifier operations exposed over HTTP.
type Service interface {
	SetPortState(ctx context.Context, location, label string) (*models.PortState, error)
	GetPortState(ctx context.Context, location string) (string, error)
	ListPortStates(ctx context.Context) ([]*models.PortState, error)
	ReportNonCompliance(ctx context.Context, vesselID, message, flagState, portState string) (*models.Alert, error)
	ListNotifications(ctx context.Context) ([]*models.Alert, error)
	ListForVessels(ctx context.Context, vesselIDs []string) ([]*models.Alert, error)
}

type Handler struct {
	notifier Service
	logger   *slog.Logger
}

func New(notifier Service, logger *slog.Logger) *Handler {
	return &Handler{notifier: notifier, logger: logger}
}

// Register mounts the port-state and alert routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/port-states", h.handleSetPortState)
	r.Get("/port-states", h.handleGetPortState)
	r.Post("/alerts", h.handleReport)
	r.Get("/alerts", h.handleListAlerts)
}

type setPortStateRequest struct {
	Location  string `json:"location"`
	PortState string `json:"port_state"`
}

type reportRequest struct {
	VesselID  string `json:"vessel_id"`
	Message   string `json:"message"`
	FlagState string `json:"flag_state"`
	PortState string `json:"port_state"`
}

type alertsResponse struct {
	Alerts []*models.Alert `json:"alerts"`
}

type portStatesResponse struct {
	PortStates []*models.PortState `json:"port_states"`
}

func (h *Handler) handleSetPortState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req setPortStateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	ps, err := h.notifier.SetPortState(ctx, req.Location, req.PortState)
	if err != nil {
		h.logFailure(ctx, "set port state failed", err, "location", req.Location)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ps)
}

// handleGetPortState answers a single location lookup, or lists every
// assignment when no location is given.
func (h *Handler) handleGetPortState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if !query.Has("location") {
		states, err := h.notifier.ListPortStates(ctx)
		if err != nil {
			h.logFailure(ctx, "list port states failed", err)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, portStatesResponse{PortStates: states})
		return
	}

	location := query.Get("location")
	label, err := h.notifier.GetPortState(ctx, location)
	if err != nil {
		h.logFailure(ctx, "get port state failed", err, "location", location)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.PortState{Location: location, PortState: label})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reportRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	alert, err := h.notifier.ReportNonCompliance(ctx, req.VesselID, req.Message, req.FlagState, req.PortState)
	if err != nil {
		h.logFailure(ctx, "report non-compliance failed", err, "vessel_id", req.VesselID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, alert)
}

func (h *Handler) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		alerts []*models.Alert
		err    error
	)
	if vesselIDs := vesselFilter(r); len(vesselIDs) > 0 {
		alerts, err = h.notifier.ListForVessels(ctx, vesselIDs)
	} else {
		alerts, err = h.notifier.ListNotifications(ctx)
	}
	if err != nil {
		h.logFailure(ctx, "list alerts failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, alertsResponse{Alerts: alerts})
}

// vesselFilter accepts repeated vessel_id parameters and comma-separated lists.
func vesselFilter(r *http.Request) []string {
	return platformstrings.SplitList(r.URL.Query()["vessel_id"])
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	if h.logger == nil {
		return
	}
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	args := append([]any{"request_id", requestcontext.RequestID(ctx), "error", err}, attrs...)
	h.logger.Log(ctx, level, msg, args...)
}
