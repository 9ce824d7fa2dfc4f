// Package consumer dispatches consumed audit events to per-category handlers.
package consumer

import (
	"context"
	"log/slog"

	audit "sulfurwatch/pkg/platform/audit"
)

// Handler processes one consumed event.
type Handler interface {
	Handle(ctx context.Context, event audit.Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event audit.Event) error

func (f HandlerFunc) Handle(ctx context.Context, event audit.Event) error {
	return f(ctx, event)
}

// Router dispatches events to the handler registered for their category.
type Router struct {
	handlers map[audit.EventCategory]Handler
	fallback Handler
	logger   *slog.Logger
}

// NewRouter creates a category router with an optional fallback handler.
func NewRouter(logger *slog.Logger, fallback Handler) *Router {
	return &Router{
		handlers: make(map[audit.EventCategory]Handler),
		fallback: fallback,
		logger:   logger,
	}
}

// Register adds a handler for a specific category.
func (r *Router) Register(category audit.EventCategory, handler Handler) {
	r.handlers[category] = handler
}

// Handle routes the event to the appropriate category handler.
func (r *Router) Handle(ctx context.Context, event audit.Event) error {
	handler, ok := r.handlers[event.Category()]
	if !ok {
		if r.fallback != nil {
			return r.fallback.Handle(ctx, event)
		}
		if r.logger != nil {
			r.logger.Warn("no handler for event category, skipping",
				"category", event.Category(),
				"type", event.Type,
				"vessel_id", event.VesselID,
			)
		}
		return nil
	}
	return handler.Handle(ctx, event)
}
