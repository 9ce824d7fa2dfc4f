package worker

import (
	"context"
	"log/slog"

	audit "sulfurwatch/pkg/platform/audit"
)

// Worker drains events from a channel into a sink until the channel is
// closed. Sink failures are logged and the event is dropped.
type Worker struct {
	sink   audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
	failed func()
}

func NewWorker(sink audit.Sink, inbox <-chan audit.Event, logger *slog.Logger, failed func()) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger, failed: failed}
}

// Run returns once the inbox is closed and drained.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		if err := w.sink.Write(ctx, event); err != nil {
			if w.failed != nil {
				w.failed()
			}
			if w.logger != nil {
				w.logger.WarnContext(ctx, "event delivery failed",
					"type", event.Type,
					"vessel_id", event.VesselID,
					"error", err,
				)
			}
		}
	}
}
