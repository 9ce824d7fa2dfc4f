package alert

import (
	"context"
	"slices"

	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/internal/storage"
)

// InMemory is the append-only alert log held in process memory.
type InMemory struct {
	coord  *storage.Coordinator
	alerts []models.Alert
}

func NewInMemory(coord *storage.Coordinator) *InMemory {
	return &InMemory{coord: coord}
}

func (s *InMemory) Append(ctx context.Context, a *models.Alert) error {
	record := *a
	s.coord.Write(ctx, func() {
		s.alerts = append(s.alerts, record)
	})
	return nil
}

// List returns every alert in append order.
func (s *InMemory) List(_ context.Context) ([]*models.Alert, error) {
	var out []*models.Alert
	s.coord.Read(func() {
		out = make([]*models.Alert, 0, len(s.alerts))
		for i := range s.alerts {
			a := s.alerts[i]
			out = append(out, &a)
		}
	})
	return out, nil
}

// ListByVessels returns alerts raised against any of vesselIDs, in append order.
func (s *InMemory) ListByVessels(_ context.Context, vesselIDs []string) ([]*models.Alert, error) {
	var out []*models.Alert
	s.coord.Read(func() {
		out = make([]*models.Alert, 0)
		for i := range s.alerts {
			if slices.Contains(vesselIDs, s.alerts[i].VesselID) {
				a := s.alerts[i]
				out = append(out, &a)
			}
		}
	})
	return out, nil
}
