package store

import (
	"context"

	"sulfurwatch/internal/emission/models"
	"sulfurwatch/internal/storage"
)

// InMemory keeps one append-only slice of readings per vessel.
type InMemory struct {
	coord    *storage.Coordinator
	readings map[string][]models.Reading
}

func NewInMemory(coord *storage.Coordinator) *InMemory {
	return &InMemory{coord: coord, readings: make(map[string][]models.Reading)}
}

func (s *InMemory) Append(ctx context.Context, r *models.Reading) error {
	record := *r
	s.coord.Write(ctx, func() {
		s.readings[record.VesselID] = append(s.readings[record.VesselID], record)
	})
	return nil
}

// ListByVessel returns the vessel's readings oldest first. Unknown vessels
// yield an empty slice.
func (s *InMemory) ListByVessel(_ context.Context, vesselID string) ([]*models.Reading, error) {
	var out []*models.Reading
	s.coord.Read(func() {
		history := s.readings[vesselID]
		out = make([]*models.Reading, 0, len(history))
		for i := range history {
			r := history[i]
			out = append(out, &r)
		}
	})
	return out, nil
}
