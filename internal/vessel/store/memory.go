package store

import (
	"context"

	"sulfurwatch/internal/storage"
	"sulfurwatch/internal/vessel/models"
	"sulfurwatch/pkg/platform/sentinel"
)

// InMemory stores vessels in a map guarded by a shared storage coordinator.
type InMemory struct {
	coord   *storage.Coordinator
	vessels map[string]models.Vessel
}

func NewInMemory(coord *storage.Coordinator) *InMemory {
	return &InMemory{coord: coord, vessels: make(map[string]models.Vessel)}
}

// Save inserts or overwrites the record, keeping the original registration time.
func (s *InMemory) Save(ctx context.Context, v *models.Vessel) error {
	record := *v
	s.coord.Write(ctx, func() {
		if existing, ok := s.vessels[record.ID]; ok {
			record.RegisteredAt = existing.RegisteredAt
		}
		s.vessels[record.ID] = record
	})
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.Vessel, error) {
	var (
		found models.Vessel
		ok    bool
	)
	s.coord.Read(func() {
		found, ok = s.vessels[id]
	})
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &found, nil
}
