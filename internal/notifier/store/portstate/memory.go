package portstate

import (
	"context"
	"sort"

	"sulfurwatch/internal/notifier/models"
	"sulfurwatch/internal/storage"
	"sulfurwatch/pkg/platform/sentinel"
)

type InMemory struct {
	coord  *storage.Coordinator
	states map[string]models.PortState
}

func NewInMemory(coord *storage.Coordinator) *InMemory {
	return &InMemory{coord: coord, states: make(map[string]models.PortState)}
}

func (s *InMemory) Set(ctx context.Context, ps *models.PortState) error {
	record := *ps
	s.coord.Write(ctx, func() {
		s.states[record.Location] = record
	})
	return nil
}

func (s *InMemory) Get(_ context.Context, location string) (*models.PortState, error) {
	var (
		found models.PortState
		ok    bool
	)
	s.coord.Read(func() {
		found, ok = s.states[location]
	})
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &found, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.PortState, error) {
	var out []*models.PortState
	s.coord.Read(func() {
		out = make([]*models.PortState, 0, len(s.states))
		for _, ps := range s.states {
			out = append(out, &ps)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out, nil
}
