// Package memory holds process-local stores used when no shared backend is configured.
package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
)

// LocationStore keeps authorized locations in insertion order behind a RWMutex.
// Contents are lost on restart.
type LocationStore struct {
	mu        sync.RWMutex
	locations []location.AuthorizedLocation
}

func NewLocationStore(seed []location.AuthorizedLocation) *LocationStore {
	locs := make([]location.AuthorizedLocation, len(seed))
	copy(locs, seed)
	return &LocationStore{locations: locs}
}

// List implements location.LocationStore.
func (s *LocationStore) List(ctx context.Context) ([]location.AuthorizedLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]location.AuthorizedLocation, len(s.locations))
	copy(out, s.locations)
	return out, nil
}

// Add implements location.LocationStore.
func (s *LocationStore) Add(ctx context.Context, loc location.AuthorizedLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locations = append(s.locations, loc)
	return nil
}

// Remove implements location.LocationStore.
func (s *LocationStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, loc := range s.locations {
		if loc.ID == id {
			s.locations = append(s.locations[:i], s.locations[i+1:]...)
			return nil
		}
	}
	return location.ErrLocationNotFound
}
