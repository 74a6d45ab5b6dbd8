package location

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type LocationServiceImpl struct {
	location.LocationStore
	geofence config.GeofencePolicy
	clock    calendar.Clock
	audit    *audit.Recorder
}

func NewLocationService(store location.LocationStore, geofence config.GeofencePolicy, clock calendar.Clock, recorder *audit.Recorder) location.LocationService {
	return &LocationServiceImpl{
		LocationStore: store,
		geofence:      geofence,
		clock:         clock,
		audit:         recorder,
	}
}

// SeedLocations converts policy seeds into registry entries with fresh IDs.
func SeedLocations(seeds []config.LocationSeed, clock calendar.Clock) []location.AuthorizedLocation {
	out := make([]location.AuthorizedLocation, 0, len(seeds))
	now := clock.Now()
	for _, s := range seeds {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		out = append(out, location.AuthorizedLocation{
			ID:        id.String(),
			Name:      s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			CreatedAt: now,
		})
	}
	return out
}

// IsAuthorized implements location.LocationService.
func (s *LocationServiceImpl) IsAuthorized(ctx context.Context, latitude, longitude float64) (bool, error) {
	locs, err := s.LocationStore.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list authorized locations: %w", err)
	}
	for _, loc := range locs {
		if s.distance(loc, latitude, longitude) < s.geofence.Threshold {
			return true, nil
		}
	}
	return false, nil
}

// Authorize implements location.LocationService.
func (s *LocationServiceImpl) Authorize(ctx context.Context, latitude, longitude float64) error {
	ok, err := s.IsAuthorized(ctx, latitude, longitude)
	if err != nil {
		return err
	}
	if !ok {
		return location.ErrUnauthorizedLocation
	}
	return nil
}

func (s *LocationServiceImpl) distance(loc location.AuthorizedLocation, latitude, longitude float64) float64 {
	if s.geofence.Mode == config.DistanceHaversine {
		return utils.CalculateHaversineDistance(loc.Latitude, loc.Longitude, latitude, longitude)
	}
	return utils.CalculatePlanarDistance(loc.Latitude, loc.Longitude, latitude, longitude)
}

// Add implements location.LocationService.
func (s *LocationServiceImpl) Add(ctx context.Context, actorID string, req location.AddLocationRequest) (location.AuthorizedLocation, error) {
	if err := req.Validate(); err != nil {
		return location.AuthorizedLocation{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return location.AuthorizedLocation{}, fmt.Errorf("failed to generate id: %w", err)
	}
	loc := location.AuthorizedLocation{
		ID:        id.String(),
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		CreatedAt: s.clock.Now(),
	}
	if err := s.LocationStore.Add(ctx, loc); err != nil {
		return location.AuthorizedLocation{}, err
	}

	slog.Info("Authorized location added", "location_id", loc.ID, "name", loc.Name, "by", actorID)
	s.audit.Record(ctx, actorID, "location.add", map[string]any{"location_id": loc.ID, "name": loc.Name})
	return loc, nil
}

// Remove implements location.LocationService.
func (s *LocationServiceImpl) Remove(ctx context.Context, actorID, id string) error {
	if err := s.LocationStore.Remove(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, "location.remove", map[string]any{"location_id": id})
	return nil
}
