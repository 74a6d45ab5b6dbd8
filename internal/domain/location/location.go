package location

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// AuthorizedLocation is a geo-point employees may clock in or out near.
type AuthorizedLocation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrLocationNotFound     = apperror.New(apperror.KindNotFound, "authorized location not found")
	ErrUnauthorizedLocation = apperror.New(apperror.KindUnauthorizedLocation, "you are not at an authorized location")
)

type AddLocationRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *AddLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil {
		errs.Add("latitude", "latitude is required")
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude == nil {
		errs.Add("longitude", "longitude is required")
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	return errs.Err()
}

// LocationStore persists the registry. Implementations must be safe for
// concurrent use.
type LocationStore interface {
	List(ctx context.Context) ([]AuthorizedLocation, error)
	Add(ctx context.Context, loc AuthorizedLocation) error
	Remove(ctx context.Context, id string) error
}

type LocationService interface {
	IsAuthorized(ctx context.Context, latitude, longitude float64) (bool, error)
	// Authorize returns ErrUnauthorizedLocation when the point is outside every fence.
	Authorize(ctx context.Context, latitude, longitude float64) error
	List(ctx context.Context) ([]AuthorizedLocation, error)
	Add(ctx context.Context, actorID string, req AddLocationRequest) (AuthorizedLocation, error)
	Remove(ctx context.Context, actorID, id string) error
}
