package service

import (
	"context"
	"errors"
	"fmt"

	"fruitfarm/entities"
)

var (
	ErrSpacingConflict    = errors.New("too close to an existing plantation")
	ErrNoCompatibleFruit  = errors.New("no compatible fruit for climate zone")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// SpacingConflictError carries the nearest offending plantation.
type SpacingConflictError struct {
	DistanceKM float64
	MinKM      float64
	Nearest    entities.GeoPoint
}

func (e *SpacingConflictError) Error() string {
	return fmt.Sprintf("too close to an existing plantation: %.3f km from (%.4f, %.4f), minimum spacing is %.1f km",
		e.DistanceKM, e.Nearest.Latitude, e.Nearest.Longitude, e.MinKM)
}

func (e *SpacingConflictError) Unwrap() error { return ErrSpacingConflict }

type NoCompatibleFruitError struct {
	Zone entities.ClimateZone
}

func (e *NoCompatibleFruitError) Error() string {
	return fmt.Sprintf("no fruit in the catalog grows in the %s zone", e.Zone)
}

func (e *NoCompatibleFruitError) Unwrap() error { return ErrNoCompatibleFruit }

// Outcome is the result of one creation attempt. Plantation is nil when the
// attempt was rejected; Rejection then says why. Message is always set.
type Outcome struct {
	Plantation *entities.Plantation
	Message    string
	Rejection  error
}

func (o Outcome) Created() bool { return o.Plantation != nil }

type Summary struct {
	Count         int                          `json:"count"`
	TestCount     int                          `json:"test_count"`
	TotalAreaM2   float64                      `json:"total_area_m2"`
	PlantedAreaM2 int                          `json:"planted_area_m2"`
	ByClimate     map[entities.ClimateZone]int `json:"by_climate"`
	FruitAreaM2   map[string]int               `json:"fruit_area_m2"`
	Warning       string                       `json:"warning,omitempty"`
}

// Seed is a named starting coordinate for test data.
type Seed struct {
	Name string
	entities.GeoPoint
}

type PlantationService interface {
	// Create never returns an error for recoverable conditions; those are
	// reported through Outcome.Rejection. The error is reserved for storage
	// failures.
	Create(ctx context.Context, lat, lon float64) (Outcome, error)
	List(ctx context.Context) ([]entities.Plantation, error)
	PurgeTest(ctx context.Context) (int, error)
	MarkTest(ctx context.Context, id string) error
	Summary(ctx context.Context) (Summary, error)
	// FindByOrigin matches a record by coordinates and creation time, for
	// records written before ids existed.
	FindByOrigin(ctx context.Context, at entities.GeoPoint, created entities.Timestamp) (entities.Plantation, bool)
}

type Seeder interface {
	SeedTest(ctx context.Context, seeds []Seed) ([]string, error)
}
