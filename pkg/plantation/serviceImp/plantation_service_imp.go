package serviceImp

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fruitfarm/entities"
	"fruitfarm/pkg/climate"
	fruitrepo "fruitfarm/pkg/fruit/repository"
	"fruitfarm/pkg/geo"
	"fruitfarm/pkg/landcheck"
	"fruitfarm/pkg/metrics"
	"fruitfarm/pkg/plantation/repository"
	"fruitfarm/pkg/plantation/service"
)

const (
	DefaultMinDistanceKM = 2.0
	DefaultAreaMinM2     = 500.0
	DefaultAreaMaxM2     = 25000.0
)

// Options left at zero fall back to the defaults above.
type Options struct {
	MinDistanceKM float64
	AreaMinM2     float64
	AreaMaxM2     float64

	Rand Rand
	Now  func() time.Time

	// LandChecker is optional. Its answer only annotates the message.
	LandChecker      landcheck.Checker
	LandCheckTimeout time.Duration
}

type plantationSvc struct {
	// mu makes guard + append one step within this process.
	mu      sync.Mutex
	reg     repository.Registry
	catalog fruitrepo.Catalog
	guard   geo.Guard
	opts    Options
	log     *zap.Logger
}

func NewPlantationService(reg repository.Registry, catalog fruitrepo.Catalog, opts Options, log *zap.Logger) service.PlantationService {
	if opts.Rand == nil {
		opts.Rand = defaultRand()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MinDistanceKM <= 0 {
		opts.MinDistanceKM = DefaultMinDistanceKM
	}
	if opts.AreaMinM2 <= 0 || opts.AreaMaxM2 <= 0 {
		opts.AreaMinM2, opts.AreaMaxM2 = DefaultAreaMinM2, DefaultAreaMaxM2
	}
	if opts.AreaMinM2 > opts.AreaMaxM2 {
		opts.AreaMinM2, opts.AreaMaxM2 = opts.AreaMaxM2, opts.AreaMinM2
	}
	if opts.LandCheckTimeout <= 0 {
		opts.LandCheckTimeout = 5 * time.Second
	}
	return &plantationSvc{
		reg:     reg,
		catalog: catalog,
		guard:   geo.NewGuard(opts.MinDistanceKM),
		opts:    opts,
		log:     log,
	}
}

func defaultRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// NewRand returns a PCG-backed source; the same seed replays the same
// plantations.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
}

func validCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func (s *plantationSvc) reject(reason string, err error) service.Outcome {
	metrics.PlantationsRejectedTotal.WithLabelValues(reason).Inc()
	s.log.Info("plantation rejected", zap.String("reason", reason), zap.Error(err))
	return service.Outcome{Message: "Plantation not created: " + err.Error() + ".", Rejection: err}
}

func (s *plantationSvc) Create(ctx context.Context, lat, lon float64) (service.Outcome, error) {
	if !validCoordinates(lat, lon) {
		return s.reject("invalid_coordinates", fmt.Errorf("%w: (%v, %v)", service.ErrInvalidCoordinates, lat, lon)), nil
	}
	point := entities.GeoPoint{Latitude: lat, Longitude: lon}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.reg.ReadAll(ctx)
	if conflict, ok := s.guard.Check(point, snap.Plantations); !ok {
		return s.reject("spacing", &service.SpacingConflictError{
			DistanceKM: conflict.DistanceKM,
			MinKM:      s.guard.MinDistanceKM,
			Nearest:    conflict.Plantation.Geolocation.GeoPoint,
		}), nil
	}

	geoloc := climate.Locate(lat, lon)
	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return service.Outcome{}, err
	}
	compatible := climate.Compatible(geoloc.Climate, catalog)
	if len(compatible) == 0 {
		return s.reject("no_compatible_fruit", &service.NoCompatibleFruitError{Zone: geoloc.Climate}), nil
	}

	total := drawArea(s.opts.AreaMinM2, s.opts.AreaMaxM2, s.opts.Rand)
	p := entities.Plantation{
		ID:            uuid.NewString(),
		Geolocation:   geoloc,
		Climate:       geoloc.Climate,
		TotalAreaM2:   total,
		PlantedFruits: Allocate(total, compatible, s.opts.Rand),
		CreatedAt:     entities.Timestamp{Time: s.opts.Now()},
	}
	if err := s.reg.Append(ctx, p); err != nil {
		return service.Outcome{}, fmt.Errorf("append plantation: %w", err)
	}
	metrics.PlantationsCreatedTotal.Inc()
	s.log.Info("plantation created",
		zap.String("id", p.ID),
		zap.Float64("lat", lat), zap.Float64("lon", lon),
		zap.String("climate", string(p.Climate)),
		zap.Float64("area_m2", p.TotalAreaM2),
		zap.Int("fruits", len(p.PlantedFruits)),
	)

	msg := fmt.Sprintf("Plantation created at (%.4f, %.4f) in the %s zone: %.2f m² with %d fruit(s).",
		lat, lon, p.Climate, p.TotalAreaM2, len(p.PlantedFruits))
	if note := s.landNote(ctx, point); note != "" {
		msg += " " + note
	}
	return service.Outcome{Plantation: &p, Message: msg}, nil
}

func (s *plantationSvc) landNote(ctx context.Context, p entities.GeoPoint) string {
	if s.opts.LandChecker == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.LandCheckTimeout)
	defer cancel()
	res, err := s.opts.LandChecker.Check(ctx, p)
	if err != nil {
		metrics.LandCheckTotal.WithLabelValues("error").Inc()
		s.log.Warn("land check failed", zap.Float64("lat", p.Latitude), zap.Float64("lon", p.Longitude), zap.Error(err))
		return ""
	}
	if !res.OnLand {
		metrics.LandCheckTotal.WithLabelValues("sea").Inc()
		return "Note: this point does not look like dry land."
	}
	metrics.LandCheckTotal.WithLabelValues("land").Inc()
	if res.Place != "" {
		return "Near " + res.Place + "."
	}
	return ""
}

func (s *plantationSvc) List(ctx context.Context) ([]entities.Plantation, error) {
	snap := s.reg.ReadAll(ctx)
	return snap.Plantations, nil
}

func (s *plantationSvc) PurgeTest(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.reg.Retain(ctx, func(p entities.Plantation) bool { return !p.IsTest })
	if err != nil {
		return 0, err
	}
	metrics.PlantationsPurgedTotal.Add(float64(n))
	s.log.Info("test plantations purged", zap.Int("removed", n))
	return n, nil
}

func (s *plantationSvc) MarkTest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.MarkTest(ctx, id)
}

func (s *plantationSvc) Summary(ctx context.Context) (service.Summary, error) {
	snap := s.reg.ReadAll(ctx)
	sum := service.Summary{
		ByClimate:   map[entities.ClimateZone]int{},
		FruitAreaM2: map[string]int{},
	}
	for _, p := range snap.Plantations {
		sum.Count++
		if p.IsTest {
			sum.TestCount++
		}
		sum.TotalAreaM2 += p.TotalAreaM2
		sum.PlantedAreaM2 += p.PlantedArea()
		sum.ByClimate[p.Climate]++
		for name, a := range p.PlantedFruits {
			sum.FruitAreaM2[name] += a
		}
	}
	sum.TotalAreaM2 = math.Round(sum.TotalAreaM2*100) / 100
	if snap.Warning != nil {
		sum.Warning = snap.Warning.Error()
	}
	return sum, nil
}

// originTolerance is the coordinate slack, in degrees, used by FindByOrigin.
const originTolerance = 1e-4

func (s *plantationSvc) FindByOrigin(ctx context.Context, at entities.GeoPoint, created entities.Timestamp) (entities.Plantation, bool) {
	ps := s.reg.ReadAll(ctx).Plantations
	for i := len(ps) - 1; i >= 0; i-- {
		p := ps[i]
		if math.Abs(p.Geolocation.Latitude-at.Latitude) < originTolerance &&
			math.Abs(p.Geolocation.Longitude-at.Longitude) < originTolerance &&
			p.CreatedAt.Equal(created.Time) {
			return p, true
		}
	}
	return entities.Plantation{}, false
}
