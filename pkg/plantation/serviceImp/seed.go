package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"fruitfarm/entities"
	"fruitfarm/pkg/plantation/service"
)

// DefaultSeeds spread test plantations over every continent.
var DefaultSeeds = []service.Seed{
	seed("Ecaussinnes", 50.5667, 4.1667),
	seed("Brussels", 50.8503, 4.3517),
	seed("Vesuvius", 40.8350, 14.5000),
	seed("Paris", 48.8566, 2.3522),
	seed("New York", 40.7128, -74.0060),
	seed("São Paulo", -23.5505, -46.6333),
	seed("Cairo", 30.0444, 31.2357),
	seed("Sydney", -33.8688, 151.2093),
	seed("Tokyo", 35.6895, 139.6917),
	seed("Mexico City", 19.4326, -99.1332),
	seed("Nairobi", -1.286389, 36.817223),
	seed("Singapore", 1.3521, 103.8198),
	seed("Dubai", 25.2048, 55.2708),
	seed("Mumbai", 19.0760, 72.8777),
	seed("Lima", -12.0464, -77.0428),
	seed("Buenos Aires", -34.6037, -58.3816),
	seed("Cape Town", -33.9249, 18.4241),
	seed("Lagos", 6.5244, 3.3792),
	seed("Madrid", 40.4168, -3.7038),
	seed("Istanbul", 41.0082, 28.9784),
	seed("Moscow", 55.7558, 37.6173),
	seed("London", 51.5074, -0.1278),
	seed("Seoul", 37.5665, 126.9780),
}

func seed(name string, lat, lon float64) service.Seed {
	return service.Seed{Name: name, GeoPoint: entities.GeoPoint{Latitude: lat, Longitude: lon}}
}

type SeedOptions struct {
	Attempts  int
	JitterDeg float64
	Pause     time.Duration
	Rand      Rand
}

type seeder struct {
	mu   sync.Mutex
	svc  service.PlantationService
	opts SeedOptions
	log  *zap.Logger
}

func NewSeeder(svc service.PlantationService, opts SeedOptions, log *zap.Logger) service.Seeder {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Rand == nil {
		opts.Rand = defaultRand()
	}
	return &seeder{svc: svc, opts: opts, log: log}
}

// SeedTest creates one test plantation per seed. An attempt rejected for
// spacing is retried around the seed with jittered coordinates; other
// rejections fail the seed at once. The returned lines
// report one outcome per seed, in order.
func (s *seeder) SeedTest(ctx context.Context, seeds []service.Seed) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]string, 0, len(seeds))
	for _, sd := range seeds {
		lat, lon := sd.Latitude, sd.Longitude
		var last service.Outcome
		created := false
		for attempt := 1; attempt <= s.opts.Attempts; attempt++ {
			if err := ctx.Err(); err != nil {
				return logs, err
			}
			out, err := s.svc.Create(ctx, lat, lon)
			if err != nil {
				return logs, err
			}
			last = out
			if out.Created() {
				if err := s.svc.MarkTest(ctx, out.Plantation.ID); err != nil {
					logs = append(logs, fmt.Sprintf("OK (not marked as test) %s: %s %v", sd.Name, out.Message, err))
				} else {
					logs = append(logs, fmt.Sprintf("OK %s: %s", sd.Name, out.Message))
				}
				created = true
				break
			}
			s.log.Debug("seed attempt rejected", zap.String("seed", sd.Name), zap.Int("attempt", attempt), zap.Error(out.Rejection))
			if !errors.Is(out.Rejection, service.ErrSpacingConflict) {
				break
			}
			lat = sd.Latitude + s.jitter()
			lon = sd.Longitude + s.jitter()
			if s.opts.Pause > 0 && attempt < s.opts.Attempts {
				select {
				case <-ctx.Done():
					return logs, ctx.Err()
				case <-time.After(s.opts.Pause):
				}
			}
		}
		if !created {
			logs = append(logs, fmt.Sprintf("FAILED %s: %s", sd.Name, last.Message))
		}
	}
	return logs, nil
}

func (s *seeder) jitter() float64 {
	return (s.opts.Rand.Float64()*2 - 1) * s.opts.JitterDeg
}
