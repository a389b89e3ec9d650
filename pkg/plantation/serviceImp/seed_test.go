package serviceImp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fruitfarm/entities"
	"fruitfarm/pkg/plantation/service"
)

func TestDefaultSeedsAreSpreadOut(t *testing.T) {
	require.Len(t, DefaultSeeds, 23)
	names := map[string]bool{}
	for _, s := range DefaultSeeds {
		require.False(t, names[s.Name], s.Name)
		names[s.Name] = true
	}
}

func TestSeedTestMarksCreatedPlantations(t *testing.T) {
	svc, _ := newService(t, everywhere("pommes"), Options{})
	seeder := NewSeeder(svc, SeedOptions{Attempts: 3, JitterDeg: 0.2, Rand: NewRand(7)}, zap.NewNop())
	ctx := context.Background()

	logs, err := seeder.SeedTest(ctx, DefaultSeeds)
	require.NoError(t, err)
	require.Len(t, logs, len(DefaultSeeds))
	for _, l := range logs {
		require.True(t, strings.HasPrefix(l, "OK "), l)
	}

	ps, _ := svc.List(ctx)
	require.Len(t, ps, len(DefaultSeeds))
	for _, p := range ps {
		require.True(t, p.IsTest)
	}

	n, err := svc.PurgeTest(ctx)
	require.NoError(t, err)
	require.Equal(t, len(DefaultSeeds), n)
}

func TestSeedTestJittersAwayFromConflicts(t *testing.T) {
	svc, _ := newService(t, everywhere("pommes"), Options{})
	ctx := context.Background()
	out, err := svc.Create(ctx, 50.8503, 4.3517)
	require.NoError(t, err)
	require.True(t, out.Created())

	seeds := []service.Seed{seed("Brussels", 50.8503, 4.3517)}
	logs, err := NewSeeder(svc, SeedOptions{Attempts: 5, JitterDeg: 0.2, Rand: NewRand(11)}, zap.NewNop()).SeedTest(ctx, seeds)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.True(t, strings.HasPrefix(logs[0], "OK Brussels"), logs[0])

	ps, _ := svc.List(ctx)
	require.Len(t, ps, 2)
	require.False(t, ps[0].IsTest)
	require.True(t, ps[1].IsTest)
	require.NotEqual(t, ps[0].Geolocation.GeoPoint, ps[1].Geolocation.GeoPoint)
}

func TestSeedTestReportsFailure(t *testing.T) {
	catalog := staticCatalog{{Name: "bananes", Regions: []entities.ClimateZone{entities.Tropical}}}
	svc, _ := newService(t, catalog, Options{})

	logs, err := NewSeeder(svc, SeedOptions{Attempts: 2, JitterDeg: 0.2, Rand: NewRand(1)}, zap.NewNop()).
		SeedTest(context.Background(), []service.Seed{seed("Moscow", 55.7558, 37.6173)})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.True(t, strings.HasPrefix(logs[0], "FAILED Moscow"), logs[0])
	require.Contains(t, logs[0], "temperate")
}

func TestSeedTestStopsOnCancel(t *testing.T) {
	svc, _ := newService(t, everywhere("pommes"), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logs, err := NewSeeder(svc, SeedOptions{}, zap.NewNop()).SeedTest(ctx, DefaultSeeds)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, logs)
}

type countingService struct {
	service.PlantationService
	creates int
}

func (c *countingService) Create(ctx context.Context, lat, lon float64) (service.Outcome, error) {
	c.creates++
	return c.PlantationService.Create(ctx, lat, lon)
}

func TestSeedTestOnlyRetriesSpacingConflicts(t *testing.T) {
	catalog := staticCatalog{{Name: "bananes", Regions: []entities.ClimateZone{entities.Tropical}}}
	svc, _ := newService(t, catalog, Options{})
	counted := &countingService{PlantationService: svc}

	logs, err := NewSeeder(counted, SeedOptions{Attempts: 4, JitterDeg: 0.2, Rand: NewRand(2)}, zap.NewNop()).
		SeedTest(context.Background(), []service.Seed{seed("London", 51.5074, -0.1278)})
	require.NoError(t, err)
	require.Equal(t, 1, counted.creates)
	require.True(t, strings.HasPrefix(logs[0], "FAILED London"), logs[0])

	counted.creates = 0
	ctx := context.Background()
	_, err = svc.Create(ctx, 0, 10)
	require.NoError(t, err)
	logs, err = NewSeeder(counted, SeedOptions{Attempts: 4, JitterDeg: 0.2, Rand: NewRand(2)}, zap.NewNop()).
		SeedTest(ctx, []service.Seed{seed("Equator", 0, 10)})
	require.NoError(t, err)
	require.Greater(t, counted.creates, 1)
	require.True(t, strings.HasPrefix(logs[0], "OK Equator"), logs[0])
}
