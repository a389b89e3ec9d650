package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fruitfarm/config"
	"fruitfarm/pkg/blobstore"
)

func testConfig(t *testing.T, backend string) config.AppConfig {
	dir := t.TempDir()
	return config.AppConfig{
		DBPath:          filepath.Join(dir, "farm.db"),
		DataDir:         filepath.Join(dir, "data"),
		StoreBackend:    backend,
		PlantationsKey:  "plantations.json",
		FruitsKey:       "fruits.json",
		MinDistanceKM:   2,
		AreaMinM2:       500,
		AreaMaxM2:       25000,
		RandSeed:        99,
		SeedAttempts:    3,
		SeedJitterDeg:   0.2,
		ExchangeRateEUR: 0.86,
		StartingBalance: 1000,
	}
}

func TestBuildBackends(t *testing.T) {
	for _, backend := range []string{"file", "sqlite", "memory"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			a, err := Build(ctx, testConfig(t, backend), zap.NewNop())
			require.NoError(t, err)
			defer a.Close()

			specs, err := a.Catalog.List(ctx)
			require.NoError(t, err)
			require.Len(t, specs, 14)

			out, err := a.Plantations.Create(ctx, 5, 5)
			require.NoError(t, err)
			require.True(t, out.Created(), out.Message)

			ps, err := a.Plantations.List(ctx)
			require.NoError(t, err)
			require.Len(t, ps, 1)

			snap, err := a.Inventory.Snapshot(ctx)
			require.NoError(t, err)
			require.InDelta(t, 1000.0, snap.Balance, 1e-9)
		})
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore("FILE", t.TempDir(), nil)
	require.NoError(t, err)
	require.IsType(t, &blobstore.FileStore{}, s)

	_, err = NewStore("sqlite", "", nil)
	require.Error(t, err)

	_, err = NewStore("s3", "", nil)
	require.Error(t, err)
}
