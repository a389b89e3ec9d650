package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fruitfarm/app"
	"fruitfarm/config"
)

func testBuilder(t *testing.T) builder {
	dir := t.TempDir()
	cfg := config.AppConfig{
		DBPath:          filepath.Join(dir, "farm.db"),
		DataDir:         filepath.Join(dir, "data"),
		StoreBackend:    "file",
		PlantationsKey:  "plantations.json",
		FruitsKey:       "fruits.json",
		MinDistanceKM:   2,
		AreaMinM2:       500,
		AreaMaxM2:       25000,
		RandSeed:        3,
		SeedAttempts:    3,
		SeedJitterDeg:   0.2,
		ExchangeRateEUR: 0.86,
		StartingBalance: 1000,
	}
	return func(ctx context.Context) (*app.App, error) { return app.Build(ctx, cfg, zap.NewNop()) }
}

func run(t *testing.T, build builder, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(build)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateListPurge(t *testing.T) {
	build := testBuilder(t)

	out, err := run(t, build, "create", "--lat", "50.85", "--lon", "4.35")
	require.NoError(t, err)
	require.Contains(t, out, "Plantation created at (50.8500, 4.3500)")

	_, err = run(t, build, "create", "--lat", "50.85", "--lon", "4.35")
	require.Error(t, err)

	out, err = run(t, build, "seed")
	require.NoError(t, err)
	require.Equal(t, 23, strings.Count(out, "\n"))

	out, err = run(t, build, "list")
	require.NoError(t, err)
	require.Contains(t, out, "[test]")

	out, err = run(t, build, "summary")
	require.NoError(t, err)
	require.Contains(t, out, "temperate")

	out, err = run(t, build, "purge-test")
	require.NoError(t, err)
	require.Regexp(t, `removed \d+ test plantation`, out)

	out, err = run(t, build, "list")
	require.NoError(t, err)
	require.Contains(t, out, "1 plantation(s)")
}

func TestExportAndFruits(t *testing.T) {
	build := testBuilder(t)
	_, err := run(t, build, "create", "--lat", "0", "--lon", "20")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "plantations.csv")
	_, err = run(t, build, "export", "--format", "csv", "--out", target)
	require.NoError(t, err)
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(b), "id,latitude,longitude"))

	out, err := run(t, build, "fruits", "list")
	require.NoError(t, err)
	require.Contains(t, out, "bananes")

	yml := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("- name: kiwis\n  regions: [temperate]\n  unit_price: 1.5\n"), 0o644))
	out, err = run(t, build, "fruits", "import", yml)
	require.NoError(t, err)
	require.Contains(t, out, "imported 1 fruit(s)")

	_, err = run(t, build, "export", "--format", "pdf")
	require.Error(t, err)
}
