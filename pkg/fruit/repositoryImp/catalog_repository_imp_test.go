package repositoryImp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fruitfarm/entities"
	"fruitfarm/pkg/blobstore"
)

func TestEnsureDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	repo := New(blobstore.NewMemStore(), "fruits.json", zap.NewNop())

	created, err := repo.EnsureDefaults(ctx)
	require.NoError(t, err)
	require.True(t, created)

	created, err = repo.EnsureDefaults(ctx)
	require.NoError(t, err)
	require.False(t, created)

	specs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, specs, 14)
	require.Equal(t, "bananes", specs[0].Name)
}

func TestListMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemStore()
	repo := New(store, "fruits.json", zap.NewNop())

	specs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, specs)

	require.NoError(t, store.Put(ctx, "fruits.json", []byte("{oops")))
	specs, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, specs)
}

func TestReplaceValidates(t *testing.T) {
	ctx := context.Background()
	repo := New(blobstore.NewMemStore(), "fruits.json", zap.NewNop())

	_, err := repo.Replace(ctx, []entities.FruitSpec{{Name: ""}})
	require.Error(t, err)

	warnings, err := repo.Replace(ctx, []entities.FruitSpec{
		{Name: "bananes", Regions: []entities.ClimateZone{"tropical", "moon"}},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)

	specs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []entities.ClimateZone{entities.Tropical}, specs[0].Regions)
}
