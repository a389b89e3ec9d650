package serviceImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fruitfarm/database"
	"fruitfarm/entities"
	"fruitfarm/pkg/blobstore"
	fruitImp "fruitfarm/pkg/fruit/repositoryImp"
	"fruitfarm/pkg/inventory/repository"
	"fruitfarm/pkg/inventory/repositoryImp"
	"fruitfarm/pkg/inventory/service"
)

func newInventory(t *testing.T, withCatalog bool) service.InventoryService {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "farm.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ledger := repositoryImp.New(db)
	require.NoError(t, Init(ctx, ledger, 1000))
	require.NoError(t, Init(ctx, ledger, 5000), "defaults are only applied once")

	catalog := fruitImp.New(blobstore.NewMemStore(), "fruits.json", zap.NewNop())
	if withCatalog {
		_, err := catalog.Replace(ctx, []entities.FruitSpec{
			{Name: "bananes", UnitPrice: 2.5, Regions: []entities.ClimateZone{entities.Tropical}},
			{Name: "kiwis", UnitPrice: 1.5, Regions: []entities.ClimateZone{entities.Temperate}},
		})
		require.NoError(t, err)
	}
	return NewInventoryService(ledger, catalog, Options{ExchangeRateEUR: 0.86}, zap.NewNop())
}

func TestSnapshotDefaults(t *testing.T) {
	svc := newInventory(t, false)
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 1000.0, snap.Balance, 1e-9)
	require.InDelta(t, 860.0, snap.BalanceEUR, 1e-9)

	got := map[string]int{}
	for _, it := range snap.Stock {
		got[it.Fruit] = it.Quantity
	}
	require.Equal(t, DefaultStock(), got)
	require.Equal(t, "ananas", snap.Stock[0].Fruit, "stock is listed by name")
}

func TestHarvestAndSell(t *testing.T) {
	svc := newInventory(t, false)
	ctx := context.Background()

	item, err := svc.Harvest(ctx, "bananes", 10)
	require.NoError(t, err)
	require.Equal(t, 130, item.Quantity)

	item, err = svc.Harvest(ctx, "kiwis", 4)
	require.NoError(t, err)
	require.Equal(t, 4, item.Quantity)

	sale, err := svc.Sell(ctx, "mangues", 5)
	require.NoError(t, err)
	require.InDelta(t, 35.0, sale.Revenue, 1e-9)
	require.Equal(t, 80, sale.Remaining)
	require.InDelta(t, 1035.0, sale.Balance, 1e-9)

	// unknown price sells for nothing
	sale, err = svc.Sell(ctx, "kiwis", 4)
	require.NoError(t, err)
	require.Zero(t, sale.Revenue)
	require.Zero(t, sale.Remaining)
}

func TestSellErrors(t *testing.T) {
	svc := newInventory(t, false)
	ctx := context.Background()

	_, err := svc.Sell(ctx, "papayes", 31)
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	_, err = svc.Sell(ctx, "durians", 1)
	require.ErrorIs(t, err, repository.ErrUnknownFruit)

	_, err = svc.Sell(ctx, "papayes", 0)
	require.ErrorIs(t, err, service.ErrInvalidQuantity)

	_, err = svc.Harvest(ctx, "papayes", -2)
	require.ErrorIs(t, err, service.ErrInvalidQuantity)

	_, err = svc.Harvest(ctx, "  ", 2)
	require.Error(t, err)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.InDelta(t, 1000.0, snap.Balance, 1e-9, "failed sales leave the balance untouched")
}

func TestSellAll(t *testing.T) {
	svc := newInventory(t, false)
	ctx := context.Background()

	report, err := svc.SellAll(ctx)
	require.NoError(t, err)
	// 120*2 + 85*7 + 45*5 + 60*4 + 30*3
	require.InDelta(t, 1390.0, report.Total, 1e-9)
	require.InDelta(t, 2390.0, report.Balance, 1e-9)
	require.Equal(t, DefaultStock(), report.Sold)

	report, err = svc.SellAll(ctx)
	require.NoError(t, err)
	require.Empty(t, report.Sold)
	require.Zero(t, report.Total)

	eur, err := svc.BalanceEUR(ctx)
	require.NoError(t, err)
	require.InDelta(t, 2390.0*0.86, eur, 1e-9)
}

func TestStockValueUsesCatalogPrices(t *testing.T) {
	svc := newInventory(t, true)
	v, err := svc.StockValue(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 300.0, v.PerFruit["bananes"], 1e-9)
	require.InDelta(t, 595.0, v.PerFruit["mangues"], 1e-9)
	require.InDelta(t, 300+595+225+240+90, v.Total, 1e-9)
}
