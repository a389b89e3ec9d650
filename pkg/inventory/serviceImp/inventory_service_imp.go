package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fruitfarm/entities"
	"fruitfarm/pkg/fruit"
	fruitrepo "fruitfarm/pkg/fruit/repository"
	"fruitfarm/pkg/inventory/repository"
	"fruitfarm/pkg/inventory/service"
	"fruitfarm/pkg/metrics"
)

// DefaultStock is the inventory of a new farm.
func DefaultStock() map[string]int {
	return map[string]int{
		"bananes":      120,
		"mangues":      85,
		"ananas":       45,
		"noix de coco": 60,
		"papayes":      30,
	}
}

// DefaultPrices cover the starting stock; catalog sale prices override them.
func DefaultPrices() map[string]float64 {
	return map[string]float64{
		"bananes":      2,
		"mangues":      7,
		"ananas":       5,
		"noix de coco": 4,
		"papayes":      3,
	}
}

type Options struct {
	ExchangeRateEUR float64
}

type inventorySvc struct {
	ledger  repository.Ledger
	catalog fruitrepo.Catalog
	opts    Options
	log     *zap.Logger
}

func NewInventoryService(ledger repository.Ledger, catalog fruitrepo.Catalog, opts Options, log *zap.Logger) service.InventoryService {
	return &inventorySvc{ledger: ledger, catalog: catalog, opts: opts, log: log}
}

// Init seeds the default stock and balance on an empty ledger.
func Init(ctx context.Context, ledger repository.Ledger, startingBalance float64) error {
	return ledger.EnsureDefaults(ctx, DefaultStock(), startingBalance)
}

func (s *inventorySvc) prices(ctx context.Context) (map[string]float64, error) {
	prices := DefaultPrices()
	specs, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	for name, p := range fruit.PriceTable(specs) {
		if p > 0 {
			prices[name] = p
		}
	}
	return prices, nil
}

func (s *inventorySvc) toEUR(v float64) float64 { return v * s.opts.ExchangeRateEUR }

func (s *inventorySvc) Snapshot(ctx context.Context) (service.Snapshot, error) {
	stock, err := s.ledger.Stock(ctx)
	if err != nil {
		return service.Snapshot{}, err
	}
	bal, err := s.ledger.Balance(ctx)
	if err != nil {
		return service.Snapshot{}, err
	}
	if stock == nil {
		stock = []entities.StockItem{}
	}
	return service.Snapshot{Stock: stock, Balance: bal, BalanceEUR: s.toEUR(bal)}, nil
}

func checkLine(name string, qty int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("fruit is required")
	}
	if qty <= 0 {
		return "", fmt.Errorf("%w: %d", service.ErrInvalidQuantity, qty)
	}
	return name, nil
}

func (s *inventorySvc) Harvest(ctx context.Context, name string, qty int) (entities.StockItem, error) {
	name, err := checkLine(name, qty)
	if err != nil {
		return entities.StockItem{}, err
	}
	item, err := s.ledger.Harvest(ctx, name, qty)
	if err != nil {
		return entities.StockItem{}, err
	}
	metrics.InventoryMovementsTotal.WithLabelValues("harvest").Add(float64(qty))
	s.log.Info("harvested", zap.String("fruit", name), zap.Int("qty", qty), zap.Int("stock", item.Quantity))
	return item, nil
}

func (s *inventorySvc) Sell(ctx context.Context, name string, qty int) (service.Sale, error) {
	name, err := checkLine(name, qty)
	if err != nil {
		return service.Sale{}, err
	}
	prices, err := s.prices(ctx)
	if err != nil {
		return service.Sale{}, err
	}
	price := prices[name]
	item, bal, err := s.ledger.Sell(ctx, name, qty, price)
	if err != nil {
		return service.Sale{}, err
	}
	revenue := price * float64(qty)
	metrics.InventoryMovementsTotal.WithLabelValues("sell").Add(float64(qty))
	metrics.RevenueTotal.Add(revenue)
	s.log.Info("sold", zap.String("fruit", name), zap.Int("qty", qty), zap.Float64("revenue", revenue), zap.Float64("balance", bal))
	return service.Sale{Fruit: name, Quantity: qty, Revenue: revenue, Remaining: item.Quantity, Balance: bal}, nil
}

func (s *inventorySvc) SellAll(ctx context.Context) (service.SaleReport, error) {
	prices, err := s.prices(ctx)
	if err != nil {
		return service.SaleReport{}, err
	}
	sold, bal, err := s.ledger.SellAll(ctx, func(f string) float64 { return prices[f] })
	if err != nil {
		return service.SaleReport{}, err
	}
	report := service.SaleReport{Sold: sold, Revenue: map[string]float64{}, Balance: bal}
	units := 0
	for f, q := range sold {
		r := prices[f] * float64(q)
		report.Revenue[f] = r
		report.Total += r
		units += q
	}
	metrics.InventoryMovementsTotal.WithLabelValues("sell").Add(float64(units))
	metrics.RevenueTotal.Add(report.Total)
	s.log.Info("sold all stock", zap.Int("units", units), zap.Float64("revenue", report.Total), zap.Float64("balance", bal))
	return report, nil
}

func (s *inventorySvc) StockValue(ctx context.Context) (service.Valuation, error) {
	stock, err := s.ledger.Stock(ctx)
	if err != nil {
		return service.Valuation{}, err
	}
	prices, err := s.prices(ctx)
	if err != nil {
		return service.Valuation{}, err
	}
	v := service.Valuation{PerFruit: make(map[string]float64, len(stock))}
	for _, it := range stock {
		val := prices[it.Fruit] * float64(it.Quantity)
		v.PerFruit[it.Fruit] = val
		v.Total += val
	}
	return v, nil
}

func (s *inventorySvc) BalanceEUR(ctx context.Context) (float64, error) {
	bal, err := s.ledger.Balance(ctx)
	if err != nil {
		return 0, err
	}
	return s.toEUR(bal), nil
}
