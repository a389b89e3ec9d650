package service

import (
	"context"
	"errors"

	"fruitfarm/entities"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Snapshot struct {
	Stock      []entities.StockItem `json:"stock"`
	Balance    float64              `json:"balance"`
	BalanceEUR float64              `json:"balance_eur"`
}

type Sale struct {
	Fruit     string  `json:"fruit"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
	Remaining int     `json:"remaining"`
	Balance   float64 `json:"balance"`
}

type SaleReport struct {
	Sold    map[string]int     `json:"sold"`
	Revenue map[string]float64 `json:"revenue"`
	Total   float64            `json:"total"`
	Balance float64            `json:"balance"`
}

type Valuation struct {
	PerFruit map[string]float64 `json:"per_fruit"`
	Total    float64            `json:"total"`
}

type InventoryService interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Harvest(ctx context.Context, fruit string, qty int) (entities.StockItem, error)
	Sell(ctx context.Context, fruit string, qty int) (Sale, error)
	SellAll(ctx context.Context) (SaleReport, error)
	StockValue(ctx context.Context) (Valuation, error)
	BalanceEUR(ctx context.Context) (float64, error)
}
