package repository

import (
	"context"
	"errors"

	"fruitfarm/entities"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownFruit      = errors.New("fruit not in inventory")
)

// Ledger persists fruit stock and the cash balance. Every mutation runs in a
// single transaction.
type Ledger interface {
	EnsureDefaults(ctx context.Context, stock map[string]int, balance float64) error
	Stock(ctx context.Context) ([]entities.StockItem, error)
	Balance(ctx context.Context) (float64, error)
	Harvest(ctx context.Context, fruit string, qty int) (entities.StockItem, error)
	// Sell removes qty units and credits qty*unitPrice. It returns the stock
	// left and the new balance.
	Sell(ctx context.Context, fruit string, qty int, unitPrice float64) (entities.StockItem, float64, error)
	// SellAll empties every stock line, pricing each through price, and
	// returns the units sold per fruit with the new balance.
	SellAll(ctx context.Context, price func(fruit string) float64) (map[string]int, float64, error)
}
