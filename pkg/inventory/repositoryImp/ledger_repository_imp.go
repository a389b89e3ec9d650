package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fruitfarm/entities"
	"fruitfarm/pkg/inventory/repository"
)

// the treasury is a single row
const treasuryID = 1

type ledgerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Ledger { return &ledgerRepo{db} }

func (r *ledgerRepo) EnsureDefaults(ctx context.Context, stock map[string]int, balance float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.StockItem{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 && len(stock) > 0 {
			items := make([]entities.StockItem, 0, len(stock))
			for fruit, qty := range stock {
				items = append(items, entities.StockItem{Fruit: fruit, Quantity: qty})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		var t entities.Treasury
		err := tx.First(&t, treasuryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&entities.Treasury{ID: treasuryID, Balance: balance}).Error
		}
		return err
	})
}

func (r *ledgerRepo) Stock(ctx context.Context) ([]entities.StockItem, error) {
	var items []entities.StockItem
	return items, r.db.WithContext(ctx).Order("fruit asc").Find(&items).Error
}

func (r *ledgerRepo) Balance(ctx context.Context) (float64, error) {
	return balance(r.db.WithContext(ctx))
}

func balance(tx *gorm.DB) (float64, error) {
	var t entities.Treasury
	if err := tx.First(&t, treasuryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return t.Balance, nil
}

func credit(tx *gorm.DB, amount float64) (float64, error) {
	res := tx.Model(&entities.Treasury{}).Where("id = ?", treasuryID).Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&entities.Treasury{ID: treasuryID, Balance: amount}).Error; err != nil {
			return 0, err
		}
	}
	return balance(tx)
}

func (r *ledgerRepo) Harvest(ctx context.Context, fruit string, qty int) (entities.StockItem, error) {
	var item entities.StockItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&item, "fruit = ?", fruit).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = entities.StockItem{Fruit: fruit, Quantity: qty}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}
		item.Quantity += qty
		return tx.Model(&item).Update("quantity", item.Quantity).Error
	})
	return item, err
}

func (r *ledgerRepo) Sell(ctx context.Context, fruit string, qty int, unitPrice float64) (entities.StockItem, float64, error) {
	var (
		item entities.StockItem
		bal  float64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&item, "fruit = ?", fruit).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", repository.ErrUnknownFruit, fruit)
		}
		if err != nil {
			return err
		}
		if item.Quantity < qty {
			return fmt.Errorf("%w: %d %s in stock, %d requested", repository.ErrInsufficientStock, item.Quantity, fruit, qty)
		}
		item.Quantity -= qty
		if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
			return err
		}
		bal, err = credit(tx, unitPrice*float64(qty))
		return err
	})
	return item, bal, err
}

func (r *ledgerRepo) SellAll(ctx context.Context, price func(string) float64) (map[string]int, float64, error) {
	sold := map[string]int{}
	var bal float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []entities.StockItem
		if err := tx.Where("quantity > 0").Order("fruit asc").Find(&items).Error; err != nil {
			return err
		}
		revenue := 0.0
		for _, it := range items {
			revenue += price(it.Fruit) * float64(it.Quantity)
			sold[it.Fruit] = it.Quantity
			if err := tx.Model(&entities.StockItem{}).Where("fruit = ?", it.Fruit).Update("quantity", 0).Error; err != nil {
				return err
			}
		}
		var err error
		bal, err = credit(tx, revenue)
		return err
	})
	return sold, bal, err
}
