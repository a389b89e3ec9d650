package entities

import "time"

type StockItem struct {
	Fruit     string `gorm:"primaryKey" json:"fruit"`
	Quantity  int    `json:"quantity"`
	UpdatedAt time.Time
}

type Treasury struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	Balance   float64 `json:"balance"`
	UpdatedAt time.Time
}

// Blob is a whole-document value stored under a key.
type Blob struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}
