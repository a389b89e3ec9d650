package repository

import (
	"context"

	"fruitfarm/entities"
)

type Catalog interface {
	List(ctx context.Context) ([]entities.FruitSpec, error)
	Replace(ctx context.Context, specs []entities.FruitSpec) ([]string, error)
	EnsureDefaults(ctx context.Context) (bool, error)
}
