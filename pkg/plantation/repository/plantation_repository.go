package repository

import (
	"context"
	"errors"

	"fruitfarm/entities"
)

var (
	ErrCorruptRegistry = errors.New("plantation registry is corrupt")
	ErrNotFound        = errors.New("plantation not found")
)

// Snapshot is the result of a registry read. Warning is set when the backing
// document was missing parts or unreadable; Plantations then holds whatever
// could be recovered, possibly nothing.
type Snapshot struct {
	Plantations []entities.Plantation
	Warning     error
}

// Registry is the append-only plantation store. Every write rewrites the whole
// document.
type Registry interface {
	ReadAll(ctx context.Context) Snapshot
	Append(ctx context.Context, p entities.Plantation) error
	// Retain keeps the records for which keep returns true and reports how
	// many were dropped.
	Retain(ctx context.Context, keep func(entities.Plantation) bool) (int, error)
	MarkTest(ctx context.Context, id string) error
}
