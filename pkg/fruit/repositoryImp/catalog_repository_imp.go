package repositoryImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fruitfarm/entities"
	"fruitfarm/pkg/blobstore"
	"fruitfarm/pkg/fruit"
	"fruitfarm/pkg/fruit/repository"
)

type catalogRepo struct {
	store blobstore.Store
	key   string
	log   *zap.Logger
}

func New(store blobstore.Store, key string, log *zap.Logger) repository.Catalog {
	return &catalogRepo{store: store, key: key, log: log}
}

// List returns the stored catalog. A missing or unreadable document yields an
// empty catalog; only store I/O failures are errors.
func (r *catalogRepo) List(ctx context.Context) ([]entities.FruitSpec, error) {
	b, err := r.store.Get(ctx, r.key)
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read fruit catalog: %w", err)
	}
	raw, err := fruit.DecodeJSON(b)
	if err != nil {
		r.log.Warn("fruit catalog unreadable, treating as empty", zap.String("key", r.key), zap.Error(err))
		return nil, nil
	}
	specs, warnings := fruit.Normalize(raw)
	for _, w := range warnings {
		r.log.Warn("fruit catalog entry", zap.String("key", r.key), zap.String("issue", w))
	}
	return specs, nil
}

func (r *catalogRepo) Replace(ctx context.Context, specs []entities.FruitSpec) ([]string, error) {
	clean, warnings := fruit.Normalize(specs)
	if len(clean) == 0 {
		return warnings, errors.New("catalog has no valid fruit")
	}
	b, err := json.MarshalIndent(clean, "", "    ")
	if err != nil {
		return warnings, err
	}
	if err := r.store.Put(ctx, r.key, b); err != nil {
		return warnings, fmt.Errorf("write fruit catalog: %w", err)
	}
	r.log.Info("fruit catalog replaced", zap.Int("fruits", len(clean)), zap.Int("warnings", len(warnings)))
	return warnings, nil
}

// EnsureDefaults writes the default catalog when none is stored yet.
func (r *catalogRepo) EnsureDefaults(ctx context.Context) (bool, error) {
	_, err := r.store.Get(ctx, r.key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, blobstore.ErrNotFound) {
		return false, err
	}
	if _, err := r.Replace(ctx, fruit.DefaultCatalog()); err != nil {
		return false, err
	}
	r.log.Info("default fruit catalog created", zap.String("key", r.key))
	return true, nil
}
