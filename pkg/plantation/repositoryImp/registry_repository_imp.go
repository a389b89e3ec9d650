package repositoryImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"fruitfarm/entities"
	"fruitfarm/pkg/blobstore"
	"fruitfarm/pkg/climate"
	"fruitfarm/pkg/metrics"
	"fruitfarm/pkg/plantation/repository"
)

type registryRepo struct {
	mu    sync.Mutex
	store blobstore.Store
	key   string
	log   *zap.Logger
}

func New(store blobstore.Store, key string, log *zap.Logger) repository.Registry {
	return &registryRepo{store: store, key: key, log: log}
}

func (r *registryRepo) ReadAll(ctx context.Context) repository.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(ctx)
}

func (r *registryRepo) read(ctx context.Context) repository.Snapshot {
	b, err := r.store.Get(ctx, r.key)
	if errors.Is(err, blobstore.ErrNotFound) {
		return repository.Snapshot{Plantations: []entities.Plantation{}}
	}
	if err != nil {
		return r.degraded(nil, fmt.Errorf("%w: read %s: %v", repository.ErrCorruptRegistry, r.key, err))
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return r.degraded(nil, fmt.Errorf("%w: %v", repository.ErrCorruptRegistry, err))
	}

	out := make([]entities.Plantation, 0, len(raws))
	var problems []error
	for i, raw := range raws {
		p, err := decodeRecord(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, p)
	}
	if len(problems) > 0 {
		return r.degraded(out, fmt.Errorf("%w: %d unreadable record(s): %w", repository.ErrCorruptRegistry, len(problems), errors.Join(problems...)))
	}
	return repository.Snapshot{Plantations: out}
}

func (r *registryRepo) degraded(ps []entities.Plantation, warning error) repository.Snapshot {
	if ps == nil {
		ps = []entities.Plantation{}
	}
	metrics.RegistryReadWarningsTotal.Inc()
	r.log.Warn("plantation registry degraded", zap.String("key", r.key), zap.Int("recovered", len(ps)), zap.Error(warning))
	return repository.Snapshot{Plantations: ps, Warning: warning}
}

func decodeRecord(raw json.RawMessage) (entities.Plantation, error) {
	var p entities.Plantation
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return p, err
	}
	if isLegacy(fields) {
		var err error
		if p, err = decodeLegacy(fields); err != nil {
			return p, err
		}
	} else if err := json.Unmarshal(raw, &p); err != nil {
		return p, err
	}
	if p.PlantedFruits == nil {
		p.PlantedFruits = map[string]int{}
	}
	// zones always follow the latitude, whatever label was stored
	p.Geolocation = climate.Locate(p.Geolocation.Latitude, p.Geolocation.Longitude)
	p.Climate = p.Geolocation.Climate
	return p, p.Validate()
}

func (r *registryRepo) write(ctx context.Context, ps []entities.Plantation) error {
	b, err := json.MarshalIndent(ps, "", "    ")
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key, b); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

// Append adds p after the records that could be read. A degraded read still
// leads to a write of the merged state.
func (r *registryRepo) Append(ctx context.Context, p entities.Plantation) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid plantation: %w", err)
	}
	if want := climate.Classify(p.Geolocation.Latitude); p.Climate != want {
		return fmt.Errorf("invalid plantation: climate %q does not match latitude %v (%s)", p.Climate, p.Geolocation.Latitude, want)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.read(ctx)
	return r.write(ctx, append(snap.Plantations, p))
}

func (r *registryRepo) Retain(ctx context.Context, keep func(entities.Plantation) bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.read(ctx)
	kept := make([]entities.Plantation, 0, len(snap.Plantations))
	for _, p := range snap.Plantations {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	removed := len(snap.Plantations) - len(kept)
	if removed == 0 && snap.Warning == nil {
		return 0, nil
	}
	return removed, r.write(ctx, kept)
}

func (r *registryRepo) MarkTest(ctx context.Context, id string) error {
	if id == "" {
		return repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.read(ctx)
	for i := range snap.Plantations {
		if snap.Plantations[i].ID == id {
			if snap.Plantations[i].IsTest {
				return nil
			}
			snap.Plantations[i].IsTest = true
			return r.write(ctx, snap.Plantations)
		}
	}
	return repository.ErrNotFound
}
