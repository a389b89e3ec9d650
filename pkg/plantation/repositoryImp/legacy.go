package repositoryImp

import (
	"encoding/json"
	"errors"
	"strings"

	"fruitfarm/entities"
	"fruitfarm/pkg/climate"
)

// Records written before ids existed use French keys, some with a unit
// suffix ("superficie_totale [m²]"), so they are read field by field.
type legacyGeoloc struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

func isLegacy(fields map[string]json.RawMessage) bool {
	_, ok := fields["geoloc"]
	return ok
}

// lookup finds a key ignoring any " [unit]" suffix.
func lookup(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if v, ok := fields[name]; ok {
		return v, true
	}
	for k, v := range fields {
		if base, _, found := strings.Cut(k, " ["); found && base == name {
			return v, true
		}
	}
	return nil, false
}

func decodeLegacy(fields map[string]json.RawMessage) (entities.Plantation, error) {
	var g legacyGeoloc
	if err := json.Unmarshal(fields["geoloc"], &g); err != nil {
		return entities.Plantation{}, err
	}
	if g.Lat == nil || g.Lon == nil {
		return entities.Plantation{}, errors.New("legacy record without coordinates")
	}

	var area float64
	if raw, ok := lookup(fields, "superficie_totale"); ok {
		if err := json.Unmarshal(raw, &area); err != nil {
			return entities.Plantation{}, err
		}
	}

	var created string
	if raw, ok := fields["date_creation"]; ok {
		if err := json.Unmarshal(raw, &created); err != nil {
			return entities.Plantation{}, err
		}
	}
	ts, err := entities.ParseTimestamp(created)
	if err != nil {
		return entities.Plantation{}, err
	}

	planted := map[string]int{}
	if raw, ok := fields["fruits_plantés"]; ok {
		var fruits map[string]map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fruits); err != nil {
			return entities.Plantation{}, err
		}
		for name, detail := range fruits {
			v, ok := lookup(detail, "superficie")
			if !ok {
				continue
			}
			var a float64
			if err := json.Unmarshal(v, &a); err != nil {
				return entities.Plantation{}, err
			}
			planted[name] = int(a)
		}
	}

	var isTest bool
	if raw, ok := fields["is_test"]; ok {
		_ = json.Unmarshal(raw, &isTest)
	}

	// the zone is recomputed from the coordinate rather than trusted
	geoloc := climate.Locate(*g.Lat, *g.Lon)
	return entities.Plantation{
		Geolocation:   geoloc,
		Climate:       geoloc.Climate,
		TotalAreaM2:   area,
		PlantedFruits: planted,
		CreatedAt:     ts,
		IsTest:        isTest,
	}, nil
}
