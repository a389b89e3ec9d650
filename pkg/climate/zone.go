package climate

import (
	"fmt"
	"math"
	"strings"

	"fruitfarm/entities"
)

// Upper edges (inclusive) of each band on |latitude|, in degrees.
const (
	TropicalMaxLat      = 23.0
	SubtropicalMaxLat   = 30.0
	MediterraneanMaxLat = 45.0
	TemperateMaxLat     = 66.0
)

// Classify maps a latitude to its climate zone. It is total: values outside
// [-90, 90] still fall into a band, and NaN is classified as cold.
func Classify(lat float64) entities.ClimateZone {
	abs := math.Abs(lat)
	switch {
	case abs <= TropicalMaxLat:
		return entities.Tropical
	case abs <= SubtropicalMaxLat:
		return entities.Subtropical
	case abs <= MediterraneanMaxLat:
		return entities.Mediterranean
	case abs <= TemperateMaxLat:
		return entities.Temperate
	default:
		return entities.Cold
	}
}

// Locate returns the point together with its derived zone.
func Locate(lat, lon float64) entities.Geolocation {
	return entities.Geolocation{
		GeoPoint: entities.GeoPoint{Latitude: lat, Longitude: lon},
		Climate:  Classify(lat),
	}
}

var aliases = map[string]entities.ClimateZone{
	"tropical":      entities.Tropical,
	"subtropical":   entities.Subtropical,
	"sub-tropical":  entities.Subtropical,
	"mediterranean": entities.Mediterranean,
	"méditerranéen": entities.Mediterranean,
	"mediterraneen": entities.Mediterranean,
	"temperate":     entities.Temperate,
	"tempéré":       entities.Temperate,
	"tempere":       entities.Temperate,
	"cold":          entities.Cold,
	"froid":         entities.Cold,
}

// ParseZone accepts the English zone names and the legacy French labels.
func ParseZone(s string) (entities.ClimateZone, error) {
	z, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown climate zone %q", s)
	}
	return z, nil
}

// Compatible keeps the catalog entries that grow in zone, in catalog order.
func Compatible(zone entities.ClimateZone, catalog []entities.FruitSpec) []entities.FruitSpec {
	var out []entities.FruitSpec
	for _, f := range catalog {
		if f.GrowsIn(zone) {
			out = append(out, f)
		}
	}
	return out
}
