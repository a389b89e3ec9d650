// Package fruit holds the fruit catalog rules shared by its store and importers.
package fruit

import (
	"encoding/json"
	"fmt"
	"strings"

	"fruitfarm/entities"
	"fruitfarm/pkg/climate"
)

// wireSpec accepts both the current English field names and the legacy
// French ones written by earlier versions of the catalog file.
type wireSpec struct {
	entities.FruitSpec

	Nom          string             `json:"nom"`
	Icone        string             `json:"icone"`
	SemisDebut   string             `json:"semis_debut"`
	SemisFin     string             `json:"semis_fin"`
	RecolteDebut string             `json:"recolte_debut"`
	RecolteFin   string             `json:"recolte_fin"`
	Rendement    float64            `json:"rendement_m2"`
	Cout         float64            `json:"cout_exploitation_unitaire"`
	Prix         float64            `json:"prix_vente_unitaire"`
	FacteurMeteo map[string]float64 `json:"facteur_meteo"`
}

func (w wireSpec) spec() entities.FruitSpec {
	s := w.FruitSpec
	pick := func(dst *string, legacy string) {
		if *dst == "" {
			*dst = legacy
		}
	}
	pick(&s.Name, w.Nom)
	pick(&s.Icon, w.Icone)
	pick(&s.SowingStart, w.SemisDebut)
	pick(&s.SowingEnd, w.SemisFin)
	pick(&s.HarvestStart, w.RecolteDebut)
	pick(&s.HarvestEnd, w.RecolteFin)
	if s.YieldPerM2 == 0 {
		s.YieldPerM2 = w.Rendement
	}
	if s.UnitCost == 0 {
		s.UnitCost = w.Cout
	}
	if s.UnitPrice == 0 {
		s.UnitPrice = w.Prix
	}
	if len(s.WeatherFactor) == 0 {
		s.WeatherFactor = w.FacteurMeteo
	}
	return s
}

// DecodeJSON parses a catalog document in either field naming.
func DecodeJSON(b []byte) ([]entities.FruitSpec, error) {
	var raw []wireSpec
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode fruit catalog: %w", err)
	}
	out := make([]entities.FruitSpec, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.spec())
	}
	return out, nil
}

var conditionAliases = map[string]string{
	"soleil_optimale": "optimal_sun",
	"ensoleillé":      "sunny",
	"nuageux":         "cloudy",
	"pluie_moderée":   "moderate_rain",
	"pluie_modérée":   "moderate_rain",
	"pluie_forte":     "heavy_rain",
	"vent_fort":       "strong_wind",
	"sécheresse":      "drought",
	"gel":             "frost",
	"chaleur_extrême": "extreme_heat",
}

// CanonicalCondition maps a weather condition label to its English key.
func CanonicalCondition(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if en, ok := conditionAliases[c]; ok {
		return en
	}
	return c
}

// Normalize validates entries loaded from outside: names are required and
// unique, zone labels are canonicalised and unknown ones dropped. Every
// dropped item is reported in warnings.
func Normalize(specs []entities.FruitSpec) ([]entities.FruitSpec, []string) {
	var warnings []string
	seen := map[string]bool{}
	out := make([]entities.FruitSpec, 0, len(specs))
	for i, s := range specs {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			warnings = append(warnings, fmt.Sprintf("entry %d: missing name, skipped", i))
			continue
		}
		if seen[s.Name] {
			warnings = append(warnings, fmt.Sprintf("entry %d: duplicate name %q, skipped", i, s.Name))
			continue
		}
		seen[s.Name] = true

		regions := make([]entities.ClimateZone, 0, len(s.Regions))
		have := map[entities.ClimateZone]bool{}
		for _, r := range s.Regions {
			z, err := climate.ParseZone(string(r))
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: %v, dropped", s.Name, err))
				continue
			}
			if !have[z] {
				have[z] = true
				regions = append(regions, z)
			}
		}
		s.Regions = regions

		if len(s.WeatherFactor) > 0 {
			wf := make(map[string]float64, len(s.WeatherFactor))
			for k, v := range s.WeatherFactor {
				wf[CanonicalCondition(k)] = v
			}
			s.WeatherFactor = wf
		}
		out = append(out, s)
	}
	return out, warnings
}

// ExpectedYield is the harvest expected from areaM2 of the fruit under the
// given weather condition. Unknown or empty conditions use a factor of 1.
func ExpectedYield(spec entities.FruitSpec, areaM2 float64, condition string) float64 {
	factor := 1.0
	if condition != "" {
		if f, ok := spec.WeatherFactor[CanonicalCondition(condition)]; ok {
			factor = f
		}
	}
	return areaM2 * spec.YieldPerM2 * factor
}

// PriceTable maps each fruit name to its sale price.
func PriceTable(catalog []entities.FruitSpec) map[string]float64 {
	prices := make(map[string]float64, len(catalog))
	for _, f := range catalog {
		prices[f.Name] = f.UnitPrice
	}
	return prices
}
