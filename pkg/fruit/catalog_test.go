package fruit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fruitfarm/entities"
)

func TestDecodeJSONLegacyAndCurrent(t *testing.T) {
	doc := `[
		{"nom": "bananes", "icone": "🍌", "rendement_m2": 5, "prix_vente_unitaire": 2.0,
		 "regions": ["tropical", "subtropical"], "facteur_meteo": {"gel": 0.5}},
		{"name": "pommes", "unit_price": 2.5, "regions": ["temperate"]}
	]`
	specs, err := DecodeJSON([]byte(doc))
	require.NoError(t, err)
	require.Len(t, specs, 2)
	require.Equal(t, "bananes", specs[0].Name)
	require.Equal(t, "🍌", specs[0].Icon)
	require.Equal(t, 5.0, specs[0].YieldPerM2)
	require.Equal(t, 0.5, specs[0].WeatherFactor["gel"])
	require.Equal(t, "pommes", specs[1].Name)
	require.Equal(t, 2.5, specs[1].UnitPrice)

	_, err = DecodeJSON([]byte(`{not json`))
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	in := []entities.FruitSpec{
		{Name: " figues ", Regions: []entities.ClimateZone{"méditerranéen", "mediterranean", "lunar"}, WeatherFactor: map[string]float64{"gel": 0.5}},
		{Name: "", Regions: []entities.ClimateZone{"tropical"}},
		{Name: "figues", Regions: []entities.ClimateZone{"tropical"}},
	}
	out, warnings := Normalize(in)
	require.Len(t, out, 1)
	require.Equal(t, "figues", out[0].Name)
	require.Equal(t, []entities.ClimateZone{entities.Mediterranean}, out[0].Regions)
	require.Equal(t, 0.5, out[0].WeatherFactor["frost"])
	require.Len(t, warnings, 3)
}

func TestDefaultCatalogIsNormalized(t *testing.T) {
	def := DefaultCatalog()
	out, warnings := Normalize(def)
	require.Empty(t, warnings)
	require.Len(t, out, 14)
	for _, z := range []entities.ClimateZone{entities.Tropical, entities.Subtropical, entities.Mediterranean, entities.Temperate} {
		require.NotEmpty(t, compatibleNames(def, z), z)
	}
	require.Empty(t, compatibleNames(def, entities.Cold))
}

func compatibleNames(specs []entities.FruitSpec, z entities.ClimateZone) []string {
	var names []string
	for _, s := range specs {
		if s.GrowsIn(z) {
			names = append(names, s.Name)
		}
	}
	return names
}

func TestExpectedYield(t *testing.T) {
	spec := entities.FruitSpec{YieldPerM2: 5, WeatherFactor: map[string]float64{"frost": 0.5}}
	require.InDelta(t, 500.0, ExpectedYield(spec, 100, ""), 1e-9)
	require.InDelta(t, 250.0, ExpectedYield(spec, 100, "gel"), 1e-9)
	require.InDelta(t, 500.0, ExpectedYield(spec, 100, "hail"), 1e-9)
}

func TestPriceTable(t *testing.T) {
	prices := PriceTable(DefaultCatalog())
	require.Equal(t, 2.0, prices["bananes"])
	require.Equal(t, 7.0, prices["mangues"])
	_, ok := prices["papayes"]
	require.False(t, ok)
}
