package fruit

import "fruitfarm/entities"

func factors(sunny, cloudy, heavyRain, wind, drought, frost, heat float64) map[string]float64 {
	return map[string]float64{
		"optimal_sun":   sunny,
		"sunny":         1.0,
		"cloudy":        cloudy,
		"moderate_rain": 1.0,
		"heavy_rain":    heavyRain,
		"strong_wind":   wind,
		"drought":       drought,
		"frost":         frost,
		"extreme_heat":  heat,
	}
}

var (
	tropics   = []entities.ClimateZone{entities.Tropical, entities.Subtropical}
	temperate = []entities.ClimateZone{entities.Temperate}
	midlands  = []entities.ClimateZone{entities.Temperate, entities.Mediterranean}
	med       = []entities.ClimateZone{entities.Mediterranean}
)

// DefaultCatalog is written to the catalog store the first time it is missing.
func DefaultCatalog() []entities.FruitSpec {
	return []entities.FruitSpec{
		{Name: "bananes", Icon: "🍌", SowingStart: "03-01", SowingEnd: "04-15", HarvestStart: "09-01", HarvestEnd: "10-15", YieldPerM2: 5, UnitCost: 0.20, UnitPrice: 2.00, Regions: tropics, WeatherFactor: factors(1.2, 0.9, 0.8, 0.85, 0.7, 0.5, 0.6)},
		{Name: "mangues", Icon: "🥭", SowingStart: "02-15", SowingEnd: "03-30", HarvestStart: "07-15", HarvestEnd: "08-30", YieldPerM2: 3, UnitCost: 0.50, UnitPrice: 7.00, Regions: tropics, WeatherFactor: factors(1.2, 0.9, 0.85, 0.8, 0.6, 0.5, 0.7)},
		{Name: "ananas", Icon: "🍍", SowingStart: "01-01", SowingEnd: "01-31", HarvestStart: "06-01", HarvestEnd: "06-30", YieldPerM2: 4, UnitCost: 0.40, UnitPrice: 5.00, Regions: tropics, WeatherFactor: factors(1.2, 0.9, 0.85, 0.8, 0.6, 0.5, 0.7)},
		{Name: "noix de coco", Icon: "🥥", SowingStart: "04-01", SowingEnd: "05-31", HarvestStart: "11-01", HarvestEnd: "12-31", YieldPerM2: 2, UnitCost: 0.60, UnitPrice: 4.00, Regions: tropics, WeatherFactor: factors(1.2, 0.9, 0.85, 0.8, 0.6, 0.5, 0.7)},
		{Name: "pastèques", Icon: "🍉", SowingStart: "04-15", SowingEnd: "05-15", HarvestStart: "08-01", HarvestEnd: "09-15", YieldPerM2: 1, UnitCost: 0.80, UnitPrice: 3.50, Regions: midlands, WeatherFactor: factors(1.2, 0.9, 0.8, 0.85, 0.6, 0.5, 0.6)},
		{Name: "avocats", Icon: "🥑", SowingStart: "03-15", SowingEnd: "04-30", HarvestStart: "10-01", HarvestEnd: "11-15", YieldPerM2: 2, UnitCost: 0.70, UnitPrice: 5.00, Regions: []entities.ClimateZone{entities.Subtropical, entities.Mediterranean}, WeatherFactor: factors(1.2, 0.9, 0.85, 0.8, 0.7, 0.5, 0.6)},
		{Name: "pommes", Icon: "🍎", SowingStart: "02-01", SowingEnd: "03-15", HarvestStart: "09-01", HarvestEnd: "10-15", YieldPerM2: 4, UnitCost: 0.25, UnitPrice: 2.50, Regions: temperate, WeatherFactor: factors(1.1, 0.9, 0.85, 0.9, 0.8, 0.6, 0.7)},
		{Name: "poires", Icon: "🍐", SowingStart: "02-15", SowingEnd: "03-31", HarvestStart: "09-15", HarvestEnd: "10-30", YieldPerM2: 4, UnitCost: 0.30, UnitPrice: 2.80, Regions: temperate, WeatherFactor: factors(1.1, 0.9, 0.85, 0.9, 0.8, 0.6, 0.7)},
		{Name: "fraises", Icon: "🍓", SowingStart: "03-01", SowingEnd: "04-15", HarvestStart: "06-01", HarvestEnd: "07-15", YieldPerM2: 10, UnitCost: 0.15, UnitPrice: 1.50, Regions: midlands, WeatherFactor: factors(1.2, 0.9, 0.85, 0.85, 0.7, 0.5, 0.6)},
		{Name: "cerises", Icon: "🍒", SowingStart: "02-15", SowingEnd: "03-15", HarvestStart: "06-15", HarvestEnd: "07-10", YieldPerM2: 5, UnitCost: 0.35, UnitPrice: 4.00, Regions: temperate, WeatherFactor: factors(1.2, 0.9, 0.85, 0.85, 0.7, 0.5, 0.6)},
		{Name: "raisins", Icon: "🍇", SowingStart: "03-01", SowingEnd: "04-10", HarvestStart: "09-10", HarvestEnd: "10-05", YieldPerM2: 6, UnitCost: 0.40, UnitPrice: 3.00, Regions: midlands, WeatherFactor: factors(1.2, 0.9, 0.85, 0.85, 0.7, 0.5, 0.6)},
		{Name: "citron", Icon: "🍋", SowingStart: "03-10", SowingEnd: "04-30", HarvestStart: "11-15", HarvestEnd: "12-31", YieldPerM2: 3, UnitCost: 0.25, UnitPrice: 2.20, Regions: med, WeatherFactor: factors(1.2, 0.9, 0.85, 0.85, 0.7, 0.5, 0.6)},
		{Name: "prunes", Icon: "🍑", SowingStart: "02-15", SowingEnd: "03-20", HarvestStart: "08-10", HarvestEnd: "09-05", YieldPerM2: 4, UnitCost: 0.28, UnitPrice: 3.00, Regions: temperate, WeatherFactor: factors(1.2, 0.9, 0.85, 0.85, 0.7, 0.5, 0.6)},
		{Name: "figues", Icon: "🍈", SowingStart: "03-05", SowingEnd: "04-10", HarvestStart: "08-20", HarvestEnd: "09-25", YieldPerM2: 2, UnitCost: 0.45, UnitPrice: 4.50, Regions: med, WeatherFactor: factors(1.2, 0.9, 0.85, 0.85, 0.7, 0.5, 0.6)},
	}
}
