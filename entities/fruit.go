package entities

// FruitSpec is a read-only catalog entry.
type FruitSpec struct {
	Name          string             `json:"name" yaml:"name"`
	Icon          string             `json:"icon,omitempty" yaml:"icon,omitempty"`
	SowingStart   string             `json:"sowing_start,omitempty" yaml:"sowing_start,omitempty"`   // MM-DD
	SowingEnd     string             `json:"sowing_end,omitempty" yaml:"sowing_end,omitempty"`       // MM-DD
	HarvestStart  string             `json:"harvest_start,omitempty" yaml:"harvest_start,omitempty"` // MM-DD
	HarvestEnd    string             `json:"harvest_end,omitempty" yaml:"harvest_end,omitempty"`     // MM-DD
	YieldPerM2    float64            `json:"yield_per_m2" yaml:"yield_per_m2"`
	UnitCost      float64            `json:"unit_cost" yaml:"unit_cost"`
	UnitPrice     float64            `json:"unit_price" yaml:"unit_price"`
	Regions       []ClimateZone      `json:"regions" yaml:"regions"`
	WeatherFactor map[string]float64 `json:"weather_factor,omitempty" yaml:"weather_factor,omitempty"`
}

// GrowsIn reports whether zone is one of the fruit's regions.
func (f FruitSpec) GrowsIn(zone ClimateZone) bool {
	for _, r := range f.Regions {
		if r == zone {
			return true
		}
	}
	return false
}
