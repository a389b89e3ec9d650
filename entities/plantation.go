package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type ClimateZone string

const (
	Tropical      ClimateZone = "tropical"
	Subtropical   ClimateZone = "subtropical"
	Mediterranean ClimateZone = "mediterranean"
	Temperate     ClimateZone = "temperate"
	Cold          ClimateZone = "cold"
)

// Zones lists every climate zone from the equator outwards.
var Zones = []ClimateZone{Tropical, Subtropical, Mediterranean, Temperate, Cold}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Geolocation struct {
	GeoPoint
	Climate ClimateZone `json:"climate"`
}

type Plantation struct {
	ID            string         `json:"id,omitempty"`
	Geolocation   Geolocation    `json:"geolocation"`
	Climate       ClimateZone    `json:"climate"`
	TotalAreaM2   float64        `json:"total_area_m2"`
	PlantedFruits map[string]int `json:"planted_fruits"`
	CreatedAt     Timestamp      `json:"created_at"`
	IsTest        bool           `json:"is_test,omitempty"`
}

// PlantedArea is the sum of all allocated areas; never above TotalAreaM2.
func (p Plantation) PlantedArea() int {
	sum := 0
	for _, a := range p.PlantedFruits {
		sum += a
	}
	return sum
}

// Validate checks the fields a registry record must carry.
func (p Plantation) Validate() error {
	if p.Climate != p.Geolocation.Climate {
		return fmt.Errorf("climate %q does not match geolocation climate %q", p.Climate, p.Geolocation.Climate)
	}
	if p.TotalAreaM2 <= 0 {
		return fmt.Errorf("total_area_m2 must be positive, got %v", p.TotalAreaM2)
	}
	if p.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	for name, area := range p.PlantedFruits {
		if area < 0 {
			return fmt.Errorf("planted fruit %q has negative area %d", name, area)
		}
	}
	return nil
}

// Timestamp reads both zone-aware (RFC 3339) and naive ISO-8601 values.
// Naive values are taken in the local zone.
type Timestamp struct{ time.Time }

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{t}, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
