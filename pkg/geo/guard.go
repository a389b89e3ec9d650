package geo

import (
	"fruitfarm/entities"
)

// Conflict describes the existing plantation closest to a rejected candidate.
type Conflict struct {
	Plantation entities.Plantation
	DistanceKM float64
}

// Guard enforces a minimum great-circle spacing between plantations.
type Guard struct {
	MinDistanceKM float64
}

func NewGuard(minKM float64) Guard { return Guard{MinDistanceKM: minKM} }

// Check returns the closest existing plantation strictly nearer than the
// minimum spacing. ok is true when the candidate is accepted.
func (g Guard) Check(candidate entities.GeoPoint, existing []entities.Plantation) (Conflict, bool) {
	var (
		nearest Conflict
		found   bool
	)
	for _, p := range existing {
		d := Haversine(candidate, p.Geolocation.GeoPoint)
		if d < g.MinDistanceKM && (!found || d < nearest.DistanceKM) {
			nearest = Conflict{Plantation: p, DistanceKM: d}
			found = true
		}
	}
	return nearest, !found
}
