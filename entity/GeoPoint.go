package entity

// GeoPoint is the canonical coordinate shape used by every producer and
// consumer of location events. The legacy {lat,long} wire shape is
// normalized to this at the boundary.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies in the WGS84 coordinate range.
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}
