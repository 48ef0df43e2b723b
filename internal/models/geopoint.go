package models

// GeoPoint represents a geographical point defined by its latitude and longitude.
type GeoPoint struct {
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
	Longitude float64 `json:"lng"` // Longitude of the geographical point.
}

// Valid reports whether the point lies within the valid latitude and longitude ranges.
func (p GeoPoint) Valid() bool {
	const (
		maxLatitude  = 90
		maxLongitude = 180
	)

	return p.Latitude >= -maxLatitude && p.Latitude <= maxLatitude &&
		p.Longitude >= -maxLongitude && p.Longitude <= maxLongitude
}
