package models

import (
	"math"
	"strconv"
)

// NearbyPlace is a single result from a proximity search. The upstream
// provider omits ratings for unrated places, so HasRating distinguishes
// "no rating" from a genuine zero.
type NearbyPlace struct {
	Name      string  `json:"name"`
	Rating    float64 `json:"rating,omitempty"` // Rating on the upstream 0-5 star scale.
	HasRating bool    `json:"hasRating"`
}

// DisplayRating renders the rating on the 0-100 display scale, or "N/A"
// when the place has no rating. The scaled value is rounded and clamped
// to the display range.
func (p NearbyPlace) DisplayRating() string {
	if !p.HasRating {
		return "N/A"
	}

	const scaleFactor = 20
	scaled := math.Round(p.Rating * scaleFactor)
	scaled = math.Max(0, math.Min(100, scaled))

	return strconv.Itoa(int(scaled))
}

// EnrichedListingView is the fully populated view model for one
// listing-display session. It is mutated only by the session that owns it.
type EnrichedListingView struct {
	Listing     Listing       `json:"listing"`
	Coordinates *GeoPoint     `json:"coordinates,omitempty"`
	Schools     []NearbyPlace `json:"schools"`
	Parks       []NearbyPlace `json:"parks"`
}
