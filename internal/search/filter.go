package search

import (
	"strconv"
	"strings"

	"github.com/lexirealty/homestead/internal/models"
)

// FilterListings narrows an already-fetched listing collection by a
// free-text query. Matching is case-insensitive substring over title,
// address, city and state, plus bedrooms and price rendered as strings.
// An empty query returns the input unchanged.
func FilterListings(listings []models.Listing, query string) []models.Listing {
	query = strings.TrimSpace(query)
	if query == "" {
		return listings
	}
	lowered := strings.ToLower(query)

	filtered := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		if matches(listing, lowered) {
			filtered = append(filtered, listing)
		}
	}

	return filtered
}

func matches(listing models.Listing, lowered string) bool {
	for _, field := range []string{listing.Title, listing.Address, listing.City, listing.State} {
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}

	return strings.Contains(strconv.Itoa(listing.Bedrooms), lowered) ||
		strings.Contains(strconv.Itoa(listing.Price), lowered)
}
