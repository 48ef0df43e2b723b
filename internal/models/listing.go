package models

// Listing represents a property record from the document store.
// Coordinates is nil for records that were created before geocoding
// existed or that have never been geocoded.
type Listing struct {
	ID           string    `json:"id"`           // ID is the unique identifier assigned by the store.
	Title        string    `json:"title"`        // Title is the marketing headline of the listing.
	Description  string    `json:"description"`  // Description is the free-text body of the listing.
	Address      string    `json:"address"`      // Address is the free-text street address.
	City         string    `json:"city"`         // City is the free-text city name.
	State        string    `json:"state"`        // State is the free-text state or region.
	PropertyType string    `json:"propertyType"` // PropertyType is e.g. Condo, House, Apartment.
	Price        int       `json:"price"`        // Price in whole dollars.
	Bedrooms     int       `json:"bedrooms"`     // Bedrooms count.
	Bathrooms    int       `json:"bathrooms"`    // Bathrooms count.
	Sqft         int       `json:"sqft"`         // Sqft is the interior square footage.
	Images       []string  `json:"images"`       // Images is the ordered list of image URLs.
	Coordinates  *GeoPoint `json:"coordinates,omitempty"`
}

// GeocodeAddress builds the address string submitted to the geocoder,
// concatenating street address and city with a comma.
func (l Listing) GeocodeAddress() string {
	return l.Address + ", " + l.City
}
