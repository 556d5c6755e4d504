package domain

import (
	"context"
	"errors"
)

// ErrAddressNotFound reports that the geocoding provider returned no match
// for the address. It is a user-visible condition, not a provider failure.
var ErrAddressNotFound = errors.New("address not found")

// GeocodeResult contains location data returned by a geocoding provider.
type GeocodeResult struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	AddressName  string  `json:"address_name,omitempty"`  // provider-normalized address
	RoadAddress  string  `json:"road_address,omitempty"`  // road-name variant, may be empty
	RegionDepth1 string  `json:"region_1depth,omitempty"` // province / metropolitan city
	RegionDepth2 string  `json:"region_2depth,omitempty"` // city / county / district
}

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
}
