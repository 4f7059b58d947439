package domain

import "github.com/google/uuid"

// Location types recognised by the payload transformer.
const (
	LocationCountry = "country"
	LocationRegion  = "region"
	LocationCity    = "city"
	LocationRadius  = "radius"
)

// TargetLocation is one geographic entry of an ad's target set. Key is
// the platform-specific opaque identifier required to reference the
// place in a publish payload; it is distinct from the display Name and
// is resolved by an external collaborator. Radius-type locations carry
// a centroid and radius instead of a key.
type TargetLocation struct {
	ID       uuid.UUID `json:"id"`
	AdID     uuid.UUID `json:"adId"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Key      string    `json:"key,omitempty"`
	Lat      float64   `json:"lat,omitempty"`
	Lng      float64   `json:"lng,omitempty"`
	RadiusMi float64   `json:"radiusMi,omitempty"`
}
