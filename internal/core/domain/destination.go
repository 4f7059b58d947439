package domain

import "github.com/google/uuid"

// DestinationType is the action a clicked or submitted ad drives toward.
type DestinationType string

const (
	DestinationWebsite DestinationType = "website"
	DestinationForm    DestinationType = "form"
	DestinationCall    DestinationType = "call"
)

// Destination configures where an ad sends its audience. Exactly one of
// the type-specific fields is authoritative depending on Type; URL also
// serves as an auxiliary link for form destinations.
type Destination struct {
	ID         uuid.UUID       `json:"id"`
	AdID       uuid.UUID       `json:"adId"`
	Type       DestinationType `json:"type"`
	URL        string          `json:"url,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	LeadFormID string          `json:"leadFormId,omitempty"`
}
