package domain

import (
	"time"

	"github.com/google/uuid"
)

// Connection is the per-campaign link to the ad platform. It is
// read-only from the publish pipeline's perspective; tokens are
// refreshed by an external collaborator.
type Connection struct {
	ID               uuid.UUID `json:"id"`
	CampaignID       uuid.UUID `json:"campaignId"`
	AccessToken      string    `json:"-"`
	TokenExpiresAt   time.Time `json:"tokenExpiresAt"`
	BusinessID       string    `json:"businessId,omitempty"`
	PageID           string    `json:"pageId"`
	AdAccountID      string    `json:"adAccountId"`
	InstagramActorID string    `json:"instagramActorId,omitempty"`
	PaymentConnected bool      `json:"paymentConnected"`
	Currency         string    `json:"currency"`
}
