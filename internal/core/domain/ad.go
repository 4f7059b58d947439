package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ad lifecycle statuses.
const (
	AdStatusDraft         = "draft"
	AdStatusPendingReview = "pending_review"
	AdStatusActive        = "active"
	AdStatusPaused        = "paused"
	AdStatusRejected      = "rejected"
	AdStatusFailed        = "failed"
	AdStatusLearning      = "learning"
	AdStatusArchived      = "archived"
)

// Ad belongs to exactly one campaign. The Selected* pointers identify
// which child variation is authoritative for publishing. MetaAdID is
// assigned after a successful publish.
type Ad struct {
	ID                    uuid.UUID  `json:"id"`
	CampaignID            uuid.UUID  `json:"campaignId"`
	Name                  string     `json:"name"`
	Status                string     `json:"status"`
	MetaAdID              string     `json:"metaAdId,omitempty"`
	SelectedCreativeID    *uuid.UUID `json:"selectedCreativeId,omitempty"`
	SelectedCopyID        *uuid.UUID `json:"selectedCopyId,omitempty"`
	SelectedDestinationID *uuid.UUID `json:"selectedDestinationId,omitempty"`
	SelectedBudgetID      *uuid.UUID `json:"selectedBudgetId,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// Creative is an image or video asset attached to an ad.
type Creative struct {
	ID       uuid.UUID `json:"id"`
	AdID     uuid.UUID `json:"adId"`
	ImageURL string    `json:"imageUrl"`
	VideoURL string    `json:"videoUrl,omitempty"`
}

// CopyVariation is one set of ad text.
type CopyVariation struct {
	ID          uuid.UUID `json:"id"`
	AdID        uuid.UUID `json:"adId"`
	PrimaryText string    `json:"primaryText"`
	Headline    string    `json:"headline"`
	Description string    `json:"description"`
}

// BudgetOverride replaces the campaign daily budget for a single ad.
// Amount is in integer minor currency units.
type BudgetOverride struct {
	ID     uuid.UUID `json:"id"`
	AdID   uuid.UUID `json:"adId"`
	Amount int64     `json:"amount"`
}
