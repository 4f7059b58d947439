package domain

import (
	"time"

	"github.com/google/uuid"
)

// Goal is the outcome a campaign optimizes for.
type Goal string

const (
	GoalLeads   Goal = "leads"
	GoalCalls   Goal = "calls"
	GoalWebsite Goal = "website-visits"
)

// Campaign statuses.
const (
	CampaignStatusDraft  = "draft"
	CampaignStatusActive = "active"
	CampaignStatusPaused = "paused"
)

// Campaign represents an advertising campaign owned by a single user.
// DailyBudget is stored in integer minor currency units (e.g. cents).
// Name is unique case-insensitively within the owner's campaign set.
type Campaign struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Goal        Goal      `json:"goal"`
	DailyBudget int64     `json:"dailyBudget"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	// OriginPrompt is the free-form prompt the campaign was created from.
	// It seeds alternative-name derivation on rename conflicts.
	OriginPrompt string    `json:"originPrompt,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
