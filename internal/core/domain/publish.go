package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wire shapes mirror the ad platform's nested object model:
// campaign -> ad set -> ad -> creative. Field names follow the Graph
// API conventions; budgets travel as strings of minor currency units.

// PublishData is the complete request payload for one publish attempt.
type PublishData struct {
	Campaign CampaignSpec `json:"campaign"`
	AdSet    AdSetSpec    `json:"adset"`
	Ads      []AdSpec     `json:"ads"`
}

type CampaignSpec struct {
	Name                string   `json:"name"`
	Objective           string   `json:"objective"`
	SpecialAdCategories []string `json:"special_ad_categories"`
}

type AdSetSpec struct {
	Name             string    `json:"name"`
	DailyBudget      string    `json:"daily_budget"`
	BillingEvent     string    `json:"billing_event"`
	OptimizationGoal string    `json:"optimization_goal"`
	Targeting        Targeting `json:"targeting"`
}

type Targeting struct {
	GeoLocations GeoLocations `json:"geo_locations"`
	AgeMin       int          `json:"age_min"`
	AgeMax       int          `json:"age_max"`
	Genders      []int        `json:"genders,omitempty"`
}

type GeoLocations struct {
	Countries       []string         `json:"countries,omitempty"`
	Regions         []KeyedPlace     `json:"regions,omitempty"`
	Cities          []KeyedPlace     `json:"cities,omitempty"`
	CustomLocations []CustomLocation `json:"custom_locations,omitempty"`
}

// KeyedPlace references a named place by its platform targeting key.
type KeyedPlace struct {
	Key string `json:"key"`
}

// CustomLocation targets a centroid plus radius instead of a named place.
type CustomLocation struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Radius       float64 `json:"radius"`
	DistanceUnit string  `json:"distance_unit"`
}

type AdSpec struct {
	Name     string       `json:"name"`
	Creative CreativeSpec `json:"creative"`
	Tracking TrackingSpec `json:"tracking"`
}

type CreativeSpec struct {
	PageID           string `json:"page_id"`
	InstagramActorID string `json:"instagram_actor_id,omitempty"`
	Headline         string `json:"headline,omitempty"`
	PrimaryText      string `json:"primary_text,omitempty"`
	Description      string `json:"description,omitempty"`
	ImageURL         string `json:"image_url,omitempty"`
	CallToAction     string `json:"call_to_action"`
	LinkURL          string `json:"link_url,omitempty"`
	LeadFormID       string `json:"lead_form_id,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
}

type TrackingSpec struct {
	URLTags string `json:"url_tags,omitempty"`
}

// GenerateInput is the normalized data the payload transformer consumes.
// It carries only fields the transformer actually uses.
type GenerateInput struct {
	CampaignName     string
	Goal             Goal
	DailyBudget      int64
	Currency         string
	PageID           string
	InstagramActorID string
	AdName           string
	Copy             *CopyVariation
	Creative         *Creative
	Destination      Destination
	Locations        []TargetLocation
	AgeMin           int
	AgeMax           int
	Genders          []int
}

// PublishPreview is the transformer output: the wire payload plus the
// human-facing summary shown before submission. Identical inputs always
// produce an identical preview.
type PublishPreview struct {
	Data             PublishData `json:"publishData"`
	Warnings         []string    `json:"warnings,omitempty"`
	AdCount          int         `json:"adCount"`
	DailyBudgetText  string      `json:"dailyBudgetText"`
	TargetingSummary string      `json:"targetingSummary"`
}

// PublishOutcome is returned to the caller after a publish attempt that
// succeeded upstream, regardless of local bookkeeping.
type PublishOutcome struct {
	MetaAdID string `json:"metaAdId"`
	Status   string `json:"status"`
}

// PublishRecord is an append-only audit row written per publish attempt.
type PublishRecord struct {
	ID         uuid.UUID `json:"id"`
	AdID       uuid.UUID `json:"adId"`
	CampaignID uuid.UUID `json:"campaignId"`
	MetaAdID   string    `json:"metaAdId"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReconcileTask signals that an upstream publish succeeded but local
// bookkeeping failed and must be repaired by a background worker.
type ReconcileTask struct {
	AdID       uuid.UUID `json:"adId"`
	CampaignID uuid.UUID `json:"campaignId"`
	MetaAdID   string    `json:"metaAdId"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}
