package port

import (
	"context"

	"github.com/google/uuid"

	"adpilot/internal/core/domain"
)

// PublishPipeline is the primary inbound port for the publish flow:
// readiness checks, payload preview and the orchestrated publish.
type PublishPipeline interface {
	// Preflight runs the read-only readiness checks. Safe to call
	// repeatedly; results may be served from a short-lived cache.
	Preflight(ctx context.Context, ownerID string, adID uuid.UUID) (*domain.PreflightReport, error)

	// Preview generates the wire payload without submitting it.
	Preview(ctx context.Context, ownerID string, adID uuid.UUID) (*domain.PublishPreview, error)

	// Publish validates, generates, submits to the ad platform and
	// persists the result. Once the upstream submission succeeds the
	// outcome is success even if local bookkeeping fails afterwards.
	Publish(ctx context.Context, ownerID string, adID, campaignID uuid.UUID) (*domain.PublishOutcome, error)

	// PublishRecords lists the append-only audit rows of an ad.
	PublishRecords(ctx context.Context, ownerID string, adID uuid.UUID) ([]domain.PublishRecord, error)
}

// CampaignLifecycle is the inbound port owning campaign and ad
// create/delete/rename semantics.
type CampaignLifecycle interface {
	// CreateDraftAd inserts a draft ad named after the campaign and the
	// current time, retrying with a numeric disambiguator on conflicts.
	CreateDraftAd(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Ad, error)

	// DeleteCampaign is idempotent: deleting an absent campaign succeeds.
	DeleteCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) error

	// RenameCampaign retries a uniqueness conflict exactly once with a
	// resolver-derived alternative before surfacing a conflict.
	RenameCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID, name string) (*domain.Campaign, error)

	GetCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, ownerID string) ([]domain.Campaign, error)
}
