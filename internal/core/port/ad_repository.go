package port

import (
	"context"

	"github.com/google/uuid"

	"adpilot/internal/core/domain"
)

// AdBundle is an ad joined with the child records its selected pointers
// reference. Absent selections are nil.
type AdBundle struct {
	Ad          domain.Ad
	Copy        *domain.CopyVariation
	Creative    *domain.Creative
	Destination *domain.Destination
	Budget      *domain.BudgetOverride
	Locations   []domain.TargetLocation
}

// AdRepository is the outbound persistence port for ads and their
// publish bookkeeping. A missing row is returned as (nil, nil).
type AdRepository interface {
	GetAd(ctx context.Context, id uuid.UUID) (*domain.Ad, error)
	GetAdBundle(ctx context.Context, id uuid.UUID) (*AdBundle, error)
	// CreateAd returns ErrNameTaken when the (campaign, name) uniqueness
	// constraint rejects the insert.
	CreateAd(ctx context.Context, ad *domain.Ad) error
	// SetPublishResult writes the external identifier and resulting
	// status back onto the ad row.
	SetPublishResult(ctx context.Context, adID uuid.UUID, metaAdID, status string) error
	InsertPublishRecord(ctx context.Context, rec *domain.PublishRecord) error
	ListPublishRecords(ctx context.Context, adID uuid.UUID) ([]domain.PublishRecord, error)
}
