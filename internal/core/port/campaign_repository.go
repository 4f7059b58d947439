package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"adpilot/internal/core/domain"
)

// ErrNameTaken is returned by repositories when an insert or rename
// hits the case-insensitive name uniqueness constraint. Callers depend
// on telling "name taken" apart from any other write failure.
var ErrNameTaken = errors.New("name already taken")

// CampaignRepository is the outbound persistence port for campaigns and
// their platform connection. A missing row is returned as (nil, nil).
type CampaignRepository interface {
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, ownerID string) ([]domain.Campaign, error)
	// ListCampaignNames returns every campaign name of the owner,
	// lower-cased, for uniqueness resolution.
	ListCampaignNames(ctx context.Context, ownerID string) ([]string, error)
	// RenameCampaign returns ErrNameTaken on a uniqueness conflict and
	// (nil, nil) when the campaign does not exist.
	RenameCampaign(ctx context.Context, id uuid.UUID, name string) (*domain.Campaign, error)
	// SetPublishData stores the generated payload under the publish_data
	// key of the campaign's metadata column.
	SetPublishData(ctx context.Context, id uuid.UUID, payload []byte) error
	// DeleteCampaign removes the campaign row. The bool reports whether a
	// row was actually deleted; deleting an absent campaign is not an error.
	DeleteCampaign(ctx context.Context, id uuid.UUID) (bool, error)
	// Child-table deletes used by the best-effort delete fan-out.
	DeleteAdsByCampaign(ctx context.Context, id uuid.UUID) error
	DeletePublishRecordsByCampaign(ctx context.Context, id uuid.UUID) error
	DeleteConversationsByCampaign(ctx context.Context, id uuid.UUID) error

	GetConnection(ctx context.Context, campaignID uuid.UUID) (*domain.Connection, error)
}
