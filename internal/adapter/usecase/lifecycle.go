package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/internal/metrics"
)

// draftNameAttempts bounds the create-retry loop. The loop is pure CPU
// between attempts, so it cannot starve the process; exhausting it
// surfaces a retryable conflict instead of looping forever.
const draftNameAttempts = 5

const draftTimeLayout = "Jan 2, 2006, 3:04 PM"

// Lifecycle implements port.CampaignLifecycle: draft ad creation with
// retry-on-conflict, idempotent campaign delete with best-effort child
// fan-out, and rename with a single resolver-backed retry.
type Lifecycle struct {
	campaigns port.CampaignRepository
	ads       port.AdRepository
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewLifecycle(campaigns port.CampaignRepository, ads port.AdRepository, m *metrics.Metrics, logger *slog.Logger) *Lifecycle {
	return &Lifecycle{
		campaigns: campaigns,
		ads:       ads,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateDraftAd inserts a draft ad named "<campaign> - Draft <time>".
// Draft names are system-generated, so on a uniqueness conflict an
// incrementing disambiguator is appended; uniqueness matters more than
// aesthetics here, unlike user-facing renames.
func (l *Lifecycle) CreateDraftAd(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Ad, error) {
	campaign, err := l.ownedCampaign(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%s - Draft %s", campaign.Name, l.now().Format(draftTimeLayout))
	for attempt := 0; attempt < draftNameAttempts; attempt++ {
		name := base
		if attempt > 0 {
			name = fmt.Sprintf("%s (%d)", base, attempt)
		}
		ad := &domain.Ad{
			ID:         uuid.New(),
			CampaignID: campaignID,
			Name:       name,
			Status:     domain.AdStatusDraft,
			CreatedAt:  l.now().UTC(),
			UpdatedAt:  l.now().UTC(),
		}
		err = l.ads.CreateAd(ctx, ad)
		if err == nil {
			return ad, nil
		}
		if !errors.Is(err, port.ErrNameTaken) {
			return nil, fmt.Errorf("create draft ad: %w", err)
		}
		l.metrics.DraftRetries.Inc()
	}
	return nil, domain.E(domain.CodeConflict, "could not allocate a unique draft name, please retry")
}

// DeleteCampaign removes a campaign and its dependents. Deleting an
// absent campaign succeeds: the desired end state is already achieved.
// Child deletions are best-effort; only a failure of the parent row
// delete is reported.
func (l *Lifecycle) DeleteCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) error {
	campaign, err := l.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("load campaign: %w", err)
	}
	if campaign == nil {
		return nil
	}
	if campaign.OwnerID != ownerID {
		return domain.E(domain.CodeForbidden, "the campaign belongs to another user")
	}

	children := []struct {
		name string
		fn   func(context.Context, uuid.UUID) error
	}{
		{"publish records", l.campaigns.DeletePublishRecordsByCampaign},
		{"ads", l.campaigns.DeleteAdsByCampaign},
		{"conversation history", l.campaigns.DeleteConversationsByCampaign},
	}
	for _, child := range children {
		if err := child.fn(ctx, campaignID); err != nil {
			l.logger.Warn("campaign child deletion failed",
				slog.String("campaign_id", campaignID.String()),
				slog.String("child", child.name),
				slog.Any("error", err))
		}
	}

	if _, err := l.campaigns.DeleteCampaign(ctx, campaignID); err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}

// RenameCampaign attempts the requested name, and on a uniqueness
// conflict retries exactly once with an alternative derived from the
// campaign's origin prompt. A second conflict is surfaced, not retried.
func (l *Lifecycle) RenameCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID, name string) (*domain.Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.E(domain.CodeValidation, "a campaign name is required")
	}
	campaign, err := l.ownedCampaign(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}

	updated, err := l.campaigns.RenameCampaign(ctx, campaignID, name)
	if err == nil {
		if updated == nil {
			return nil, domain.E(domain.CodeNotFound, "campaign not found")
		}
		return updated, nil
	}
	if !errors.Is(err, port.ErrNameTaken) {
		return nil, fmt.Errorf("rename campaign: %w", err)
	}

	names, err := l.campaigns.ListCampaignNames(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list campaign names: %w", err)
	}
	taken := make(map[string]struct{}, len(names)+1)
	for _, n := range names {
		taken[strings.ToLower(n)] = struct{}{}
	}
	// The datastore already rejected the name; make sure the taken set
	// reflects that even if the listing raced.
	taken[strings.ToLower(name)] = struct{}{}

	alternative, err := ResolveName(name, campaign.OriginPrompt, taken)
	if err != nil {
		return nil, err
	}
	updated, err = l.campaigns.RenameCampaign(ctx, campaignID, alternative)
	if errors.Is(err, port.ErrNameTaken) {
		return nil, domain.E(domain.CodeConflict, "the name and its derived alternative are both taken")
	}
	if err != nil {
		return nil, fmt.Errorf("rename campaign: %w", err)
	}
	if updated == nil {
		return nil, domain.E(domain.CodeNotFound, "campaign not found")
	}
	return updated, nil
}

// GetCampaign returns one campaign of the owner.
func (l *Lifecycle) GetCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Campaign, error) {
	return l.ownedCampaign(ctx, ownerID, campaignID)
}

// ListCampaigns returns every campaign of the owner.
func (l *Lifecycle) ListCampaigns(ctx context.Context, ownerID string) ([]domain.Campaign, error) {
	return l.campaigns.ListCampaigns(ctx, ownerID)
}

func (l *Lifecycle) ownedCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Campaign, error) {
	campaign, err := l.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("load campaign: %w", err)
	}
	if campaign == nil {
		return nil, domain.E(domain.CodeNotFound, "campaign not found")
	}
	if campaign.OwnerID != ownerID {
		return nil, domain.E(domain.CodeForbidden, "the campaign belongs to another user")
	}
	return campaign, nil
}
