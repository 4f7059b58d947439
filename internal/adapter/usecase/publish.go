package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adpilot/internal/cache"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/internal/metrics"
	"adpilot/internal/ratelimit"
)

// preflightCacheTTL bounds how stale an on-demand preflight report can
// be. Publish always runs the checks fresh.
const preflightCacheTTL = 30 * time.Second

// publishRoute keys the publish quota per owner.
const publishRoute = "publish"

// PublishPipeline implements port.PublishPipeline. One publish attempt
// runs strictly sequentially: validate, generate, submit, persist.
// Concurrent attempts for different ads are independent.
type PublishPipeline struct {
	campaigns port.CampaignRepository
	ads       port.AdRepository
	meta      port.MetaClient
	queue     port.ReconcileQueue
	limiter   *ratelimit.FixedWindow
	preflight *Preflight
	reports   *cache.TTL[*domain.PreflightReport]
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewPublishPipeline(
	campaigns port.CampaignRepository,
	ads port.AdRepository,
	meta port.MetaClient,
	queue port.ReconcileQueue,
	limiter *ratelimit.FixedWindow,
	m *metrics.Metrics,
	logger *slog.Logger,
) *PublishPipeline {
	return &PublishPipeline{
		campaigns: campaigns,
		ads:       ads,
		meta:      meta,
		queue:     queue,
		limiter:   limiter,
		preflight: NewPreflight(),
		reports:   cache.NewTTL[*domain.PreflightReport](preflightCacheTTL),
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Preflight runs the readiness checks for an ad, serving a cached
// report when one is fresh enough. Cache entries are keyed per owner so
// a warm entry never answers for a caller the uncached path would
// reject.
func (p *PublishPipeline) Preflight(ctx context.Context, ownerID string, adID uuid.UUID) (*domain.PreflightReport, error) {
	if report, ok := p.reports.Get(reportKey(ownerID, adID)); ok {
		return report, nil
	}
	bundle, campaign, conn, err := p.loadAttempt(ctx, ownerID, adID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	report := p.preflight.Run(preflightInput(bundle, campaign, conn))
	p.reports.Set(reportKey(ownerID, adID), report)
	return report, nil
}

func reportKey(ownerID string, adID uuid.UUID) string {
	return ownerID + ":" + adID.String()
}

// Preview generates the wire payload without submitting it.
func (p *PublishPipeline) Preview(ctx context.Context, ownerID string, adID uuid.UUID) (*domain.PublishPreview, error) {
	bundle, campaign, conn, err := p.loadAttempt(ctx, ownerID, adID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	return Generate(generateInput(bundle, campaign, conn))
}

// Publish runs the full pipeline. Once the platform accepts the
// submission the attempt is a success: a local bookkeeping failure
// after that point is logged and queued for reconciliation, never
// surfaced, so a client retry cannot duplicate the upstream side
// effect.
func (p *PublishPipeline) Publish(ctx context.Context, ownerID string, adID, campaignID uuid.UUID) (*domain.PublishOutcome, error) {
	if ok, retryAfter := p.limiter.Allow(ownerID + ":" + publishRoute); !ok {
		p.metrics.PublishAttempts.WithLabelValues("rate_limited").Inc()
		return nil, &domain.Error{
			Code:       domain.CodeRateLimited,
			Message:    "too many publish attempts, try again shortly",
			RetryAfter: retryAfter,
		}
	}

	bundle, campaign, conn, err := p.loadAttempt(ctx, ownerID, adID, campaignID)
	if err != nil {
		return nil, err
	}

	// validating
	report := p.preflight.Run(preflightInput(bundle, campaign, conn))
	p.reports.Set(reportKey(ownerID, adID), report)
	if !report.CanPublish {
		p.metrics.PublishAttempts.WithLabelValues("validation_failed").Inc()
		return nil, &domain.Error{
			Code:    domain.CodeValidation,
			Message: "the ad is not ready to publish",
			Details: report,
		}
	}

	// generating
	preview, err := Generate(generateInput(bundle, campaign, conn))
	if err != nil {
		p.metrics.PublishAttempts.WithLabelValues("validation_failed").Inc()
		return nil, err
	}
	payload, err := json.Marshal(preview)
	if err != nil {
		return nil, fmt.Errorf("marshal publish preview: %w", err)
	}
	// Persist the payload before submitting so a UI refresh mid-flow
	// can show the last-known-good preview.
	if err = p.campaigns.SetPublishData(ctx, campaign.ID, payload); err != nil {
		return nil, fmt.Errorf("store publish data: %w", err)
	}

	// submitting
	result, err := p.meta.PublishCampaign(ctx, conn.AccessToken, conn.AdAccountID, &preview.Data)
	if err != nil {
		p.metrics.PublishAttempts.WithLabelValues("publish_failed").Inc()
		return nil, err
	}
	status := result.Status
	if status == "" {
		status = domain.AdStatusPendingReview
	}

	// persisting; non-fatal from here on.
	var persistErr error
	if err = p.ads.SetPublishResult(ctx, adID, result.ID, status); err != nil {
		persistErr = fmt.Errorf("set publish result: %w", err)
	}
	record := &domain.PublishRecord{
		ID:         uuid.New(),
		AdID:       adID,
		CampaignID: campaign.ID,
		MetaAdID:   result.ID,
		Status:     status,
		CreatedAt:  p.now().UTC(),
	}
	if err = p.ads.InsertPublishRecord(ctx, record); err != nil && persistErr == nil {
		persistErr = fmt.Errorf("insert publish record: %w", err)
	}
	if persistErr != nil {
		p.logger.Error("publish succeeded upstream but local persistence failed",
			slog.String("ad_id", adID.String()),
			slog.String("meta_ad_id", result.ID),
			slog.Any("error", persistErr))
		p.enqueueReconcile(ctx, adID, campaign.ID, result.ID, status, persistErr)
	}
	p.reports.Invalidate(reportKey(ownerID, adID))
	p.metrics.PublishAttempts.WithLabelValues("published").Inc()

	return &domain.PublishOutcome{MetaAdID: result.ID, Status: status}, nil
}

// PublishRecords lists the audit rows of an ad.
func (p *PublishPipeline) PublishRecords(ctx context.Context, ownerID string, adID uuid.UUID) ([]domain.PublishRecord, error) {
	if _, _, _, err := p.loadAttempt(ctx, ownerID, adID, uuid.Nil); err != nil {
		return nil, err
	}
	return p.ads.ListPublishRecords(ctx, adID)
}

func (p *PublishPipeline) enqueueReconcile(ctx context.Context, adID, campaignID uuid.UUID, metaAdID, status string, cause error) {
	task := domain.ReconcileTask{
		AdID:       adID,
		CampaignID: campaignID,
		MetaAdID:   metaAdID,
		Status:     status,
		Reason:     cause.Error(),
		CreatedAt:  p.now().UTC(),
	}
	if err := p.queue.Enqueue(ctx, task); err != nil {
		p.logger.Error("failed to enqueue reconciliation task",
			slog.String("ad_id", adID.String()),
			slog.Any("error", err))
		return
	}
	p.metrics.ReconcileEnqueued.Inc()
}

// loadAttempt reads the ad bundle, its campaign and the campaign's
// connection, checking ownership and the optional campaign binding.
func (p *PublishPipeline) loadAttempt(ctx context.Context, ownerID string, adID, campaignID uuid.UUID) (*port.AdBundle, *domain.Campaign, *domain.Connection, error) {
	bundle, err := p.ads.GetAdBundle(ctx, adID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load ad: %w", err)
	}
	if bundle == nil {
		return nil, nil, nil, domain.E(domain.CodeNotFound, "ad not found")
	}
	if campaignID != uuid.Nil && bundle.Ad.CampaignID != campaignID {
		return nil, nil, nil, domain.E(domain.CodeValidation, "the ad does not belong to the given campaign")
	}
	campaign, err := p.campaigns.GetCampaign(ctx, bundle.Ad.CampaignID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load campaign: %w", err)
	}
	if campaign == nil {
		return nil, nil, nil, domain.E(domain.CodeNotFound, "campaign not found")
	}
	if campaign.OwnerID != ownerID {
		return nil, nil, nil, domain.E(domain.CodeForbidden, "the campaign belongs to another user")
	}
	conn, err := p.campaigns.GetConnection(ctx, campaign.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load connection: %w", err)
	}
	return bundle, campaign, conn, nil
}

func preflightInput(bundle *port.AdBundle, campaign *domain.Campaign, conn *domain.Connection) domain.PreflightInput {
	in := domain.PreflightInput{
		Goal:        campaign.Goal,
		Destination: bundle.Destination,
		Locations:   bundle.Locations,
	}
	if conn != nil {
		in.AccessToken = conn.AccessToken
		in.TokenExpiresAt = conn.TokenExpiresAt
		in.PageID = conn.PageID
		in.AdAccountID = conn.AdAccountID
		in.InstagramActorID = conn.InstagramActorID
		in.PaymentConnected = conn.PaymentConnected
	}
	if bundle.Copy != nil {
		in.PrimaryText = bundle.Copy.PrimaryText
		in.Headline = bundle.Copy.Headline
		in.Description = bundle.Copy.Description
	}
	return in
}

func generateInput(bundle *port.AdBundle, campaign *domain.Campaign, conn *domain.Connection) domain.GenerateInput {
	in := domain.GenerateInput{
		CampaignName: campaign.Name,
		Goal:         campaign.Goal,
		DailyBudget:  campaign.DailyBudget,
		Currency:     campaign.Currency,
		AdName:       bundle.Ad.Name,
		Copy:         bundle.Copy,
		Creative:     bundle.Creative,
		Locations:    bundle.Locations,
	}
	if conn != nil {
		in.PageID = conn.PageID
		in.InstagramActorID = conn.InstagramActorID
		if conn.Currency != "" {
			in.Currency = conn.Currency
		}
	}
	if bundle.Destination != nil {
		in.Destination = *bundle.Destination
	} else {
		// Destination resolution falls back to the campaign goal.
		in.Destination = domain.Destination{Type: destinationTypeFor(campaign.Goal)}
	}
	if bundle.Budget != nil && bundle.Budget.Amount > 0 {
		in.DailyBudget = bundle.Budget.Amount
	}
	return in
}

func destinationTypeFor(goal domain.Goal) domain.DestinationType {
	switch goal {
	case domain.GoalLeads:
		return domain.DestinationForm
	case domain.GoalCalls:
		return domain.DestinationCall
	default:
		return domain.DestinationWebsite
	}
}
