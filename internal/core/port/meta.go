package port

import (
	"context"

	"adpilot/internal/core/domain"
)

// MetaPublishResult is the ad platform's answer to a publish submission.
// Status is empty when the platform did not report an explicit one.
type MetaPublishResult struct {
	ID     string
	Status string
}

// MetaClient is the outbound port to the ad platform's REST API. A
// non-2xx response, an error envelope or a transport failure is
// surfaced as a publish_failed domain error carrying the platform's raw
// message; the call applies an explicit timeout.
type MetaClient interface {
	PublishCampaign(ctx context.Context, accessToken, adAccountID string, payload *domain.PublishData) (*MetaPublishResult, error)
}

// ReconcileQueue receives reconciliation tasks for publish attempts
// whose local bookkeeping failed after upstream success.
type ReconcileQueue interface {
	Enqueue(ctx context.Context, task domain.ReconcileTask) error
}
