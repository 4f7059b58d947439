package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

type stubPipeline struct {
	preflight func(ctx context.Context, ownerID string, adID uuid.UUID) (*domain.PreflightReport, error)
	preview   func(ctx context.Context, ownerID string, adID uuid.UUID) (*domain.PublishPreview, error)
	publish   func(ctx context.Context, ownerID string, adID, campaignID uuid.UUID) (*domain.PublishOutcome, error)
	records   func(ctx context.Context, ownerID string, adID uuid.UUID) ([]domain.PublishRecord, error)
}

func (s *stubPipeline) Preflight(ctx context.Context, ownerID string, adID uuid.UUID) (*domain.PreflightReport, error) {
	return s.preflight(ctx, ownerID, adID)
}

func (s *stubPipeline) Preview(ctx context.Context, ownerID string, adID uuid.UUID) (*domain.PublishPreview, error) {
	return s.preview(ctx, ownerID, adID)
}

func (s *stubPipeline) Publish(ctx context.Context, ownerID string, adID, campaignID uuid.UUID) (*domain.PublishOutcome, error) {
	return s.publish(ctx, ownerID, adID, campaignID)
}

func (s *stubPipeline) PublishRecords(ctx context.Context, ownerID string, adID uuid.UUID) ([]domain.PublishRecord, error) {
	return s.records(ctx, ownerID, adID)
}

type stubLifecycle struct {
	createDraftAd func(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Ad, error)
	deleteCamp    func(ctx context.Context, ownerID string, campaignID uuid.UUID) error
	rename        func(ctx context.Context, ownerID string, campaignID uuid.UUID, name string) (*domain.Campaign, error)
	get           func(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Campaign, error)
	list          func(ctx context.Context, ownerID string) ([]domain.Campaign, error)
}

func (s *stubLifecycle) CreateDraftAd(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Ad, error) {
	return s.createDraftAd(ctx, ownerID, campaignID)
}

func (s *stubLifecycle) DeleteCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) error {
	return s.deleteCamp(ctx, ownerID, campaignID)
}

func (s *stubLifecycle) RenameCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID, name string) (*domain.Campaign, error) {
	return s.rename(ctx, ownerID, campaignID, name)
}

func (s *stubLifecycle) GetCampaign(ctx context.Context, ownerID string, campaignID uuid.UUID) (*domain.Campaign, error) {
	return s.get(ctx, ownerID, campaignID)
}

func (s *stubLifecycle) ListCampaigns(ctx context.Context, ownerID string) ([]domain.Campaign, error) {
	return s.list(ctx, ownerID)
}

var (
	_ port.PublishPipeline   = (*stubPipeline)(nil)
	_ port.CampaignLifecycle = (*stubLifecycle)(nil)
)

func newTestHandler(pipeline *stubPipeline, lifecycle *stubLifecycle) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(pipeline, lifecycle, nil, logger)
}

func doRequest(t *testing.T, h *Handler, method, target, owner, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if owner != "" {
		req.Header.Set(ownerHeader, owner)
	}
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestPublishSuccessEnvelope(t *testing.T) {
	adID := uuid.New()
	campaignID := uuid.New()
	pipeline := &stubPipeline{
		publish: func(_ context.Context, ownerID string, gotAd, gotCampaign uuid.UUID) (*domain.PublishOutcome, error) {
			require.Equal(t, "user-1", ownerID)
			require.Equal(t, adID, gotAd)
			require.Equal(t, campaignID, gotCampaign)
			return &domain.PublishOutcome{MetaAdID: "238472", Status: "pending_review"}, nil
		},
	}
	h := newTestHandler(pipeline, &stubLifecycle{})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/ads/"+adID.String()+"/publish",
		"user-1", `{"campaignId":"`+campaignID.String()+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.Nil(t, env.Error)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "238472", data["metaAdId"])
	require.Equal(t, "pending_review", data["status"])
}

func TestPublishMissingIdentity(t *testing.T) {
	h := newTestHandler(&stubPipeline{}, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/ads/"+uuid.NewString()+"/publish", "", `{}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "unauthorized", env.Error.Code)
}

func TestPublishUnknownBodyFieldRejected(t *testing.T) {
	h := newTestHandler(&stubPipeline{}, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/ads/"+uuid.NewString()+"/publish",
		"user-1", `{"campaignId":"`+uuid.NewString()+`","status":null}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", decodeEnvelope(t, rec).Error.Code)
}

func TestPublishValidationFailureCarriesReport(t *testing.T) {
	pipeline := &stubPipeline{
		publish: func(context.Context, string, uuid.UUID, uuid.UUID) (*domain.PublishOutcome, error) {
			return nil, &domain.Error{
				Code:    domain.CodeValidation,
				Message: "the ad is not ready to publish",
				Details: &domain.PreflightReport{CanPublish: false},
			}
		},
	}
	h := newTestHandler(pipeline, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/ads/"+uuid.NewString()+"/publish",
		"user-1", `{"campaignId":"`+uuid.NewString()+`"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	details, ok := env.Error.Details.(map[string]any)
	require.True(t, ok, "report travels inside error.details")
	require.Equal(t, false, details["canPublish"])
}

func TestPublishRateLimitedSetsRetryAfter(t *testing.T) {
	pipeline := &stubPipeline{
		publish: func(context.Context, string, uuid.UUID, uuid.UUID) (*domain.PublishOutcome, error) {
			return nil, &domain.Error{
				Code:       domain.CodeRateLimited,
				Message:    "too many publish attempts, try again shortly",
				RetryAfter: 42*time.Second + 300*time.Millisecond,
			}
		},
	}
	h := newTestHandler(pipeline, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/ads/"+uuid.NewString()+"/publish",
		"user-1", `{"campaignId":"`+uuid.NewString()+`"}`)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "43", rec.Header().Get("Retry-After"), "hint rounds up")
	require.Equal(t, "rate_limit_exceeded", decodeEnvelope(t, rec).Error.Code)
}

func TestPublishUpstreamFailureIsBadGateway(t *testing.T) {
	pipeline := &stubPipeline{
		publish: func(context.Context, string, uuid.UUID, uuid.UUID) (*domain.PublishOutcome, error) {
			return nil, domain.E(domain.CodePublishFailed, "the ad platform rejected the publish request")
		},
	}
	h := newTestHandler(pipeline, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/ads/"+uuid.NewString()+"/publish",
		"user-1", `{"campaignId":"`+uuid.NewString()+`"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUnexpectedErrorIsOpaque(t *testing.T) {
	pipeline := &stubPipeline{
		preflight: func(context.Context, string, uuid.UUID) (*domain.PreflightReport, error) {
			return nil, io.ErrUnexpectedEOF
		},
	}
	h := newTestHandler(pipeline, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodGet, "/api/v1/ads/"+uuid.NewString()+"/preflight", "user-1", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Equal(t, "internal_error", env.Error.Code)
	require.NotContains(t, env.Error.Message, "EOF", "internal details stay private")
}

func TestInvalidPathID(t *testing.T) {
	h := newTestHandler(&stubPipeline{}, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodGet, "/api/v1/ads/not-a-uuid/preflight", "user-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenameCampaign409OnSecondConflict(t *testing.T) {
	lifecycle := &stubLifecycle{
		rename: func(context.Context, string, uuid.UUID, string) (*domain.Campaign, error) {
			return nil, domain.E(domain.CodeConflict, "the name and its derived alternative are both taken")
		},
	}
	h := newTestHandler(&stubPipeline{}, lifecycle)
	rec := doRequest(t, h, http.MethodPatch, "/api/v1/campaigns/"+uuid.NewString(),
		"user-1", `{"name":"Shoe Promo"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "conflict", decodeEnvelope(t, rec).Error.Code)
}

func TestRenameCampaignTrimsName(t *testing.T) {
	var gotName string
	lifecycle := &stubLifecycle{
		rename: func(_ context.Context, _ string, _ uuid.UUID, name string) (*domain.Campaign, error) {
			gotName = name
			return &domain.Campaign{Name: name}, nil
		},
	}
	h := newTestHandler(&stubPipeline{}, lifecycle)
	rec := doRequest(t, h, http.MethodPatch, "/api/v1/campaigns/"+uuid.NewString(),
		"user-1", `{"name":"  Winter Push  "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Winter Push", gotName)
}

func TestRenameCampaignBlankName(t *testing.T) {
	h := newTestHandler(&stubPipeline{}, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodPatch, "/api/v1/campaigns/"+uuid.NewString(),
		"user-1", `{"name":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCampaignAlwaysOK(t *testing.T) {
	lifecycle := &stubLifecycle{
		deleteCamp: func(context.Context, string, uuid.UUID) error { return nil },
	}
	h := newTestHandler(&stubPipeline{}, lifecycle)
	rec := doRequest(t, h, http.MethodDelete, "/api/v1/campaigns/"+uuid.NewString(), "user-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	data := env.Data.(map[string]any)
	require.Equal(t, true, data["deleted"])
}

func TestCreateDraftAdCreated(t *testing.T) {
	lifecycle := &stubLifecycle{
		createDraftAd: func(context.Context, string, uuid.UUID) (*domain.Ad, error) {
			return &domain.Ad{ID: uuid.New(), Name: "Shoe Store - Draft Jan 1, 2025, 3:00 PM"}, nil
		},
	}
	h := newTestHandler(&stubPipeline{}, lifecycle)
	rec := doRequest(t, h, http.MethodPost, "/api/v1/campaigns/"+uuid.NewString()+"/ads/draft", "user-1", "")
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestListCampaigns(t *testing.T) {
	lifecycle := &stubLifecycle{
		list: func(_ context.Context, ownerID string) ([]domain.Campaign, error) {
			require.Equal(t, "user-1", ownerID)
			return []domain.Campaign{{Name: "Spring Sale"}}, nil
		},
	}
	h := newTestHandler(&stubPipeline{}, lifecycle)
	rec := doRequest(t, h, http.MethodGet, "/api/v1/campaigns", "user-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]any)
	campaigns := data["campaigns"].([]any)
	require.Len(t, campaigns, 1)
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&stubPipeline{}, &stubLifecycle{})
	rec := doRequest(t, h, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
