package meta

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
)

func testClient(serverURL string) *Client {
	return NewClient(configs.Meta{BaseURL: serverURL, Version: "v19.0", Timeout: 2 * time.Second})
}

func testPayload() *domain.PublishData {
	return &domain.PublishData{
		Campaign: domain.CampaignSpec{Name: "Spring Sale", Objective: "OUTCOME_TRAFFIC"},
	}
}

func TestPublishCampaignSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"238472","effective_status":"PENDING_REVIEW"}`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).PublishCampaign(context.Background(), "tok-1", "act_99", testPayload())
	require.NoError(t, err)
	require.Equal(t, "238472", result.ID)
	require.Equal(t, "pending_review", result.Status, "platform status is lower-cased")

	require.Equal(t, "/v19.0/act_99/campaigns", gotPath)
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.Equal(t, "tok-1", gotBody["access_token"])
	campaign, ok := gotBody["campaign"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Spring Sale", campaign["name"])
}

func TestPublishCampaignGraphError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter: daily_budget","type":"OAuthException","code":100,"error_subcode":1487888}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).PublishCampaign(context.Background(), "tok-1", "act_99", testPayload())
	require.Error(t, err)

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, domain.CodePublishFailed, de.Code)
	require.Equal(t, "Invalid parameter: daily_budget", de.Details, "the raw platform message survives")
}

func TestPublishCampaignErrorEnvelopeWith200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"(#80004) There have been too many calls","code":80004}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).PublishCampaign(context.Background(), "tok-1", "act_99", testPayload())
	require.Equal(t, domain.CodePublishFailed, domain.CodeOf(err))
}

func TestPublishCampaignNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).PublishCampaign(context.Background(), "tok-1", "act_99", testPayload())
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, domain.CodePublishFailed, de.Code)
	require.Equal(t, "upstream unavailable", de.Details)
}

func TestPublishCampaignMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).PublishCampaign(context.Background(), "tok-1", "act_99", testPayload())
	require.Equal(t, domain.CodeAPIError, domain.CodeOf(err))
}

func TestPublishCampaignTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(configs.Meta{BaseURL: srv.URL, Version: "v19.0", Timeout: 50 * time.Millisecond})
	_, err := c.PublishCampaign(context.Background(), "tok-1", "act_99", testPayload())
	require.Equal(t, domain.CodePublishFailed, domain.CodeOf(err))
}
