// Package meta is the outbound adapter for the ad platform's Graph
// API. It submits generated publish payloads and normalizes the
// platform's error envelope into domain errors without discarding the
// raw message.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// graphError is the platform's error envelope.
type graphError struct {
	Message   string `json:"message,omitempty"`
	Type      string `json:"type,omitempty"`
	Code      int    `json:"code,omitempty"`
	SubCode   int    `json:"error_subcode,omitempty"`
	UserTitle string `json:"error_user_title,omitempty"`
}

func (e *graphError) Error() string {
	return fmt.Sprintf("graph api error %d (%s): %s", e.Code, e.Type, e.Message)
}

type publishResponse struct {
	ID     string      `json:"id"`
	Status string      `json:"effective_status,omitempty"`
	Error  *graphError `json:"error,omitempty"`
}

// Client talks to the Graph API over HTTPS JSON. Every request carries
// a bearer token and the configured API version; the HTTP client
// applies an explicit timeout, and a timeout is reported exactly like a
// non-2xx response.
type Client struct {
	httpClient *http.Client
	baseURL    string
	version    string
}

func NewClient(cfg configs.Meta) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		version:    cfg.Version,
	}
}

func (c *Client) url(relative string, query url.Values) string {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, relative)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// PublishCampaign POSTs the nested campaign payload to the ad account.
// On success it returns the created object's id and, when the platform
// reports one, its status lower-cased. Every failure mode maps to a
// publish_failed domain error whose Details field preserves the
// platform's raw message.
func (c *Client) PublishCampaign(ctx context.Context, accessToken, adAccountID string, payload *domain.PublishData) (*port.MetaPublishResult, error) {
	body := struct {
		*domain.PublishData
		AccessToken string `json:"access_token"`
	}{payload, accessToken}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal publish payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.url(fmt.Sprintf("%s/campaigns", adAccountID), nil), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.Error{
			Code:    domain.CodePublishFailed,
			Message: "the ad platform could not be reached",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.Error{
			Code:    domain.CodePublishFailed,
			Message: "reading the ad platform response failed",
			Details: err.Error(),
		}
	}

	var out publishResponse
	// A decode failure on an error status still carries the raw body.
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || out.Error != nil {
		details := string(raw)
		if out.Error != nil {
			details = out.Error.Message
		}
		return nil, &domain.Error{
			Code:    domain.CodePublishFailed,
			Message: "the ad platform rejected the publish request",
			Details: details,
		}
	}
	if out.ID == "" {
		return nil, &domain.Error{
			Code:    domain.CodeAPIError,
			Message: "the ad platform returned an unexpected response",
			Details: string(raw),
		}
	}
	return &port.MetaPublishResult{ID: out.ID, Status: strings.ToLower(out.Status)}, nil
}
