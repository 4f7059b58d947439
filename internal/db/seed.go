package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a demo campaign with a connected account and one draft
// ad ready to preflight. Intended for local development only.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	campaignID := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO campaigns (id, owner_id, name, goal, daily_budget, currency, status, origin_prompt)
		VALUES ($1, 'demo-user', 'Spring Sale', 'website-visits', 2500, 'USD', 'draft',
		        'promote the spring sale of my shoe store')
		ON CONFLICT DO NOTHING`, campaignID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO connections (id, campaign_id, access_token, token_expires_at,
		                         page_id, ad_account_id, payment_connected, currency)
		VALUES ($1, $2, 'demo-token', $3, 'page-1', 'act_1', true, 'USD')
		ON CONFLICT DO NOTHING`, uuid.New(), campaignID, time.Now().Add(60*24*time.Hour))
	if err != nil {
		return err
	}

	adID := uuid.New()
	copyID := uuid.New()
	destinationID := uuid.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO ads (id, campaign_id, name, status, selected_copy_id, selected_destination_id)
		VALUES ($1, $2, 'Spring Sale - Demo Ad', 'draft', $3, $4)
		ON CONFLICT DO NOTHING`, adID, campaignID, copyID, destinationID)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO ad_copies (id, ad_id, primary_text, headline, description)
		VALUES ($1, $2, 'Step into spring with 20% off.', 'Spring Sale', 'Limited time offer.')
		ON CONFLICT DO NOTHING`, copyID, adID)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO ad_destinations (id, ad_id, type, url)
		VALUES ($1, $2, 'website', 'https://example.com/spring-sale')
		ON CONFLICT DO NOTHING`, destinationID, adID)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO ad_locations (id, ad_id, name, type, key)
		VALUES ($1, $2, 'United States', 'country', 'US')
		ON CONFLICT DO NOTHING`, uuid.New(), adID)
	return err
}
