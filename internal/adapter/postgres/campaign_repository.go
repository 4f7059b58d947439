package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is the datastore's uniqueness
// constraint rejection, which callers must be able to tell apart from
// any other write failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, owner_id, name, goal, daily_budget, currency, status, coalesce(origin_prompt, ''), created_at, updated_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Goal, &c.DailyBudget, &c.Currency,
		&c.Status, &c.OriginPrompt, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCampaign returns a campaign by id, or nil when absent.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM campaigns WHERE id = $1`, campaignColumns), id))
}

// ListCampaigns returns every campaign of the owner, newest first.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, ownerID string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM campaigns WHERE owner_id = $1 ORDER BY created_at DESC`, campaignColumns), ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Goal, &c.DailyBudget, &c.Currency,
			&c.Status, &c.OriginPrompt, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
}

// ListCampaignNames returns the owner's campaign names lower-cased.
func (r *CampaignRepository) ListCampaignNames(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT lower(name) FROM campaigns WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var name string
		err := row.Scan(&name)
		return name, err
	})
}

// RenameCampaign updates the display name. A uniqueness rejection is
// surfaced as port.ErrNameTaken; a missing campaign as (nil, nil).
func (r *CampaignRepository) RenameCampaign(ctx context.Context, id uuid.UUID, name string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, fmt.Sprintf(
		`UPDATE campaigns SET name = $2, updated_at = now() WHERE id = $1 RETURNING %s`, campaignColumns),
		id, name))
	if isUniqueViolation(err) {
		return nil, port.ErrNameTaken
	}
	return c, err
}

// SetPublishData stores the generated payload under the publish_data
// key of the campaign's freeform metadata column.
func (r *CampaignRepository) SetPublishData(ctx context.Context, id uuid.UUID, payload []byte) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns
		SET metadata = jsonb_set(coalesce(metadata, '{}'::jsonb), '{publish_data}', $2::jsonb, true),
		    updated_at = now()
		WHERE id = $1`, id, payload)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteCampaign removes the campaign row and reports whether a row
// existed. An absent campaign is not an error.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAdsByCampaign removes the campaign's ads; ad child tables
// cascade via foreign keys.
func (r *CampaignRepository) DeleteAdsByCampaign(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ads WHERE campaign_id = $1`, id)
	return err
}

// DeletePublishRecordsByCampaign removes the campaign's publish audit rows.
func (r *CampaignRepository) DeletePublishRecordsByCampaign(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ad_publish_records WHERE campaign_id = $1`, id)
	return err
}

// DeleteConversationsByCampaign removes the chat collaborator's history
// rows for the campaign.
func (r *CampaignRepository) DeleteConversationsByCampaign(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM conversation_history WHERE campaign_id = $1`, id)
	return err
}

// GetConnection returns the campaign's platform connection, or nil when
// none is linked.
func (r *CampaignRepository) GetConnection(ctx context.Context, campaignID uuid.UUID) (*domain.Connection, error) {
	var c domain.Connection
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, access_token, token_expires_at,
		       coalesce(business_id, ''), coalesce(page_id, ''), coalesce(ad_account_id, ''),
		       coalesce(instagram_actor_id, ''), payment_connected, coalesce(currency, '')
		FROM connections WHERE campaign_id = $1`, campaignID).
		Scan(&c.ID, &c.CampaignID, &c.AccessToken, &c.TokenExpiresAt,
			&c.BusinessID, &c.PageID, &c.AdAccountID,
			&c.InstagramActorID, &c.PaymentConnected, &c.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
