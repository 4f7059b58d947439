package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// AdRepository implements port.AdRepository using pgxpool.
type AdRepository struct {
	pool *pgxpool.Pool
}

func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

const adColumns = `id, campaign_id, name, status, coalesce(meta_ad_id, ''),
	selected_creative_id, selected_copy_id, selected_destination_id, selected_budget_id,
	created_at, updated_at`

func scanAd(row pgx.Row) (*domain.Ad, error) {
	var a domain.Ad
	err := row.Scan(&a.ID, &a.CampaignID, &a.Name, &a.Status, &a.MetaAdID,
		&a.SelectedCreativeID, &a.SelectedCopyID, &a.SelectedDestinationID, &a.SelectedBudgetID,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAd returns an ad by id, or nil when absent.
func (r *AdRepository) GetAd(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	return scanAd(r.pool.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1`, id))
}

// GetAdBundle loads an ad together with the child records its selected
// pointers reference and its full target location set.
func (r *AdRepository) GetAdBundle(ctx context.Context, id uuid.UUID) (*port.AdBundle, error) {
	ad, err := r.GetAd(ctx, id)
	if err != nil || ad == nil {
		return nil, err
	}
	bundle := &port.AdBundle{Ad: *ad}

	if ad.SelectedCopyID != nil {
		var c domain.CopyVariation
		err = r.pool.QueryRow(ctx, `
			SELECT id, ad_id, coalesce(primary_text, ''), coalesce(headline, ''), coalesce(description, '')
			FROM ad_copies WHERE id = $1`, *ad.SelectedCopyID).
			Scan(&c.ID, &c.AdID, &c.PrimaryText, &c.Headline, &c.Description)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			bundle.Copy = &c
		}
	}
	if ad.SelectedCreativeID != nil {
		var c domain.Creative
		err = r.pool.QueryRow(ctx, `
			SELECT id, ad_id, coalesce(image_url, ''), coalesce(video_url, '')
			FROM ad_creatives WHERE id = $1`, *ad.SelectedCreativeID).
			Scan(&c.ID, &c.AdID, &c.ImageURL, &c.VideoURL)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			bundle.Creative = &c
		}
	}
	if ad.SelectedDestinationID != nil {
		var d domain.Destination
		err = r.pool.QueryRow(ctx, `
			SELECT id, ad_id, type, coalesce(url, ''), coalesce(phone, ''), coalesce(lead_form_id, '')
			FROM ad_destinations WHERE id = $1`, *ad.SelectedDestinationID).
			Scan(&d.ID, &d.AdID, &d.Type, &d.URL, &d.Phone, &d.LeadFormID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			bundle.Destination = &d
		}
	}
	if ad.SelectedBudgetID != nil {
		var b domain.BudgetOverride
		err = r.pool.QueryRow(ctx, `SELECT id, ad_id, amount FROM ad_budgets WHERE id = $1`, *ad.SelectedBudgetID).
			Scan(&b.ID, &b.AdID, &b.Amount)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			bundle.Budget = &b
		}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, ad_id, name, type, coalesce(key, ''), coalesce(lat, 0), coalesce(lng, 0), coalesce(radius_mi, 0)
		FROM ad_locations WHERE ad_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, err
	}
	bundle.Locations, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TargetLocation, error) {
		var l domain.TargetLocation
		err := row.Scan(&l.ID, &l.AdID, &l.Name, &l.Type, &l.Key, &l.Lat, &l.Lng, &l.RadiusMi)
		return l, err
	})
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// CreateAd inserts a new ad row. The (campaign, lower(name)) constraint
// rejection is mapped to port.ErrNameTaken.
func (r *AdRepository) CreateAd(ctx context.Context, ad *domain.Ad) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ads (id, campaign_id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ad.ID, ad.CampaignID, ad.Name, ad.Status, ad.CreatedAt, ad.UpdatedAt)
	if isUniqueViolation(err) {
		return port.ErrNameTaken
	}
	return err
}

// SetPublishResult writes the external id and resulting status onto the ad.
func (r *AdRepository) SetPublishResult(ctx context.Context, adID uuid.UUID, metaAdID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE ads SET meta_ad_id = $2, status = $3, updated_at = now() WHERE id = $1`,
		adID, metaAdID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// InsertPublishRecord appends one audit row.
func (r *AdRepository) InsertPublishRecord(ctx context.Context, rec *domain.PublishRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ad_publish_records (id, ad_id, campaign_id, meta_ad_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.AdID, rec.CampaignID, rec.MetaAdID, rec.Status, rec.CreatedAt)
	return err
}

// ListPublishRecords returns the audit rows of an ad, newest first.
func (r *AdRepository) ListPublishRecords(ctx context.Context, adID uuid.UUID) ([]domain.PublishRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ad_id, campaign_id, meta_ad_id, status, created_at
		FROM ad_publish_records WHERE ad_id = $1 ORDER BY created_at DESC`, adID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PublishRecord, error) {
		var rec domain.PublishRecord
		err := row.Scan(&rec.ID, &rec.AdID, &rec.CampaignID, &rec.MetaAdID, &rec.Status, &rec.CreatedAt)
		return rec, err
	})
}
