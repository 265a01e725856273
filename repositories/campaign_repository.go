package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/lib/pq"
)

var (
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignSlugConflict = errors.New("campaign slug is already in use")
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id int) (*models.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*models.Campaign, error)
	List(ctx context.Context, status *models.CampaignStatus) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	UpdateStatus(ctx context.Context, id int, status models.CampaignStatus) error
}

type postgresCampaignRepository struct {
	db *sql.DB
}

func NewPostgresCampaignRepository(db *sql.DB) CampaignRepository {
	return &postgresCampaignRepository{db: db}
}

const campaignColumns = `id, name, slug, season, status, reg_date, start_date, end_date, created_at`

func (r *postgresCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (name, slug, season, status, reg_date, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		campaign.Name, campaign.Slug, campaign.Season, campaign.Status,
		campaign.RegDate, campaign.StartDate, campaign.EndDate,
	).Scan(&campaign.ID, &campaign.CreatedAt)

	return r.handleCampaignError(err)
}

func (r *postgresCampaignRepository) scanCampaign(row interface{ Scan(...interface{}) error }) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Season, &c.Status,
		&c.RegDate, &c.StartDate, &c.EndDate, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresCampaignRepository) GetByID(ctx context.Context, id int) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	return r.scanCampaign(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresCampaignRepository) GetBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE slug = $1`
	return r.scanCampaign(r.db.QueryRowContext(ctx, query, slug))
}

func (r *postgresCampaignRepository) List(ctx context.Context, status *models.CampaignStatus) ([]*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := make([]interface{}, 0, 1)
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY start_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]*models.Campaign, 0)
	for rows.Next() {
		c, scanErr := r.scanCampaign(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *postgresCampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $1, slug = $2, season = $3, status = $4, reg_date = $5, start_date = $6, end_date = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		campaign.Name, campaign.Slug, campaign.Season, campaign.Status,
		campaign.RegDate, campaign.StartDate, campaign.EndDate, campaign.ID)
	if err != nil {
		return r.handleCampaignError(err)
	}
	return checkAffectedRows(result, ErrCampaignNotFound)
}

func (r *postgresCampaignRepository) UpdateStatus(ctx context.Context, id int, status models.CampaignStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE campaigns SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCampaignNotFound)
}

func (r *postgresCampaignRepository) handleCampaignError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "campaigns_slug_key" {
			return ErrCampaignSlugConflict
		}
	}
	return err
}
