package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/lib/pq"
)

var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupCampaignInvalid = errors.New("group campaign conflict or invalid")
)

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	ListByCampaign(ctx context.Context, campaignID int) ([]*models.Group, error)
	Delete(ctx context.Context, id int) error
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `INSERT INTO groups (campaign_id, name) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, group.CampaignID, group.Name).Scan(&group.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrGroupCampaignInvalid
	}
	return err
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	var g models.Group
	err := r.db.QueryRowContext(ctx, `SELECT id, campaign_id, name FROM groups WHERE id = $1`, id).
		Scan(&g.ID, &g.CampaignID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGroupRepository) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, campaign_id, name FROM groups WHERE campaign_id = $1 ORDER BY name ASC`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		var g models.Group
		if scanErr := rows.Scan(&g.ID, &g.CampaignID, &g.Name); scanErr != nil {
			return nil, scanErr
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *postgresGroupRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}
