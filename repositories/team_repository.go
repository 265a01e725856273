package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name is already in use in this campaign")
	ErrTeamGroupInvalid = errors.New("team group conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByCampaign(ctx context.Context, campaignID int) ([]*models.Team, error)
	ListByGroup(ctx context.Context, groupID int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	CountMatchesReferencing(ctx context.Context, teamID int) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (campaign_id, group_id, name, short_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.CampaignID, team.GroupID, team.Name, team.ShortCode,
	).Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.CampaignID, &t.GroupID, &t.Name, &t.ShortCode, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, campaign_id, group_id, name, short_code, created_at FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) list(ctx context.Context, query string, arg interface{}) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, scanErr := r.scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Team, error) {
	query := `SELECT id, campaign_id, group_id, name, short_code, created_at
		FROM teams WHERE campaign_id = $1 ORDER BY name ASC`
	return r.list(ctx, query, campaignID)
}

func (r *postgresTeamRepository) ListByGroup(ctx context.Context, groupID int) ([]*models.Team, error) {
	query := `SELECT id, campaign_id, group_id, name, short_code, created_at
		FROM teams WHERE group_id = $1 ORDER BY name ASC`
	return r.list(ctx, query, groupID)
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET group_id = $1, name = $2, short_code = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, team.GroupID, team.Name, team.ShortCode, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// CountMatchesReferencing reports how many match rows reference the team.
// A referenced team's group membership is immutable within the stage.
func (r *postgresTeamRepository) CountMatchesReferencing(ctx context.Context, teamID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE home_team_id = $1 OR away_team_id = $1`, teamID,
	).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrTeamNameConflict
		case "23503":
			return ErrTeamGroupInvalid
		}
	}
	return err
}
