package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
)

// MatchRepository is the authoritative match store. Standings and brackets
// are always recomputed from full snapshots read here; results are written
// per match row, last writer wins.
type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByGroup(ctx context.Context, groupID int) ([]*models.Match, error)
	ListByCampaign(ctx context.Context, campaignID int, stage *models.Stage) ([]*models.Match, error)
	UpdateResult(ctx context.Context, id int, homeScore, awayScore *int, played bool) error
	UpdateKickoff(ctx context.Context, id int, kickoff models.Match) error
	SetExcluded(ctx context.Context, id int, excluded bool) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, campaign_id, group_id, stage, round, slot, home_team_id, away_team_id,
	home_score, away_score, played, excluded, kickoff_at, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches
			(campaign_id, group_id, stage, round, slot, home_team_id, away_team_id,
			 home_score, away_score, played, excluded, kickoff_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		match.CampaignID, match.GroupID, match.Stage, match.Round, match.Slot,
		match.HomeTeamID, match.AwayTeamID, match.HomeScore, match.AwayScore,
		match.Played, match.Excluded, match.KickoffAt,
	).Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.CampaignID, &m.GroupID, &m.Stage, &m.Round, &m.Slot,
		&m.HomeTeamID, &m.AwayTeamID, &m.HomeScore, &m.AwayScore,
		&m.Played, &m.Excluded, &m.KickoffAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) ListByGroup(ctx context.Context, groupID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE group_id = $1 ORDER BY kickoff_at ASC, id ASC`
	return r.queryMatches(ctx, query, groupID)
}

func (r *postgresMatchRepository) ListByCampaign(ctx context.Context, campaignID int, stage *models.Stage) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE campaign_id = $1`)

	args := []interface{}{campaignID}
	if stage != nil {
		queryBuilder.WriteString(" AND stage = $" + strconv.Itoa(len(args)+1))
		args = append(args, *stage)
	}
	queryBuilder.WriteString(" ORDER BY round ASC NULLS FIRST, slot ASC NULLS FIRST, kickoff_at ASC, id ASC")

	return r.queryMatches(ctx, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, homeScore, awayScore *int, played bool) error {
	query := `UPDATE matches SET home_score = $1, away_score = $2, played = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, homeScore, awayScore, played, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateKickoff(ctx context.Context, id int, match models.Match) error {
	result, err := r.db.ExecContext(ctx, `UPDATE matches SET kickoff_at = $1 WHERE id = $2`, match.KickoffAt, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) SetExcluded(ctx context.Context, id int, excluded bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE matches SET excluded = $1 WHERE id = $2`, excluded, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" { // foreign_key_violation
			return ErrMatchTeamInvalid
		}
	}
	return err
}
