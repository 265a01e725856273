package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/lib/pq"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrGoalRefBroken = errors.New("goal match or player conflict or invalid")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.Goal, error)
	ListByCampaign(ctx context.Context, campaignID int) ([]*models.Goal, error)
	Delete(ctx context.Context, id int) error
}

type postgresGoalRepository struct {
	db *sql.DB
}

func NewPostgresGoalRepository(db *sql.DB) GoalRepository {
	return &postgresGoalRepository{db: db}
}

func (r *postgresGoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (match_id, team_id, player_id, minute, penalty, own_goal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		goal.MatchID, goal.TeamID, goal.PlayerID, goal.Minute, goal.Penalty, goal.OwnGoal,
	).Scan(&goal.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrGoalRefBroken
	}
	return err
}

func (r *postgresGoalRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Goal, error) {
	query := `SELECT id, match_id, team_id, player_id, minute, penalty, own_goal
		FROM goals WHERE match_id = $1 ORDER BY minute ASC NULLS LAST, id ASC`
	return r.query(ctx, query, matchID)
}

func (r *postgresGoalRepository) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Goal, error) {
	query := `SELECT g.id, g.match_id, g.team_id, g.player_id, g.minute, g.penalty, g.own_goal
		FROM goals g
		JOIN matches m ON g.match_id = m.id
		WHERE m.campaign_id = $1
		ORDER BY g.id ASC`
	return r.query(ctx, query, campaignID)
}

func (r *postgresGoalRepository) query(ctx context.Context, query string, arg interface{}) ([]*models.Goal, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]*models.Goal, 0)
	for rows.Next() {
		var g models.Goal
		if scanErr := rows.Scan(&g.ID, &g.MatchID, &g.TeamID, &g.PlayerID, &g.Minute, &g.Penalty, &g.OwnGoal); scanErr != nil {
			return nil, scanErr
		}
		goals = append(goals, &g)
	}
	return goals, rows.Err()
}

func (r *postgresGoalRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGoalNotFound)
}
