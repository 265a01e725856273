package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Amirkhan01/campaign-system/engine"
	"github.com/Amirkhan01/campaign-system/live"
	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/repositories"
)

// Broadcaster pushes change events to campaign rooms; satisfied by
// *live.Hub.
type Broadcaster interface {
	BroadcastToRoom(room string, event live.Event)
}

func campaignRoom(campaignID int) string {
	return "campaign_" + strconv.Itoa(campaignID)
}

// ScheduleMatchInput is the organizer's wall-clock scheduling form: the
// kickoff carries no offset and is interpreted against the campaign's
// fixed reference zone at this write boundary.
type ScheduleMatchInput struct {
	CampaignID int
	GroupID    *int
	Stage      models.Stage
	Round      *int
	Slot       *int
	HomeTeamID int
	AwayTeamID int
	Kickoff    engine.LocalClock
}

type MatchService interface {
	Schedule(ctx context.Context, input ScheduleMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByCampaign(ctx context.Context, campaignID int, stage *models.Stage) ([]*models.Match, error)
	Reschedule(ctx context.Context, id int, kickoff engine.LocalClock) error
	RecordResult(ctx context.Context, id int, homeScore, awayScore int) error
	RetractResult(ctx context.Context, id int) error
	SetExcluded(ctx context.Context, id int, excluded bool) error
	KickoffLocal(match *models.Match) engine.LocalClock
	AddGoal(ctx context.Context, goal *models.Goal) error
	RemoveGoal(ctx context.Context, matchID, goalID int) error
	ListGoals(ctx context.Context, matchID int) ([]*models.Goal, error)
}

type matchService struct {
	matchRepo  repositories.MatchRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	goalRepo   repositories.GoalRepository
	hub        Broadcaster
	refZone    *time.Location
	logger     *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	goalRepo repositories.GoalRepository,
	hub Broadcaster,
	refZone *time.Location,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		goalRepo:   goalRepo,
		hub:        hub,
		refZone:    refZone,
		logger:     logger,
	}
}

func (s *matchService) Schedule(ctx context.Context, input ScheduleMatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchTeamsIdentical
	}
	for _, teamID := range []int{input.HomeTeamID, input.AwayTeamID} {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to check team %d: %w", teamID, err)
		}
		if team.CampaignID != input.CampaignID {
			return nil, fmt.Errorf("%w: team %d belongs to another campaign", ErrValidationFailed, teamID)
		}
	}

	match := &models.Match{
		CampaignID: input.CampaignID,
		GroupID:    input.GroupID,
		Stage:      input.Stage,
		Round:      input.Round,
		Slot:       input.Slot,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		KickoffAt:  engine.ToInstant(input.Kickoff, s.refZone),
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, fmt.Errorf("failed to schedule match: %w", err)
	}

	s.broadcastChange(match)
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListByCampaign(ctx context.Context, campaignID int, stage *models.Stage) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByCampaign(ctx, campaignID, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for campaign %d: %w", campaignID, err)
	}
	return matches, nil
}

func (s *matchService) Reschedule(ctx context.Context, id int, kickoff engine.LocalClock) error {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	match.KickoffAt = engine.ToInstant(kickoff, s.refZone)
	if err := s.matchRepo.UpdateKickoff(ctx, id, *match); err != nil {
		return fmt.Errorf("failed to reschedule match %d: %w", id, err)
	}
	s.broadcastChange(match)
	return nil
}

// RecordResult enters or corrects a score. Standings and brackets are
// derived on read, so a correction needs no invalidation beyond notifying
// subscribers that published output changed.
func (s *matchService) RecordResult(ctx context.Context, id int, homeScore, awayScore int) error {
	if homeScore < 0 || awayScore < 0 {
		return ErrScoreNegative
	}
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	match.HomeScore = &homeScore
	match.AwayScore = &awayScore
	match.Played = true
	if _, err := engine.Normalize(*match); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if err := s.matchRepo.UpdateResult(ctx, id, &homeScore, &awayScore, true); err != nil {
		return fmt.Errorf("failed to record result for match %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "match result recorded",
		slog.Int("match_id", id), slog.Int("home", homeScore), slog.Int("away", awayScore))
	s.broadcastChange(match)
	return nil
}

func (s *matchService) RetractResult(ctx context.Context, id int) error {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.matchRepo.UpdateResult(ctx, id, nil, nil, false); err != nil {
		return fmt.Errorf("failed to retract result for match %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "match result retracted", slog.Int("match_id", id))
	s.broadcastChange(match)
	return nil
}

// SetExcluded soft-excludes a match from every computation while keeping
// the row for audit; published output may already reference it.
func (s *matchService) SetExcluded(ctx context.Context, id int, excluded bool) error {
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.matchRepo.SetExcluded(ctx, id, excluded); err != nil {
		return fmt.Errorf("failed to set excluded=%t on match %d: %w", excluded, id, err)
	}
	s.broadcastChange(match)
	return nil
}

// KickoffLocal maps a stored instant back to the organizer's wall clock at
// the display boundary.
func (s *matchService) KickoffLocal(match *models.Match) engine.LocalClock {
	return engine.FromInstant(match.KickoffAt, s.refZone)
}

func (s *matchService) AddGoal(ctx context.Context, goal *models.Goal) error {
	match, err := s.GetByID(ctx, goal.MatchID)
	if err != nil {
		return err
	}
	if goal.TeamID != match.HomeTeamID && goal.TeamID != match.AwayTeamID {
		return fmt.Errorf("%w: team %d did not play match %d", ErrValidationFailed, goal.TeamID, goal.MatchID)
	}
	if _, err := s.playerRepo.GetByID(ctx, goal.PlayerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to check player %d: %w", goal.PlayerID, err)
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return fmt.Errorf("failed to add goal to match %d: %w", goal.MatchID, err)
	}
	s.broadcastChange(match)
	return nil
}

// RemoveGoal deletes a wrongly entered goal event. The goal must belong to
// the named match so a mistyped URL cannot delete an unrelated record.
func (s *matchService) RemoveGoal(ctx context.Context, matchID, goalID int) error {
	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return err
	}

	goals, err := s.goalRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to list goals for match %d: %w", matchID, err)
	}
	found := false
	for _, g := range goals {
		if g.ID == goalID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	if err := s.goalRepo.Delete(ctx, goalID); err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete goal %d: %w", goalID, err)
	}
	s.logger.InfoContext(ctx, "goal removed",
		slog.Int("match_id", matchID), slog.Int("goal_id", goalID))
	s.broadcastChange(match)
	return nil
}

func (s *matchService) ListGoals(ctx context.Context, matchID int) ([]*models.Goal, error) {
	goals, err := s.goalRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals for match %d: %w", matchID, err)
	}
	return goals, nil
}

func (s *matchService) broadcastChange(match *models.Match) {
	room := campaignRoom(match.CampaignID)
	s.hub.BroadcastToRoom(room, live.Event{Type: live.EventMatchUpdated, Payload: match})
	switch match.Stage {
	case models.StageKnockout:
		s.hub.BroadcastToRoom(room, live.Event{Type: live.EventBracketUpdated, Payload: nil})
	default:
		s.hub.BroadcastToRoom(room, live.Event{Type: live.EventStandingsUpdated, Payload: nil})
	}
}
