package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Amirkhan01/campaign-system/engine"
	"github.com/Amirkhan01/campaign-system/live"
	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/repositories"
)

// BracketView is the published knockout bracket: the full node arena plus
// the warnings (unresolved winners, byes, stale pairings) the recomputation
// surfaced.
type BracketView struct {
	CampaignID int                  `json:"campaign_id"`
	Nodes      []engine.BracketNode `json:"nodes"`
	Warnings   []engine.Warning     `json:"warnings"`
}

type BracketService interface {
	ComputeBracket(ctx context.Context, campaignID int) (*BracketView, error)
	AdvanceRound(ctx context.Context, campaignID, round int) ([]*models.Match, error)
}

type bracketService struct {
	db           *sql.DB
	campaignRepo repositories.CampaignRepository
	matchRepo    repositories.MatchRepository
	hub          Broadcaster
	logger       *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	campaignRepo repositories.CampaignRepository,
	matchRepo repositories.MatchRepository,
	hub Broadcaster,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:           db,
		campaignRepo: campaignRepo,
		matchRepo:    matchRepo,
		hub:          hub,
		logger:       logger,
	}
}

// ComputeBracket rebuilds the knockout state from the match store on every
// request; there are no cached pairings that a score correction could leave
// stale.
func (s *bracketService) ComputeBracket(ctx context.Context, campaignID int) (*BracketView, error) {
	if _, err := s.campaignRepo.GetByID(ctx, campaignID); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign %d: %w", campaignID, err)
	}

	stage := models.StageKnockout
	matches, err := s.matchRepo.ListByCampaign(ctx, campaignID, &stage)
	if err != nil {
		return nil, fmt.Errorf("failed to list knockout matches for campaign %d: %w", campaignID, err)
	}

	matchValues := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		matchValues = append(matchValues, *m)
	}
	nodes, warnings := engine.ComputeBracket(matchValues)
	return &BracketView{CampaignID: campaignID, Nodes: nodes, Warnings: warnings}, nil
}

// AdvanceRound writes the next round's pairings to the match store, once
// and only once per round, and only when every node of the given round is
// resolved or a bye. The writes happen in one transaction so a partially
// seeded round can never be observed.
func (s *bracketService) AdvanceRound(ctx context.Context, campaignID, round int) ([]*models.Match, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign %d: %w", campaignID, err)
	}

	stage := models.StageKnockout
	stored, err := s.matchRepo.ListByCampaign(ctx, campaignID, &stage)
	if err != nil {
		return nil, fmt.Errorf("failed to list knockout matches for campaign %d: %w", campaignID, err)
	}
	matchValues := make([]models.Match, 0, len(stored))
	for _, m := range stored {
		if m.Round != nil && *m.Round == round+1 && !m.Excluded {
			return nil, ErrRoundAlreadySeeded
		}
		matchValues = append(matchValues, *m)
	}

	nodes, _ := engine.ComputeBracket(matchValues)
	pairings, byeTeam, err := engine.NextRoundPairings(nodes, round)
	if err != nil {
		return nil, err
	}
	if byeTeam != nil {
		s.logger.WarnContext(ctx, "odd bracket: team advances with a bye",
			slog.Int("campaign_id", campaignID), slog.Int("round", round), slog.Int("team_id", *byeTeam))
	}
	if len(pairings) == 0 {
		return []*models.Match{}, nil
	}

	kickoff := campaign.StartDate
	if now := time.Now(); now.After(kickoff) {
		kickoff = now.Add(24 * time.Hour)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	created := make([]*models.Match, 0, len(pairings))
	for _, p := range pairings {
		roundNum, slotNum := p.Round, p.Slot
		match := &models.Match{
			CampaignID: campaignID,
			Stage:      models.StageKnockout,
			Round:      &roundNum,
			Slot:       &slotNum,
			HomeTeamID: p.HomeTeamID,
			AwayTeamID: p.AwayTeamID,
			KickoffAt:  kickoff,
		}
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.ErrorContext(ctx, "rollback failed after pairing create error",
					slog.Any("error", rbErr))
			}
			return nil, fmt.Errorf("failed to create round %d pairing at slot %d: %w", p.Round, p.Slot, err)
		}
		created = append(created, match)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit round %d pairings: %w", round+1, err)
	}

	s.logger.InfoContext(ctx, "bracket round seeded",
		slog.Int("campaign_id", campaignID), slog.Int("round", round+1), slog.Int("matches", len(created)))
	s.hub.BroadcastToRoom(campaignRoom(campaignID), live.Event{Type: live.EventBracketUpdated, Payload: nil})
	return created, nil
}
