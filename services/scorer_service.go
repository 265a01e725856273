package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Amirkhan01/campaign-system/engine"
	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/repositories"
	"golang.org/x/sync/errgroup"
)

// ScorersView is the published top-scorer ranking of one campaign.
type ScorersView struct {
	CampaignID int                `json:"campaign_id"`
	Rows       []engine.ScorerRow `json:"rows"`
	Warnings   []engine.Warning   `json:"warnings"`
}

type ScorerService interface {
	TopScorers(ctx context.Context, campaignID int) (*ScorersView, error)
}

type scorerService struct {
	campaignRepo repositories.CampaignRepository
	playerRepo   repositories.PlayerRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	goalRepo     repositories.GoalRepository
}

func NewScorerService(
	campaignRepo repositories.CampaignRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	goalRepo repositories.GoalRepository,
) ScorerService {
	return &scorerService{
		campaignRepo: campaignRepo,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		goalRepo:     goalRepo,
	}
}

func (s *scorerService) TopScorers(ctx context.Context, campaignID int) (*ScorersView, error) {
	if _, err := s.campaignRepo.GetByID(ctx, campaignID); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign %d: %w", campaignID, err)
	}

	var (
		players []*models.Player
		teams   []*models.Team
		matches []*models.Match
		goals   []*models.Goal
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.ListByCampaign(gCtx, campaignID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByCampaign(gCtx, campaignID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByCampaign(gCtx, campaignID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.ListByCampaign(gCtx, campaignID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load scorer data for campaign %d: %w", campaignID, err)
	}

	playerValues := make([]models.Player, 0, len(players))
	for _, p := range players {
		playerValues = append(playerValues, *p)
	}
	teamValues := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		teamValues = append(teamValues, *t)
	}
	matchValues := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		matchValues = append(matchValues, *m)
	}
	goalValues := make([]models.Goal, 0, len(goals))
	for _, gl := range goals {
		goalValues = append(goalValues, *gl)
	}

	rows, warnings := engine.ComputeScorers(playerValues, teamValues, matchValues, goalValues)
	return &ScorersView{CampaignID: campaignID, Rows: rows, Warnings: warnings}, nil
}
