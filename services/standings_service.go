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

// StandingsView is the published league table of one group, together with
// the data-quality warnings for any matches the computation excluded.
type StandingsView struct {
	GroupID   int                  `json:"group_id"`
	GroupName string               `json:"group_name"`
	Rows      []models.StandingRow `json:"rows"`
	Warnings  []engine.Warning     `json:"warnings"`
}

type StandingsService interface {
	ComputeStandings(ctx context.Context, groupID int) (*StandingsView, error)
}

type standingsService struct {
	groupRepo repositories.GroupRepository
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
}

func NewStandingsService(
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{groupRepo: groupRepo, teamRepo: teamRepo, matchRepo: matchRepo}
}

// ComputeStandings reads a snapshot of the group's teams and matches and
// recomputes the full table. Nothing is cached or incrementally updated:
// recomputation is linear in the match count and cannot go stale.
func (s *standingsService) ComputeStandings(ctx context.Context, groupID int) (*StandingsView, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}

	var (
		teams   []*models.Team
		matches []*models.Match
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByGroup(gCtx, groupID)
		if err != nil {
			return fmt.Errorf("failed to list teams for group %d: %w", groupID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByGroup(gCtx, groupID)
		if err != nil {
			return fmt.Errorf("failed to list matches for group %d: %w", groupID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	teamValues := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		teamValues = append(teamValues, *t)
	}
	matchValues := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		matchValues = append(matchValues, *m)
	}

	rows, warnings := engine.ComputeStandings(teamValues, matchValues)
	return &StandingsView{
		GroupID:   group.ID,
		GroupName: group.Name,
		Rows:      rows,
		Warnings:  warnings,
	}, nil
}
