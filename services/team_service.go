package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/repositories"
)

type TeamService interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByCampaign(ctx context.Context, campaignID int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	AddPlayer(ctx context.Context, player *models.Player) error
	ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	groupRepo  repositories.GroupRepository
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	groupRepo repositories.GroupRepository,
) TeamService {
	return &teamService{teamRepo: teamRepo, playerRepo: playerRepo, groupRepo: groupRepo}
}

func (s *teamService) Create(ctx context.Context, team *models.Team) error {
	if team.Name == "" {
		return ErrTeamNameRequired
	}
	if team.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *team.GroupID); err != nil {
			if errors.Is(err, repositories.ErrGroupNotFound) {
				return ErrGroupNotFound
			}
			return fmt.Errorf("failed to check group %d: %w", *team.GroupID, err)
		}
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return team, nil
}

func (s *teamService) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for campaign %d: %w", campaignID, err)
	}
	return teams, nil
}

// Update refuses to move a team between groups once any match references
// it: published standings would otherwise silently change meaning.
func (s *teamService) Update(ctx context.Context, team *models.Team) error {
	current, err := s.GetByID(ctx, team.ID)
	if err != nil {
		return err
	}
	if team.Name == "" {
		return ErrTeamNameRequired
	}

	if !equalGroupID(current.GroupID, team.GroupID) {
		referencing, err := s.teamRepo.CountMatchesReferencing(ctx, team.ID)
		if err != nil {
			return fmt.Errorf("failed to count matches for team %d: %w", team.ID, err)
		}
		if referencing > 0 {
			return ErrTeamGroupLocked
		}
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to update team %d: %w", team.ID, err)
	}
	return nil
}

func (s *teamService) AddPlayer(ctx context.Context, player *models.Player) error {
	if _, err := s.GetByID(ctx, player.TeamID); err != nil {
		return err
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return fmt.Errorf("failed to add player to team %d: %w", player.TeamID, err)
	}
	return nil
}

func (s *teamService) ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}

func equalGroupID(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
