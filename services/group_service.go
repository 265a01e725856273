package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/repositories"
)

type GroupService interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	ListByCampaign(ctx context.Context, campaignID int) ([]*models.Group, error)
	Delete(ctx context.Context, id int) error
}

type groupService struct {
	groupRepo    repositories.GroupRepository
	campaignRepo repositories.CampaignRepository
	teamRepo     repositories.TeamRepository
}

func NewGroupService(
	groupRepo repositories.GroupRepository,
	campaignRepo repositories.CampaignRepository,
	teamRepo repositories.TeamRepository,
) GroupService {
	return &groupService{
		groupRepo:    groupRepo,
		campaignRepo: campaignRepo,
		teamRepo:     teamRepo,
	}
}

func (s *groupService) Create(ctx context.Context, group *models.Group) error {
	group.Name = strings.TrimSpace(group.Name)
	if group.Name == "" {
		return ErrGroupNameRequired
	}

	if _, err := s.campaignRepo.GetByID(ctx, group.CampaignID); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return ErrCampaignNotFound
		}
		return fmt.Errorf("failed to get campaign %d: %w", group.CampaignID, err)
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, repositories.ErrGroupCampaignInvalid) {
			return ErrCampaignNotFound
		}
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (s *groupService) GetByID(ctx context.Context, id int) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", id, err)
	}
	return group, nil
}

func (s *groupService) ListByCampaign(ctx context.Context, campaignID int) ([]*models.Group, error) {
	if _, err := s.campaignRepo.GetByID(ctx, campaignID); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign %d: %w", campaignID, err)
	}

	groups, err := s.groupRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for campaign %d: %w", campaignID, err)
	}
	return groups, nil
}

func (s *groupService) Delete(ctx context.Context, id int) error {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group %d: %w", id, err)
	}

	teams, err := s.teamRepo.ListByCampaign(ctx, group.CampaignID)
	if err != nil {
		return fmt.Errorf("failed to list teams for campaign %d: %w", group.CampaignID, err)
	}
	for _, t := range teams {
		if t.GroupID != nil && *t.GroupID == id {
			return ErrGroupInUse
		}
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to delete group %d: %w", id, err)
	}
	return nil
}
