package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/Amirkhan01/campaign-system/repositories"
	"golang.org/x/sync/errgroup"
)

type CampaignService interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id int) (*models.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*models.Campaign, error)
	List(ctx context.Context, status *models.CampaignStatus) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	UpdateStatus(ctx context.Context, id int, next models.CampaignStatus) error
	GetFullCampaign(ctx context.Context, id int) (*models.Campaign, error)
	AutoUpdateStatusesByDates(ctx context.Context) error
}

type campaignService struct {
	campaignRepo repositories.CampaignRepository
	groupRepo    repositories.GroupRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	logger       *slog.Logger
}

func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	groupRepo repositories.GroupRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		groupRepo:    groupRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		logger:       logger,
	}
}

func (s *campaignService) Create(ctx context.Context, campaign *models.Campaign) error {
	if campaign.Name == "" {
		return ErrCampaignNameRequired
	}
	if err := validateCampaignDates(campaign.RegDate, campaign.StartDate, campaign.EndDate); err != nil {
		return err
	}
	if campaign.Status == "" {
		campaign.Status = models.StatusSoon
	}
	if !isKnownStatus(campaign.Status) {
		return ErrCampaignInvalidStatus
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		if errors.Is(err, repositories.ErrCampaignSlugConflict) {
			return ErrCampaignSlugConflict
		}
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (s *campaignService) GetByID(ctx context.Context, id int) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign %d: %w", id, err)
	}
	return campaign, nil
}

func (s *campaignService) GetBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign %q: %w", slug, err)
	}
	return campaign, nil
}

func (s *campaignService) List(ctx context.Context, status *models.CampaignStatus) ([]*models.Campaign, error) {
	campaigns, err := s.campaignRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *campaignService) Update(ctx context.Context, campaign *models.Campaign) error {
	current, err := s.GetByID(ctx, campaign.ID)
	if err != nil {
		return err
	}
	if campaign.Name == "" {
		return ErrCampaignNameRequired
	}
	if err := validateCampaignDates(campaign.RegDate, campaign.StartDate, campaign.EndDate); err != nil {
		return err
	}
	if !isValidStatusTransition(current.Status, campaign.Status) {
		return ErrCampaignStatusImmutable
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		if errors.Is(err, repositories.ErrCampaignSlugConflict) {
			return ErrCampaignSlugConflict
		}
		return fmt.Errorf("failed to update campaign %d: %w", campaign.ID, err)
	}
	return nil
}

func (s *campaignService) UpdateStatus(ctx context.Context, id int, next models.CampaignStatus) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isKnownStatus(next) {
		return ErrCampaignInvalidStatus
	}
	if !isValidStatusTransition(current.Status, next) {
		return ErrCampaignStatusImmutable
	}
	if err := s.campaignRepo.UpdateStatus(ctx, id, next); err != nil {
		return fmt.Errorf("failed to update status of campaign %d: %w", id, err)
	}
	return nil
}

// GetFullCampaign loads the campaign with its groups, teams and matches in
// parallel; the computed tables and brackets are served by their own
// services over the same match snapshot.
func (s *campaignService) GetFullCampaign(ctx context.Context, id int) (*models.Campaign, error) {
	campaign, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		groups, err := s.groupRepo.ListByCampaign(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load groups for campaign %d: %w", id, err)
		}
		campaign.Groups = make([]models.Group, 0, len(groups))
		for _, grp := range groups {
			campaign.Groups = append(campaign.Groups, *grp)
		}
		return nil
	})

	g.Go(func() error {
		teams, err := s.teamRepo.ListByCampaign(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load teams for campaign %d: %w", id, err)
		}
		campaign.Teams = make([]models.Team, 0, len(teams))
		for _, t := range teams {
			campaign.Teams = append(campaign.Teams, *t)
		}
		return nil
	})

	g.Go(func() error {
		matches, err := s.matchRepo.ListByCampaign(gCtx, id, nil)
		if err != nil {
			return fmt.Errorf("failed to load matches for campaign %d: %w", id, err)
		}
		campaign.Matches = make([]models.Match, 0, len(matches))
		for _, m := range matches {
			campaign.Matches = append(campaign.Matches, *m)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return campaign, nil
}

// AutoUpdateStatusesByDates moves campaigns along their lifecycle as their
// configured dates pass; invoked periodically by the scheduler.
func (s *campaignService) AutoUpdateStatusesByDates(ctx context.Context) error {
	campaigns, err := s.campaignRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("scheduler failed to list campaigns: %w", err)
	}

	now := time.Now()
	for _, c := range campaigns {
		next := c.Status
		switch c.Status {
		case models.StatusSoon:
			if now.After(c.RegDate) {
				next = models.StatusRegistration
			}
		case models.StatusRegistration:
			if now.After(c.StartDate) {
				next = models.StatusActive
			}
		case models.StatusActive:
			if now.After(c.EndDate) {
				next = models.StatusCompleted
			}
		}
		if next == c.Status {
			continue
		}
		if err := s.campaignRepo.UpdateStatus(ctx, c.ID, next); err != nil {
			s.logger.ErrorContext(ctx, "scheduler failed to advance campaign status",
				slog.Int("campaign_id", c.ID), slog.String("next", string(next)), slog.Any("error", err))
			continue
		}
		s.logger.InfoContext(ctx, "campaign status advanced by schedule",
			slog.Int("campaign_id", c.ID),
			slog.String("from", string(c.Status)), slog.String("to", string(next)))
	}
	return nil
}

func validateCampaignDates(reg, start, end time.Time) error {
	if reg.IsZero() || start.IsZero() || end.IsZero() {
		return ErrCampaignDatesRequired
	}
	if reg.After(start) {
		return fmt.Errorf("%w: registration close (%s) is after start (%s)",
			ErrCampaignInvalidRegDate, reg.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start (%s) is not before end (%s)",
			ErrCampaignInvalidDates, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

func isKnownStatus(status models.CampaignStatus) bool {
	switch status {
	case models.StatusSoon, models.StatusRegistration, models.StatusActive, models.StatusCompleted, models.StatusCanceled:
		return true
	}
	return false
}

func isValidStatusTransition(current, next models.CampaignStatus) bool {
	if current == next {
		return true
	}
	allowed := map[models.CampaignStatus][]models.CampaignStatus{
		models.StatusSoon:         {models.StatusRegistration, models.StatusCanceled},
		models.StatusRegistration: {models.StatusActive, models.StatusCanceled},
		models.StatusActive:       {models.StatusCompleted, models.StatusCanceled},
		models.StatusCompleted:    {},
		models.StatusCanceled:     {},
	}
	for _, status := range allowed[current] {
		if next == status {
			return true
		}
	}
	return false
}
