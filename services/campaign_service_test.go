package services

import (
	"context"
	"testing"
	"time"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaignService(campaigns map[int]*models.Campaign) (CampaignService, *fakeCampaignRepo) {
	campaignRepo := &fakeCampaignRepo{campaigns: campaigns}
	svc := NewCampaignService(
		campaignRepo,
		&fakeGroupRepo{groups: map[int]*models.Group{}},
		&fakeTeamRepo{teams: map[int]*models.Team{}},
		newFakeMatchRepo(),
		testLogger(),
	)
	return svc, campaignRepo
}

func TestCampaignCreateValidation(t *testing.T) {
	svc, _ := newCampaignService(map[int]*models.Campaign{})
	ctx := context.Background()
	now := time.Now()

	err := svc.Create(ctx, &models.Campaign{})
	require.ErrorIs(t, err, ErrCampaignNameRequired)

	err = svc.Create(ctx, &models.Campaign{Name: "City Cup"})
	require.ErrorIs(t, err, ErrCampaignDatesRequired)

	err = svc.Create(ctx, &models.Campaign{
		Name:      "City Cup",
		RegDate:   now.Add(72 * time.Hour),
		StartDate: now.Add(24 * time.Hour),
		EndDate:   now.Add(96 * time.Hour),
	})
	require.ErrorIs(t, err, ErrCampaignInvalidRegDate)

	err = svc.Create(ctx, &models.Campaign{
		Name:      "City Cup",
		RegDate:   now,
		StartDate: now.Add(48 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	})
	require.ErrorIs(t, err, ErrCampaignInvalidDates)
}

func TestCampaignCreateDefaultsStatus(t *testing.T) {
	svc, _ := newCampaignService(map[int]*models.Campaign{})
	now := time.Now()

	campaign := &models.Campaign{
		ID:        1,
		Name:      "City Cup",
		Slug:      "city-cup",
		RegDate:   now.Add(24 * time.Hour),
		StartDate: now.Add(48 * time.Hour),
		EndDate:   now.Add(30 * 24 * time.Hour),
	}
	require.NoError(t, svc.Create(context.Background(), campaign))
	assert.Equal(t, models.StatusSoon, campaign.Status)
}

func TestCampaignStatusTransitions(t *testing.T) {
	now := time.Now()
	svc, _ := newCampaignService(map[int]*models.Campaign{
		1: {
			ID: 1, Name: "City Cup", Status: models.StatusCompleted,
			RegDate: now.Add(-72 * time.Hour), StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-time.Hour),
		},
		2: {
			ID: 2, Name: "Winter Cup", Status: models.StatusRegistration,
			RegDate: now.Add(-time.Hour), StartDate: now.Add(24 * time.Hour), EndDate: now.Add(96 * time.Hour),
		},
	})
	ctx := context.Background()

	err := svc.UpdateStatus(ctx, 1, models.StatusActive)
	require.ErrorIs(t, err, ErrCampaignStatusImmutable)

	err = svc.UpdateStatus(ctx, 2, models.CampaignStatus("bogus"))
	require.ErrorIs(t, err, ErrCampaignInvalidStatus)

	require.NoError(t, svc.UpdateStatus(ctx, 2, models.StatusActive))

	updated, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, updated.Status)
}

func TestAutoUpdateStatusesByDates(t *testing.T) {
	now := time.Now()
	svc, campaignRepo := newCampaignService(map[int]*models.Campaign{
		1: {
			ID: 1, Name: "Opening soon", Status: models.StatusSoon,
			RegDate: now.Add(-time.Hour), StartDate: now.Add(24 * time.Hour), EndDate: now.Add(96 * time.Hour),
		},
		2: {
			ID: 2, Name: "Running", Status: models.StatusActive,
			RegDate: now.Add(-96 * time.Hour), StartDate: now.Add(-72 * time.Hour), EndDate: now.Add(-time.Hour),
		},
		3: {
			ID: 3, Name: "Canceled", Status: models.StatusCanceled,
			RegDate: now.Add(-96 * time.Hour), StartDate: now.Add(-72 * time.Hour), EndDate: now.Add(-time.Hour),
		},
	})

	require.NoError(t, svc.AutoUpdateStatusesByDates(context.Background()))

	assert.Equal(t, models.StatusRegistration, campaignRepo.campaigns[1].Status)
	assert.Equal(t, models.StatusCompleted, campaignRepo.campaigns[2].Status)
	assert.Equal(t, models.StatusCanceled, campaignRepo.campaigns[3].Status)
}
