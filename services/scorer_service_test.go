package services

import (
	"context"
	"testing"
	"time"

	"github.com/Amirkhan01/campaign-system/engine"
	"github.com/Amirkhan01/campaign-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopScorersCampaignNotFound(t *testing.T) {
	campaignRepo := &fakeCampaignRepo{campaigns: map[int]*models.Campaign{}}
	svc := NewScorerService(campaignRepo,
		&fakePlayerRepo{players: map[int]*models.Player{}},
		&fakeTeamRepo{teams: map[int]*models.Team{}},
		newFakeMatchRepo(),
		newFakeGoalRepo(),
	)

	_, err := svc.TopScorers(context.Background(), 1)
	require.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestTopScorersRanking(t *testing.T) {
	ctx := context.Background()
	campaignRepo := &fakeCampaignRepo{campaigns: map[int]*models.Campaign{
		1: {ID: 1, Name: "City Cup", Status: models.StatusActive},
	}}
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, CampaignID: 1, Name: "Astana"},
		2: {ID: 2, CampaignID: 1, Name: "Barys"},
	}}
	playerRepo := &fakePlayerRepo{players: map[int]*models.Player{
		10: {ID: 10, TeamID: 1, FirstName: "Daniyar", LastName: "Omarov"},
		11: {ID: 11, TeamID: 2, FirstName: "Ruslan", LastName: "Akhmetov"},
	}}
	matchRepo := newFakeMatchRepo()
	goalRepo := newFakeGoalRepo()

	match := &models.Match{
		CampaignID: 1,
		Stage:      models.StageGroup,
		HomeTeamID: 1,
		AwayTeamID: 2,
		HomeScore:  iptr(2),
		AwayScore:  iptr(1),
		Played:     true,
		KickoffAt:  time.Now(),
	}
	require.NoError(t, matchRepo.Create(ctx, nil, match))

	require.NoError(t, goalRepo.Create(ctx, &models.Goal{MatchID: match.ID, TeamID: 1, PlayerID: 10}))
	require.NoError(t, goalRepo.Create(ctx, &models.Goal{MatchID: match.ID, TeamID: 1, PlayerID: 10, Penalty: true}))
	require.NoError(t, goalRepo.Create(ctx, &models.Goal{MatchID: match.ID, TeamID: 2, PlayerID: 11}))

	svc := NewScorerService(campaignRepo, playerRepo, teamRepo, matchRepo, goalRepo)
	view, err := svc.TopScorers(ctx, 1)
	require.NoError(t, err)

	require.Len(t, view.Rows, 2)
	assert.Empty(t, view.Warnings)

	assert.Equal(t, 10, view.Rows[0].PlayerID)
	assert.Equal(t, 2, view.Rows[0].Goals)
	assert.Equal(t, 1, view.Rows[0].Penalties)
	assert.Equal(t, 1, view.Rows[0].Rank)

	assert.Equal(t, 11, view.Rows[1].PlayerID)
	assert.Equal(t, 1, view.Rows[1].Goals)
	assert.Equal(t, 2, view.Rows[1].Rank)
}

func TestTopScorersFlagsOrphanGoal(t *testing.T) {
	ctx := context.Background()
	campaignRepo := &fakeCampaignRepo{campaigns: map[int]*models.Campaign{
		1: {ID: 1, Name: "City Cup", Status: models.StatusActive},
	}}
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, CampaignID: 1, Name: "Astana"},
		2: {ID: 2, CampaignID: 1, Name: "Barys"},
	}}
	playerRepo := &fakePlayerRepo{players: map[int]*models.Player{}}
	matchRepo := newFakeMatchRepo()
	goalRepo := newFakeGoalRepo()

	match := &models.Match{
		CampaignID: 1,
		Stage:      models.StageGroup,
		HomeTeamID: 1,
		AwayTeamID: 2,
		HomeScore:  iptr(1),
		AwayScore:  iptr(0),
		Played:     true,
		KickoffAt:  time.Now(),
	}
	require.NoError(t, matchRepo.Create(ctx, nil, match))
	require.NoError(t, goalRepo.Create(ctx, &models.Goal{MatchID: match.ID, TeamID: 1, PlayerID: 77}))

	svc := NewScorerService(campaignRepo, playerRepo, teamRepo, matchRepo, goalRepo)
	view, err := svc.TopScorers(ctx, 1)
	require.NoError(t, err)

	assert.Empty(t, view.Rows)
	require.Len(t, view.Warnings, 1)
	assert.Equal(t, engine.WarnGoalOrphaned, view.Warnings[0].Code)
}
