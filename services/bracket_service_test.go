package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Amirkhan01/campaign-system/engine"
	"github.com/Amirkhan01/campaign-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bracketFixture() (*fakeCampaignRepo, *fakeMatchRepo) {
	campaignRepo := &fakeCampaignRepo{campaigns: map[int]*models.Campaign{
		1: {
			ID:        1,
			Name:      "City Cup",
			Slug:      "city-cup",
			Status:    models.StatusActive,
			StartDate: time.Now().Add(48 * time.Hour),
			EndDate:   time.Now().Add(30 * 24 * time.Hour),
		},
	}}
	return campaignRepo, newFakeMatchRepo()
}

func addKnockoutMatch(t *testing.T, repo *fakeMatchRepo, round, slot, home, away int, homeScore, awayScore *int) *models.Match {
	t.Helper()
	m := &models.Match{
		CampaignID: 1,
		Stage:      models.StageKnockout,
		Round:      iptr(round),
		Slot:       iptr(slot),
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Played:     homeScore != nil && awayScore != nil,
		KickoffAt:  time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), nil, m))
	return m
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBracketServiceCampaignNotFound(t *testing.T) {
	campaignRepo, matchRepo := bracketFixture()
	svc := NewBracketService(nil, campaignRepo, matchRepo, &fakeHub{}, testLogger())

	_, err := svc.ComputeBracket(context.Background(), 42)
	require.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestBracketServiceComputesNodes(t *testing.T) {
	campaignRepo, matchRepo := bracketFixture()
	addKnockoutMatch(t, matchRepo, 1, 1, 10, 20, iptr(2), iptr(1))
	addKnockoutMatch(t, matchRepo, 1, 2, 30, 40, nil, nil)

	svc := NewBracketService(nil, campaignRepo, matchRepo, &fakeHub{}, testLogger())
	view, err := svc.ComputeBracket(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, view.CampaignID)

	// Two stored round-1 nodes plus the round-2 node synthesized from the
	// resolved winner.
	require.Len(t, view.Nodes, 3)

	byRoundSlot := make(map[[2]int]engine.BracketNode, len(view.Nodes))
	for _, n := range view.Nodes {
		byRoundSlot[[2]int{n.Round, n.Slot}] = n
	}

	slot1 := byRoundSlot[[2]int{1, 1}]
	assert.Equal(t, engine.NodeResolved, slot1.State)
	require.NotNil(t, slot1.WinnerTeamID)
	assert.Equal(t, 10, *slot1.WinnerTeamID)

	assert.Equal(t, engine.NodeSeeded, byRoundSlot[[2]int{1, 2}].State)

	final := byRoundSlot[[2]int{2, 1}]
	assert.Equal(t, engine.NodeSeeded, final.State)
	require.NotNil(t, final.HomeTeamID)
	assert.Equal(t, 10, *final.HomeTeamID)
	assert.Nil(t, final.AwayTeamID)
	assert.Nil(t, final.WinnerTeamID)
}

func TestBracketServiceAdvanceRefusesIncompleteRound(t *testing.T) {
	campaignRepo, matchRepo := bracketFixture()
	addKnockoutMatch(t, matchRepo, 1, 1, 10, 20, iptr(2), iptr(1))
	addKnockoutMatch(t, matchRepo, 1, 2, 30, 40, nil, nil)

	svc := NewBracketService(nil, campaignRepo, matchRepo, &fakeHub{}, testLogger())
	_, err := svc.AdvanceRound(context.Background(), 1, 1)
	require.ErrorIs(t, err, engine.ErrRoundIncomplete)
}

func TestBracketServiceAdvanceRefusesReseeding(t *testing.T) {
	campaignRepo, matchRepo := bracketFixture()
	addKnockoutMatch(t, matchRepo, 1, 1, 10, 20, iptr(2), iptr(1))
	addKnockoutMatch(t, matchRepo, 1, 2, 30, 40, iptr(0), iptr(1))
	addKnockoutMatch(t, matchRepo, 2, 1, 10, 40, nil, nil)

	svc := NewBracketService(nil, campaignRepo, matchRepo, &fakeHub{}, testLogger())
	_, err := svc.AdvanceRound(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrRoundAlreadySeeded)
}

func TestBracketServiceAdvancePastChampionIsEmpty(t *testing.T) {
	campaignRepo, matchRepo := bracketFixture()
	addKnockoutMatch(t, matchRepo, 1, 1, 10, 20, iptr(3), iptr(0))

	svc := NewBracketService(nil, campaignRepo, matchRepo, &fakeHub{}, testLogger())
	created, err := svc.AdvanceRound(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, created)
}
