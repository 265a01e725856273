package engine

import (
	"testing"

	"github.com/Amirkhan01/campaign-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupTeams() []models.Team {
	return []models.Team{
		{ID: 1, Name: "Astana"},
		{ID: 2, Name: "Barys"},
		{ID: 3, Name: "Caspiy"},
		{ID: 4, Name: "Dostyk"},
	}
}

func groupMatch(id, home, away, homeScore, awayScore int) models.Match {
	return models.Match{
		ID: id, Stage: models.StageGroup, HomeTeamID: home, AwayTeamID: away,
		HomeScore: iptr(homeScore), AwayScore: iptr(awayScore), Played: true,
	}
}

// Full round-robin: 1-2 2:1, 3-4 0:0, 1-3 1:1, 2-4 3:0, 1-4 2:2, 2-3 1:0.
func groupMatches() []models.Match {
	return []models.Match{
		groupMatch(1, 1, 2, 2, 1),
		groupMatch(2, 3, 4, 0, 0),
		groupMatch(3, 1, 3, 1, 1),
		groupMatch(4, 2, 4, 3, 0),
		groupMatch(5, 1, 4, 2, 2),
		groupMatch(6, 2, 3, 1, 0),
	}
}

func TestComputeStandingsRoundRobinTable(t *testing.T) {
	table, warnings := ComputeStandings(groupTeams(), groupMatches())
	require.Empty(t, warnings)
	require.Len(t, table, 4)

	// Barys tops the table on 6 points despite losing to Astana; Caspiy
	// edges Dostyk on goal difference at 2 points each.
	assert.Equal(t, "Barys", table[0].TeamName)
	assert.Equal(t, 6, table[0].Points)
	assert.Equal(t, 2, table[0].Wins)
	assert.Equal(t, 3, table[0].GoalDiff)

	assert.Equal(t, "Astana", table[1].TeamName)
	assert.Equal(t, 5, table[1].Points)
	assert.Equal(t, 1, table[1].Wins)
	assert.Equal(t, 2, table[1].Draws)
	assert.Equal(t, 0, table[1].Losses)

	assert.Equal(t, "Caspiy", table[2].TeamName)
	assert.Equal(t, 2, table[2].Points)
	assert.Equal(t, -1, table[2].GoalDiff)

	assert.Equal(t, "Dostyk", table[3].TeamName)
	assert.Equal(t, 2, table[3].Points)
	assert.Equal(t, -3, table[3].GoalDiff)

	for i, row := range table {
		assert.Equal(t, i+1, row.Rank)
	}
}

func TestComputeStandingsIsOrderIndependent(t *testing.T) {
	matches := groupMatches()
	reference, _ := ComputeStandings(groupTeams(), matches)

	for shift := 1; shift < len(matches); shift++ {
		rotated := append(append([]models.Match{}, matches[shift:]...), matches[:shift]...)
		table, _ := ComputeStandings(groupTeams(), rotated)
		assert.Equal(t, reference, table, "rotation by %d changed the table", shift)
	}

	reversed := make([]models.Match, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		reversed = append(reversed, matches[i])
	}
	table, _ := ComputeStandings(groupTeams(), reversed)
	assert.Equal(t, reference, table)
}

func TestComputeStandingsPointsConservation(t *testing.T) {
	table, _ := ComputeStandings(groupTeams(), groupMatches())

	total := 0
	for _, row := range table {
		total += row.Points
	}
	// 3 decisive matches and 3 draws.
	assert.Equal(t, 3*3+2*3, total)
}

func TestComputeStandingsIgnoresUnplayedAndExcluded(t *testing.T) {
	matches := []models.Match{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, HomeScore: iptr(5), AwayScore: iptr(0)}, // played=false
		{ID: 2, HomeTeamID: 3, AwayTeamID: 4, Played: false},
		groupMatch(3, 1, 3, 9, 0),
	}
	matches[2].Excluded = true

	table, warnings := ComputeStandings(groupTeams(), matches)
	require.Empty(t, warnings)
	for _, row := range table {
		assert.Zero(t, row.Played, "team %s", row.TeamName)
		assert.Zero(t, row.Points, "team %s", row.TeamName)
		assert.Zero(t, row.GoalsFor, "team %s", row.TeamName)
	}
	// Zero rows still come out ordered deterministically by name.
	assert.Equal(t, "Astana", table[0].TeamName)
	assert.Equal(t, "Dostyk", table[3].TeamName)
}

func TestComputeStandingsIsolatesBadRecords(t *testing.T) {
	matches := append(groupMatches(),
		models.Match{ID: 7, HomeTeamID: 1, AwayTeamID: 1, HomeScore: iptr(1), AwayScore: iptr(0), Played: true},
		models.Match{ID: 8, HomeTeamID: 2, AwayTeamID: 9, HomeScore: iptr(1), AwayScore: iptr(0), Played: true},
	)

	table, warnings := ComputeStandings(groupTeams(), matches)
	require.Len(t, warnings, 2)
	assert.Equal(t, WarnMatchInvalid, warnings[0].Code)
	assert.Equal(t, 7, warnings[0].MatchID)
	assert.Equal(t, 8, warnings[1].MatchID)

	// The bad records are excluded, the rest of the table is untouched.
	clean, _ := ComputeStandings(groupTeams(), groupMatches())
	assert.Equal(t, clean, table)
}

func TestTieBreakHeadToHeadBetweenExactlyTwo(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Altai"},
		{ID: 2, Name: "Zhetysu"},
		{ID: 3, Name: "Okzhetpes"},
		{ID: 4, Name: "Tobol"},
	}
	// Altai and Zhetysu finish level on points, goal difference and goals
	// for, but Zhetysu won the mutual match, so it ranks above the
	// alphabetically earlier Altai.
	matches := []models.Match{
		groupMatch(1, 2, 1, 1, 0),
		groupMatch(2, 1, 4, 1, 0),
		groupMatch(3, 3, 2, 1, 0),
	}

	table, _ := ComputeStandings(teams, matches)
	require.Len(t, table, 4)
	assert.Equal(t, "Okzhetpes", table[0].TeamName)
	assert.Equal(t, "Zhetysu", table[1].TeamName)
	assert.Equal(t, "Altai", table[2].TeamName)
	assert.Equal(t, "Tobol", table[3].TeamName)
}

func TestTieBreakFallsThroughOnDrawnHeadToHead(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Birlik"},
		{ID: 2, Name: "Aksu"},
	}
	matches := []models.Match{groupMatch(1, 1, 2, 1, 1)}

	table, _ := ComputeStandings(teams, matches)
	assert.Equal(t, "Aksu", table[0].TeamName, "a drawn pair falls through to the name tie-break")
	assert.Equal(t, "Birlik", table[1].TeamName)
}

func TestTieBreakThreeWayTieUsesNames(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "Cetus"},
		{ID: 2, Name: "Bers"},
		{ID: 3, Name: "Arlan"},
	}
	// A perfect cycle: everyone wins once 1:0. Head-to-head never applies
	// to a three-way tie, so names decide.
	matches := []models.Match{
		groupMatch(1, 1, 2, 1, 0),
		groupMatch(2, 2, 3, 1, 0),
		groupMatch(3, 3, 1, 1, 0),
	}

	table, _ := ComputeStandings(teams, matches)
	assert.Equal(t, []string{"Arlan", "Bers", "Cetus"},
		[]string{table[0].TeamName, table[1].TeamName, table[2].TeamName})
}

func TestStandingsStableAcrossRepeatedInvocations(t *testing.T) {
	first, _ := ComputeStandings(groupTeams(), groupMatches())
	for i := 0; i < 10; i++ {
		again, _ := ComputeStandings(groupTeams(), groupMatches())
		require.Equal(t, first, again)
	}
}
