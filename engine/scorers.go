package engine

import (
	"sort"

	"github.com/Amirkhan01/campaign-system/models"
)

// ScorerRow is a derived top-scorer ranking entry.
type ScorerRow struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamID     int    `json:"team_id"`
	TeamName   string `json:"team_name"`
	Goals      int    `json:"goals"`
	Penalties  int    `json:"penalties"`
	Rank       int    `json:"rank"`
}

// ComputeScorers folds goal events into a top-scorer ranking. Only goals
// from valid, played, non-excluded matches count; own goals credit nobody.
// Like the standings fold, the result is independent of input order.
func ComputeScorers(players []models.Player, teams []models.Team, matches []models.Match, goals []models.Goal) ([]ScorerRow, []Warning) {
	warnings := make([]Warning, 0)

	counting := make(map[int]bool, len(matches))
	for _, m := range matches {
		if m.Excluded {
			continue
		}
		nm, err := Normalize(m)
		if err != nil {
			continue // already reported by the standings computation
		}
		if _, _, played := nm.Result.Goals(); played {
			counting[nm.MatchID] = true
		}
	}

	playerIndex := make(map[int]models.Player, len(players))
	for _, p := range players {
		playerIndex[p.ID] = p
	}
	teamNames := make(map[int]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	tally := make(map[int]*ScorerRow)
	for _, g := range goals {
		if g.OwnGoal {
			continue
		}
		if !counting[g.MatchID] {
			continue
		}
		p, ok := playerIndex[g.PlayerID]
		if !ok {
			warnings = append(warnings, Warning{Code: WarnGoalOrphaned, MatchID: g.MatchID,
				Detail: "goal references an unknown player"})
			continue
		}
		row, ok := tally[g.PlayerID]
		if !ok {
			row = &ScorerRow{
				PlayerID:   p.ID,
				PlayerName: p.DisplayName(),
				TeamID:     p.TeamID,
				TeamName:   teamNames[p.TeamID],
			}
			tally[g.PlayerID] = row
		}
		row.Goals++
		if g.Penalty {
			row.Penalties++
		}
	}

	ranking := make([]ScorerRow, 0, len(tally))
	for _, row := range tally {
		ranking = append(ranking, *row)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if a.Goals != b.Goals {
			return a.Goals > b.Goals
		}
		if a.Penalties != b.Penalties {
			return a.Penalties < b.Penalties
		}
		return a.PlayerName < b.PlayerName
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking, warnings
}
