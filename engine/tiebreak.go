package engine

import (
	"sort"

	"github.com/Amirkhan01/campaign-system/models"
)

// headToHead holds aggregate goals between one pair of teams across their
// mutual played matches. The pair key is always (lower id, higher id).
type headToHead map[[2]int][2]int

func headToHeadIndex(matches []NormalizedMatch) headToHead {
	h2h := make(headToHead)
	for _, nm := range matches {
		home, away, played := nm.Result.Goals()
		if !played {
			continue
		}
		key := [2]int{nm.HomeTeamID, nm.AwayTeamID}
		goals := [2]int{home, away}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
			goals[0], goals[1] = goals[1], goals[0]
		}
		prev := h2h[key]
		h2h[key] = [2]int{prev[0] + goals[0], prev[1] + goals[1]}
	}
	return h2h
}

// winnerBetween returns the team that won the mutual aggregate, or 0 when
// the pair drew or never played each other.
func (h headToHead) winnerBetween(a, b int) int {
	key := [2]int{a, b}
	if key[0] > key[1] {
		key[0], key[1] = key[1], key[0]
	}
	goals, ok := h[key]
	if !ok || goals[0] == goals[1] {
		return 0
	}
	if goals[0] > goals[1] {
		return key[0]
	}
	return key[1]
}

// sortRows total-orders a standings table with the tie-break cascade:
// points, goal difference, goals for, head-to-head (only when exactly two
// teams remain tied), then team name ascending as the deterministic final
// step. Identical input always produces the identical order.
func sortRows(rows []models.StandingRow, h2h headToHead) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})

	// Head-to-head applies only to runs the cascade reduced to exactly two
	// teams. Larger tied sets keep the alphabetical order.
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && equalOnCascade(rows[start], rows[end]) {
			end++
		}
		if end-start == 2 {
			winner := h2h.winnerBetween(rows[start].TeamID, rows[start+1].TeamID)
			if winner == rows[start+1].TeamID {
				rows[start], rows[start+1] = rows[start+1], rows[start]
			}
		}
		start = end
	}
}

func equalOnCascade(a, b models.StandingRow) bool {
	return a.Points == b.Points && a.GoalDiff == b.GoalDiff && a.GoalsFor == b.GoalsFor
}
