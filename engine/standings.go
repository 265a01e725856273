package engine

import (
	"errors"
	"fmt"

	"github.com/Amirkhan01/campaign-system/models"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// ComputeStandings folds every normalized result for one group into a ranked
// table, one row per team, including teams with no played matches. The fold
// is order-independent: each played match contributes commutative increments
// to both rows, so input order (and late corrections) cannot change the
// outcome. Invalid matches are excluded and reported as warnings instead of
// aborting the table.
func ComputeStandings(teams []models.Team, matches []models.Match) ([]models.StandingRow, []Warning) {
	rows := make(map[int]*models.StandingRow, len(teams))
	for _, t := range teams {
		rows[t.ID] = &models.StandingRow{TeamID: t.ID, TeamName: t.Name}
	}

	warnings := make([]Warning, 0)
	normalized := make([]NormalizedMatch, 0, len(matches))

	for _, m := range matches {
		if m.Excluded {
			continue
		}
		nm, err := Normalize(m)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				warnings = append(warnings, Warning{Code: WarnMatchInvalid, MatchID: verr.MatchID, Detail: verr.Reason})
			}
			continue
		}
		if _, ok := rows[nm.HomeTeamID]; !ok {
			warnings = append(warnings, Warning{Code: WarnMatchInvalid, MatchID: nm.MatchID,
				Detail: fmt.Sprintf("home team %d is not in this group", nm.HomeTeamID)})
			continue
		}
		if _, ok := rows[nm.AwayTeamID]; !ok {
			warnings = append(warnings, Warning{Code: WarnMatchInvalid, MatchID: nm.MatchID,
				Detail: fmt.Sprintf("away team %d is not in this group", nm.AwayTeamID)})
			continue
		}
		normalized = append(normalized, nm)

		home, away, played := nm.Result.Goals()
		if !played {
			continue
		}
		applyResult(rows[nm.HomeTeamID], home, away)
		applyResult(rows[nm.AwayTeamID], away, home)
	}

	table := make([]models.StandingRow, 0, len(rows))
	for _, row := range rows {
		row.GoalDiff = row.GoalsFor - row.GoalsAgainst
		table = append(table, *row)
	}

	sortRows(table, headToHeadIndex(normalized))
	for i := range table {
		table[i].Rank = i + 1
	}
	return table, warnings
}

func applyResult(row *models.StandingRow, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Wins++
		row.Points += pointsWin
	case scored == conceded:
		row.Draws++
		row.Points += pointsDraw
	default:
		row.Losses++
	}
}
