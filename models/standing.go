package models

// StandingRow is derived output, recomputed in full from the match set on
// every query. It is never persisted, so stored and computed state cannot
// drift apart.
type StandingRow struct {
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
	Rank         int    `json:"rank"`
}
