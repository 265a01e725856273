package models

type Goal struct {
	ID       int  `json:"id" db:"id"`
	MatchID  int  `json:"match_id" db:"match_id"`
	TeamID   int  `json:"team_id" db:"team_id"`
	PlayerID int  `json:"player_id" db:"player_id"`
	Minute   *int `json:"minute,omitempty" db:"minute"`
	Penalty  bool `json:"penalty" db:"penalty"`
	OwnGoal  bool `json:"own_goal" db:"own_goal"`
}
