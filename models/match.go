package models

import "time"

type Stage string

const (
	StageGroup    Stage = "group"
	StageKnockout Stage = "knockout"
)

// Match is the authoritative record a single fixture. Scores stay nil until
// a result is entered; Played without both scores is treated as no result.
// Rows referenced by published standings or brackets are never deleted,
// only soft-excluded.
type Match struct {
	ID         int       `json:"id" db:"id"`
	CampaignID int       `json:"campaign_id" db:"campaign_id"`
	GroupID    *int      `json:"group_id,omitempty" db:"group_id"`
	Stage      Stage     `json:"stage" db:"stage"`
	Round      *int      `json:"round,omitempty" db:"round"`
	Slot       *int      `json:"slot,omitempty" db:"slot"`
	HomeTeamID int       `json:"home_team_id" db:"home_team_id"`
	AwayTeamID int       `json:"away_team_id" db:"away_team_id"`
	HomeScore  *int      `json:"home_score,omitempty" db:"home_score"`
	AwayScore  *int      `json:"away_score,omitempty" db:"away_score"`
	Played     bool      `json:"played" db:"played"`
	Excluded   bool      `json:"excluded" db:"excluded"`
	KickoffAt  time.Time `json:"kickoff_at" db:"kickoff_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
