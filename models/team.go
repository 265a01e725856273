package models

import "time"

type Team struct {
	ID         int       `json:"id" db:"id"`
	CampaignID int       `json:"campaign_id" db:"campaign_id"`
	GroupID    *int      `json:"group_id,omitempty" db:"group_id"`
	Name       string    `json:"name" db:"name"`
	ShortCode  string    `json:"short_code" db:"short_code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}
