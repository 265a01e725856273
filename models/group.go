package models

type Group struct {
	ID         int    `json:"id" db:"id"`
	CampaignID int    `json:"campaign_id" db:"campaign_id"`
	Name       string `json:"name" db:"name"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
