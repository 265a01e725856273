package models

import "time"

type CampaignStatus string

const (
	StatusSoon         CampaignStatus = "soon"
	StatusRegistration CampaignStatus = "registration"
	StatusActive       CampaignStatus = "active"
	StatusCompleted    CampaignStatus = "completed"
	StatusCanceled     CampaignStatus = "canceled"
)

type Campaign struct {
	ID        int            `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Slug      string         `json:"slug" db:"slug"`
	Season    string         `json:"season" db:"season"`
	Status    CampaignStatus `json:"status" db:"status"`
	RegDate   time.Time      `json:"reg_date" db:"reg_date"`
	StartDate time.Time      `json:"start_date" db:"start_date"`
	EndDate   time.Time      `json:"end_date" db:"end_date"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`

	Groups  []Group `json:"groups,omitempty" db:"-"`
	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
