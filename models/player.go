package models

import "time"

type Player struct {
	ID        int       `json:"id" db:"id"`
	TeamID    int       `json:"team_id" db:"team_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Number    *int      `json:"number,omitempty" db:"number"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (p Player) DisplayName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}
