package domain

import "time"

// PageState is the persisted list position for one resource screen.
// State holds the JSON encoded list filter.
type PageState struct {
	SessionID string    `db:"session_id"`
	Resource  string    `db:"resource"`
	State     string    `db:"state"`
	UpdatedAt time.Time `db:"updated_at"`
}
