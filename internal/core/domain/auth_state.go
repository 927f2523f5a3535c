package domain

import "time"

// AuthState is what the admin keeps in persistent client storage for one
// session: the token pair and the path to return to after the next login.
type AuthState struct {
	SessionID    string    `db:"session_id" json:"session_id"`
	AccessToken  string    `db:"access_token" json:"access_token"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	ReturnPath   string    `db:"return_path" json:"return_path"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func NewAuthState(sessionID string) *AuthState {
	return &AuthState{
		SessionID: sessionID,
		UpdatedAt: time.Now(),
	}
}
