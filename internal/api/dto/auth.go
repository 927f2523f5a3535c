package dto

import "time"

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse tells the browser where to go after logging in
type LoginResponse struct {
	Authenticated bool   `json:"authenticated"`
	Redirect      string `json:"redirect"`
}

// StatusResponse describes the session's stored credentials
type StatusResponse struct {
	Authenticated   bool       `json:"authenticated"`
	Subject         string     `json:"subject,omitempty"`
	Email           string     `json:"email,omitempty"`
	Roles           []string   `json:"roles,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Expired         bool       `json:"expired"`
	HasRefreshToken bool       `json:"has_refresh_token"`
}

// ViewResponse describes a navigation target such as the login form
type ViewResponse struct {
	View     string `json:"view"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
