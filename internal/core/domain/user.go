package domain

import (
	"strings"
	"time"
)

// User is a shop account managed from the admin, not the operator of this tool.
type User struct {
	ID        int64      `json:"id,omitempty"`
	Email     string     `json:"email" validate:"required,email"`
	FullName  string     `json:"full_name" validate:"required,max=255"`
	Phone     string     `json:"phone,omitempty" validate:"omitempty,max=32"`
	Active    bool       `json:"active"`
	Roles     []string   `json:"roles,omitempty" validate:"dive,required"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (u *User) Check() error {
	return nil
}

func (u *User) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

func (u *User) EntityID() int64 { return u.ID }
func (u *User) SetEntityID(id int64) { u.ID = id }
