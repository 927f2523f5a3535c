package domain

type Role struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name" validate:"required,max=64"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty" validate:"dive,required"`
}

func (r *Role) Check() error {
	return nil
}

type Permission struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description,omitempty"`
}

func (p *Permission) Check() error {
	return nil
}

func (r *Role) EntityID() int64 { return r.ID }
func (r *Role) SetEntityID(id int64) { r.ID = id }

func (p *Permission) EntityID() int64 { return p.ID }
func (p *Permission) SetEntityID(id int64) { p.ID = id }
