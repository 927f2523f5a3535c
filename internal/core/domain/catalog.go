package domain

import "fmt"

type Brand struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name" validate:"required,max=255"`
	Slug    string `json:"slug,omitempty" validate:"omitempty,max=255"`
	LogoURL string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

func (b *Brand) Check() error {
	return nil
}

type Category struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" validate:"required,max=255"`
	Slug     string `json:"slug,omitempty" validate:"omitempty,max=255"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

func (c *Category) Check() error {
	if c.ParentID != nil && c.ID != 0 && *c.ParentID == c.ID {
		return fmt.Errorf("%w: category cannot be its own parent", ErrInvalidEntity)
	}
	return nil
}

func (b *Brand) EntityID() int64 { return b.ID }
func (b *Brand) SetEntityID(id int64) { b.ID = id }

func (c *Category) EntityID() int64 { return c.ID }
func (c *Category) SetEntityID(id int64) { c.ID = id }
