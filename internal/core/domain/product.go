package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id,omitempty"`
	Name        string          `json:"name" validate:"required,max=255"`
	Slug        string          `json:"slug,omitempty" validate:"omitempty,max=255"`
	SKU         string          `json:"sku" validate:"required,max=64"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	BrandID     *int64          `json:"brand_id,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func (p *Product) Check() error {
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidEntity)
	}
	return nil
}

func (p *Product) EntityID() int64 { return p.ID }
func (p *Product) SetEntityID(id int64) { p.ID = id }
