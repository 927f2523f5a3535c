package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

var maxPercent = decimal.NewFromInt(100)

type Coupon struct {
	ID           int64           `json:"id,omitempty"`
	Code         string          `json:"code" validate:"required,alphanum,max=32"`
	DiscountType DiscountType    `json:"discount_type" validate:"required,oneof=percent fixed"`
	Value        decimal.Decimal `json:"value"`
	MinOrder     decimal.Decimal `json:"min_order"`
	UsageLimit   int             `json:"usage_limit" validate:"gte=0"`
	StartsAt     *time.Time      `json:"starts_at,omitempty"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	Active       bool            `json:"active"`
}

func (c *Coupon) Normalize() {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
}

func (c *Coupon) Check() error {
	if !c.Value.IsPositive() {
		return fmt.Errorf("%w: coupon value must be positive", ErrInvalidEntity)
	}
	if c.DiscountType == DiscountPercent && c.Value.GreaterThan(maxPercent) {
		return fmt.Errorf("%w: percent discount cannot exceed 100", ErrInvalidEntity)
	}
	if c.MinOrder.IsNegative() {
		return fmt.Errorf("%w: min_order must not be negative", ErrInvalidEntity)
	}
	if c.StartsAt != nil && c.ExpiresAt != nil && !c.ExpiresAt.After(*c.StartsAt) {
		return fmt.Errorf("%w: expires_at must be after starts_at", ErrInvalidEntity)
	}
	return nil
}

func (c *Coupon) EntityID() int64 { return c.ID }
func (c *Coupon) SetEntityID(id int64) { c.ID = id }
