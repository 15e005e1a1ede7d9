// internal/domain/coupon/entity.go
package coupon

import (
	"time"

	"github.com/velvety/storefront/internal/pricing"
	"gorm.io/gorm"
)

// Kind constants mirror pricing.CouponKind for storage
const (
	KindPercent = "PERCENT"
	KindFixed   = "FIXED"
)

// Coupon represents a discount code. Codes are stored upper-case and
// matched case-insensitively at validation time.
type Coupon struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Kind          string         `gorm:"not null;size:20" json:"kind"`
	Value         int64          `gorm:"not null" json:"value"` // Percent (0-100) or cents
	MinOrderCents *int64         `json:"min_order_cents"`
	MaxUses       *int           `json:"max_uses"`
	UsedCount     int            `gorm:"default:0" json:"used_count"`
	ExpiresAt     *time.Time     `json:"expires_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Coupon) TableName() string {
	return "coupons"
}

// ToPricing adapts the stored coupon to the pricing engine's type
func (c *Coupon) ToPricing() *pricing.Coupon {
	kind := pricing.CouponPercent
	if c.Kind == KindFixed {
		kind = pricing.CouponFixed
	}
	return &pricing.Coupon{
		Code:          c.Code,
		Kind:          kind,
		Value:         c.Value,
		MinOrderCents: c.MinOrderCents,
		MaxUses:       c.MaxUses,
		UsedCount:     c.UsedCount,
		ExpiresAt:     c.ExpiresAt,
	}
}
