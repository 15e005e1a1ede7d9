// internal/domain/coupon/entity_test.go
package coupon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/velvety/storefront/internal/pricing"
)

func TestToPricing(t *testing.T) {
	min := int64(3000)
	maxUses := 100
	expires := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	c := &Coupon{
		Code:          "WELCOME10",
		Kind:          KindPercent,
		Value:         10,
		MinOrderCents: &min,
		MaxUses:       &maxUses,
		UsedCount:     3,
		ExpiresAt:     &expires,
	}

	p := c.ToPricing()
	assert.Equal(t, "WELCOME10", p.Code)
	assert.Equal(t, pricing.CouponPercent, p.Kind)
	assert.Equal(t, int64(10), p.Value)
	assert.Equal(t, &min, p.MinOrderCents)
	assert.Equal(t, &maxUses, p.MaxUses)
	assert.Equal(t, 3, p.UsedCount)
	assert.Equal(t, &expires, p.ExpiresAt)
}

func TestToPricingFixedKind(t *testing.T) {
	c := &Coupon{Code: "SAVE5", Kind: KindFixed, Value: 500}
	assert.Equal(t, pricing.CouponFixed, c.ToPricing().Kind)
}
