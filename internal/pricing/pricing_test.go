// internal/pricing/pricing_test.go
package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func lookupFor(coupons ...*Coupon) LookupFunc {
	return func(code string) (*Coupon, error) {
		for _, c := range coupons {
			if c.Code == code {
				return c, nil
			}
		}
		return nil, nil
	}
}

func TestComputeSubtotal(t *testing.T) {
	assert.Equal(t, int64(0), ComputeSubtotal(nil))

	lines := []Line{
		{ProductID: 1, UnitPriceCents: 1450, Quantity: 2},
		{ProductID: 2, UnitPriceCents: 999, Quantity: 1},
	}
	assert.Equal(t, int64(3899), ComputeSubtotal(lines))
}

func TestResolveShipping(t *testing.T) {
	standard := ShippingMethod{ID: "standard", BaseCents: 999, FreeOverCents: int64Ptr(5000)}
	express := ShippingMethod{ID: "express", BaseCents: 1499}

	tests := []struct {
		name     string
		subtotal int64
		method   ShippingMethod
		want     int64
	}{
		{"below threshold", 4999, standard, 999},
		{"at threshold", 5000, standard, 0},
		{"above threshold", 12000, standard, 0},
		{"no threshold", 99999, express, 1499},
		{"zero subtotal", 0, standard, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveShipping(tt.subtotal, tt.method))
		})
	}
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, int64(2610), ComputeTotal(2900, 290, 0))
	assert.Equal(t, int64(3999), ComputeTotal(3500, 500, 999))

	// Discount larger than subtotal floors at zero before shipping.
	assert.Equal(t, int64(999), ComputeTotal(1000, 5000, 999))
	assert.Equal(t, int64(0), ComputeTotal(0, 0, 0))
}

func TestComputeTotalNeverBelowShipping(t *testing.T) {
	for _, subtotal := range []int64{0, 1, 999, 2900, 100000} {
		for _, discount := range []int64{0, 500, 2900, 999999} {
			total := ComputeTotal(subtotal, discount, 999)
			assert.GreaterOrEqual(t, total, int64(999))
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "WELCOME10", NormalizeCode("  welcome10 "))
	assert.Equal(t, "SAVE5", NormalizeCode("Save5"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestValidateAndPriceCoupon_PercentScenario(t *testing.T) {
	welcome := &Coupon{Code: "WELCOME10", Kind: CouponPercent, Value: 10}

	result, err := ValidateAndPriceCoupon("welcome10", 2900, time.Now(), lookupFor(welcome))
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", result.Code)
	assert.Equal(t, CouponPercent, result.Kind)
	assert.Equal(t, int64(290), result.DiscountCents)
	assert.Equal(t, int64(2610), ComputeTotal(2900, result.DiscountCents, 0))
}

func TestValidateAndPriceCoupon_FixedWithMinimum(t *testing.T) {
	save5 := &Coupon{
		Code:          "SAVE5",
		Kind:          CouponFixed,
		Value:         500,
		MinOrderCents: int64Ptr(3000),
	}

	_, err := ValidateAndPriceCoupon("SAVE5", 2900, time.Now(), lookupFor(save5))
	var couponErr *CouponError
	require.ErrorAs(t, err, &couponErr)
	assert.Equal(t, RejectBelowMinimum, couponErr.Reason)
	assert.Contains(t, couponErr.Message, "$30.00")

	result, err := ValidateAndPriceCoupon("SAVE5", 3500, time.Now(), lookupFor(save5))
	require.NoError(t, err)
	assert.Equal(t, int64(500), result.DiscountCents)
	assert.Equal(t, int64(3000), ComputeTotal(3500, result.DiscountCents, 0))
}

func TestValidateAndPriceCoupon_EmptyCode(t *testing.T) {
	_, err := ValidateAndPriceCoupon("   ", 2900, time.Now(), lookupFor())
	var couponErr *CouponError
	require.ErrorAs(t, err, &couponErr)
	assert.Equal(t, RejectCodeRequired, couponErr.Reason)
}

func TestValidateAndPriceCoupon_UnknownAndExpiredLookAlike(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	expired := &Coupon{Code: "OLD", Kind: CouponPercent, Value: 10, ExpiresAt: &past}
	lookup := lookupFor(expired)

	_, notFoundErr := ValidateAndPriceCoupon("NOPE", 2900, time.Now(), lookup)
	_, expiredErr := ValidateAndPriceCoupon("OLD", 2900, time.Now(), lookup)

	var nf, ex *CouponError
	require.ErrorAs(t, notFoundErr, &nf)
	require.ErrorAs(t, expiredErr, &ex)

	// Unknown and expired codes must be indistinguishable to the caller.
	assert.Equal(t, RejectInvalidOrExpired, nf.Reason)
	assert.Equal(t, RejectInvalidOrExpired, ex.Reason)
	assert.Equal(t, nf.Message, ex.Message)
}

func TestValidateAndPriceCoupon_NotYetExpired(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	c := &Coupon{Code: "FRESH", Kind: CouponPercent, Value: 15, ExpiresAt: &future}

	result, err := ValidateAndPriceCoupon("FRESH", 10000, time.Now(), lookupFor(c))
	require.NoError(t, err)
	assert.Equal(t, int64(1500), result.DiscountCents)
}

func TestValidateAndPriceCoupon_ExhaustedCoupon(t *testing.T) {
	exhausted := &Coupon{
		Code:      "ONCE",
		Kind:      CouponFixed,
		Value:     1000,
		MaxUses:   intPtr(1),
		UsedCount: 1,
	}

	for _, subtotal := range []int64{0, 500, 2900, 1000000} {
		_, err := ValidateAndPriceCoupon("ONCE", subtotal, time.Now(), lookupFor(exhausted))
		var couponErr *CouponError
		require.ErrorAs(t, err, &couponErr)
		assert.Equal(t, RejectUsageLimitReached, couponErr.Reason)
	}
}

func TestValidateAndPriceCoupon_UsageRemaining(t *testing.T) {
	c := &Coupon{Code: "TEN", Kind: CouponPercent, Value: 10, MaxUses: intPtr(5), UsedCount: 4}

	result, err := ValidateAndPriceCoupon("TEN", 1000, time.Now(), lookupFor(c))
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.DiscountCents)
}

func TestValidateAndPriceCoupon_LookupFailure(t *testing.T) {
	failing := func(code string) (*Coupon, error) {
		return nil, errors.New("connection refused")
	}

	_, err := ValidateAndPriceCoupon("ANY", 2900, time.Now(), failing)
	require.Error(t, err)
	var couponErr *CouponError
	assert.False(t, errors.As(err, &couponErr), "infrastructure failures are not coupon rejections")
}

func TestValidateAndPriceCoupon_Idempotent(t *testing.T) {
	c := &Coupon{Code: "WELCOME10", Kind: CouponPercent, Value: 10}
	lookup := lookupFor(c)

	first, err1 := ValidateAndPriceCoupon("WELCOME10", 2900, time.Now(), lookup)
	second, err2 := ValidateAndPriceCoupon("WELCOME10", 2900, time.Now(), lookup)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, c.UsedCount, "validation must not consume usage")
}

func TestDiscount_PercentBounds(t *testing.T) {
	subtotals := []int64{0, 1, 49, 50, 99, 100, 2900, 999999}
	values := []int64{-5, 0, 1, 10, 33, 50, 99, 100, 250}

	for _, s := range subtotals {
		for _, v := range values {
			d := Discount(&Coupon{Kind: CouponPercent, Value: v}, s)
			assert.GreaterOrEqual(t, d, int64(0), "subtotal=%d value=%d", s, v)
			assert.LessOrEqual(t, d, s, "subtotal=%d value=%d", s, v)
		}
	}
}

func TestDiscount_PercentRoundsHalfUp(t *testing.T) {
	// 10% of $0.05 is half a cent, which rounds up.
	assert.Equal(t, int64(1), Discount(&Coupon{Kind: CouponPercent, Value: 10}, 5))
	// 10% of $0.04 is 0.4 cents, which rounds down.
	assert.Equal(t, int64(0), Discount(&Coupon{Kind: CouponPercent, Value: 10}, 4))
	// 33% of $1.00 is exactly 33 cents.
	assert.Equal(t, int64(33), Discount(&Coupon{Kind: CouponPercent, Value: 33}, 100))
}

func TestDiscount_FixedCappedAtSubtotal(t *testing.T) {
	for _, s := range []int64{0, 1, 499, 500, 501, 999999} {
		d := Discount(&Coupon{Kind: CouponFixed, Value: 500}, s)
		want := int64(500)
		if s < 500 {
			want = s
		}
		assert.Equal(t, want, d, "subtotal=%d", s)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$30.00", FormatCents(3000))
	assert.Equal(t, "$2.90", FormatCents(290))
	assert.Equal(t, "$0.05", FormatCents(5))
}
