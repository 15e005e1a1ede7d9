// internal/pricing/pricing.go
package pricing

import (
	"fmt"
	"strings"
	"time"
)

// Line represents one cart line with its resolved unit price.
// Unit prices arrive already resolved (variation override or product base
// price) in integer cents; the engine never sees floating-point money.
type Line struct {
	ProductID      uint  `json:"product_id"`
	VariationID    *uint `json:"variation_id,omitempty"`
	UnitPriceCents int64 `json:"unit_price_cents"`
	Quantity       int   `json:"quantity"`
}

// ShippingMethod describes a shipping option's fee tier.
type ShippingMethod struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	BaseCents     int64  `json:"base_cents"`
	FreeOverCents *int64 `json:"free_over_cents,omitempty"`
}

// CouponKind represents the discount type of a coupon
type CouponKind string

const (
	CouponPercent CouponKind = "PERCENT"
	CouponFixed   CouponKind = "FIXED"
)

// Coupon is the read-side coupon data the engine prices against.
// Lookups are supplied by the caller; the engine performs no I/O.
type Coupon struct {
	Code          string     `json:"code"`
	Kind          CouponKind `json:"kind"`
	Value         int64      `json:"value"` // PERCENT: 0-100, FIXED: cents
	MinOrderCents *int64     `json:"min_order_cents,omitempty"`
	MaxUses       *int       `json:"max_uses,omitempty"`
	UsedCount     int        `json:"used_count"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// RejectReason identifies why a coupon was rejected
type RejectReason string

const (
	RejectCodeRequired      RejectReason = "CODE_REQUIRED"
	RejectInvalidOrExpired  RejectReason = "INVALID_OR_EXPIRED"
	RejectUsageLimitReached RejectReason = "USAGE_LIMIT_REACHED"
	RejectBelowMinimum      RejectReason = "BELOW_MINIMUM"
)

// CouponError is a typed business-rule rejection. It is returned for
// every expected validation failure; callers map it to user messaging
// and HTTP status.
type CouponError struct {
	Reason  RejectReason `json:"reason"`
	Message string       `json:"message"`
}

func (e *CouponError) Error() string {
	return e.Message
}

// CouponResult represents a successfully priced coupon
type CouponResult struct {
	Code          string     `json:"code"`
	Kind          CouponKind `json:"kind"`
	Value         int64      `json:"value"`
	DiscountCents int64      `json:"discount_cents"`
}

// LookupFunc returns the coupon stored under a normalized code, or nil
// when no such code exists. Errors are infrastructure failures, not
// validation outcomes.
type LookupFunc func(code string) (*Coupon, error)

// NormalizeCode trims and upper-cases a coupon code. Codes are stored
// upper-case, so lookups are effectively case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ComputeSubtotal sums unit price times quantity over all lines.
func ComputeSubtotal(lines []Line) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}
	return subtotal
}

// ResolveShipping returns the shipping fee for a subtotal. The free
// threshold is compared against the pre-discount subtotal.
func ResolveShipping(subtotalCents int64, method ShippingMethod) int64 {
	if method.FreeOverCents != nil && subtotalCents >= *method.FreeOverCents {
		return 0
	}
	return method.BaseCents
}

// ValidateAndPriceCoupon runs the coupon decision procedure: normalize,
// look up, check expiry, usage limit and minimum order, then compute the
// discount. Checks short-circuit in that order; the first failure wins.
// A nil error means the returned result is valid. Validation never
// mutates state; usage is consumed separately at order submission.
//
// Unknown and expired codes produce the same rejection so callers cannot
// distinguish a code that never existed from one that lapsed.
func ValidateAndPriceCoupon(code string, subtotalCents int64, now time.Time, lookup LookupFunc) (*CouponResult, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, &CouponError{Reason: RejectCodeRequired, Message: "Code is required"}
	}

	coupon, err := lookup(normalized)
	if err != nil {
		return nil, fmt.Errorf("coupon lookup failed: %w", err)
	}
	if coupon == nil {
		return nil, &CouponError{Reason: RejectInvalidOrExpired, Message: "Invalid or expired code"}
	}

	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return nil, &CouponError{Reason: RejectInvalidOrExpired, Message: "Invalid or expired code"}
	}

	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, &CouponError{Reason: RejectUsageLimitReached, Message: "This code has reached its usage limit"}
	}

	if coupon.MinOrderCents != nil && subtotalCents < *coupon.MinOrderCents {
		return nil, &CouponError{
			Reason:  RejectBelowMinimum,
			Message: fmt.Sprintf("Minimum order for this code is %s", FormatCents(*coupon.MinOrderCents)),
		}
	}

	return &CouponResult{
		Code:          coupon.Code,
		Kind:          coupon.Kind,
		Value:         coupon.Value,
		DiscountCents: Discount(coupon, subtotalCents),
	}, nil
}

// Discount computes the raw discount for a coupon against a subtotal.
// PERCENT rounds half-up to the nearest cent in integer arithmetic;
// FIXED is capped at the subtotal so the discounted amount never goes
// negative.
func Discount(coupon *Coupon, subtotalCents int64) int64 {
	switch coupon.Kind {
	case CouponPercent:
		pct := coupon.Value
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return (subtotalCents*pct + 50) / 100
	case CouponFixed:
		if coupon.Value > subtotalCents {
			return subtotalCents
		}
		if coupon.Value < 0 {
			return 0
		}
		return coupon.Value
	default:
		return 0
	}
}

// ComputeTotal combines subtotal, discount and shipping. The discounted
// subtotal floors at zero before shipping is added.
func ComputeTotal(subtotalCents, discountCents, shippingCents int64) int64 {
	discounted := subtotalCents - discountCents
	if discounted < 0 {
		discounted = 0
	}
	return discounted + shippingCents
}

// FormatCents renders integer cents as a dollar string for user-facing
// messages. Presentation only; money stays in cents everywhere else.
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
