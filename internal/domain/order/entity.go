// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status represents the order lifecycle state
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusCancelled Status = "CANCELLED"
)

// allowedTransitions maps each status to the states an admin may move
// it to. Terminal states have no outgoing transitions.
var allowedTransitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {},
}

// Order represents a placed order. All money amounts are snapshots
// taken at submission time; later catalog or coupon edits never change
// a placed order.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      *uint  `gorm:"index" json:"user_id"` // Nullable for guest orders
	Email       string `gorm:"not null;size:255" json:"email"`
	Status      Status `gorm:"not null;default:'PENDING'" json:"status"`

	// Financial snapshot, in cents
	SubtotalCents int64 `gorm:"not null" json:"subtotal_cents"`
	DiscountCents int64 `gorm:"default:0" json:"discount_cents"`
	ShippingCents int64 `gorm:"default:0" json:"shipping_cents"`
	TotalCents    int64 `gorm:"not null" json:"total_cents"`

	// Coupon applied at submission, if any
	CouponCode string `gorm:"size:50" json:"coupon_code,omitempty"`

	// Shipping
	ShippingMethod  string  `gorm:"not null;size:50" json:"shipping_method"`
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory []StatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem represents one line of an order with the product details
// snapshotted at submission time.
type OrderItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        uint      `gorm:"not null;index" json:"order_id"`
	ProductID      uint      `gorm:"not null;index" json:"product_id"`
	VariationID    *uint     `gorm:"index" json:"variation_id"`
	SKU            string    `gorm:"size:100" json:"sku"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	VariationLabel string    `gorm:"size:255" json:"variation_label,omitempty"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	TotalCents     int64     `gorm:"not null" json:"total_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StatusHistory tracks order status changes
type StatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Status    Status    `gorm:"not null" json:"status"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Address represents a shipping address (embedded in Order)
type Address struct {
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`
	Country      string `gorm:"size:2" json:"country"`
	Phone        string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string         { return "orders" }
func (OrderItem) TableName() string     { return "order_items" }
func (StatusHistory) TableName() string { return "order_status_history" }

// Business methods

// GenerateOrderNumber formats a unique order number from the ID
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// GetFormattedTotal returns total amount as float
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalCents) / 100
}

// CanTransitionTo reports whether an admin may move the order to next
func (o *Order) CanTransitionTo(next Status) bool {
	for _, s := range allowedTransitions[o.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (o *Order) IsTerminal() bool {
	return len(allowedTransitions[o.Status]) == 0
}
