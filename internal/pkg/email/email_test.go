// internal/pkg/email/email_test.go
package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvety/storefront/internal/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Name = "Velvety Storefront"
	// Email.Host left empty so delivery is a no-op

	s, err := NewService(cfg)
	require.NoError(t, err)
	return s
}

func TestRenderOrderConfirmation(t *testing.T) {
	s := newTestService(t)

	body, err := s.render("order_confirmation", OrderConfirmationData{
		OrderNumber: "ORD-20260829-00042",
		FirstName:   "Ava",
		Items: []OrderLine{
			{Name: "Velvet Tee", VariationLabel: "Size: M, Color: Red", Quantity: 2, TotalFormatted: "$59.98"},
			{Name: "Ceramic Mug", Quantity: 1, TotalFormatted: "$14.50"},
		},
		SubtotalFormatted: "$74.48",
		DiscountFormatted: "$7.45",
		ShippingFormatted: "$0.00",
		TotalFormatted:    "$67.03",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Thanks for your order, Ava!")
	assert.Contains(t, body, "ORD-20260829-00042")
	assert.Contains(t, body, "Velvet Tee (Size: M, Color: Red)")
	assert.Contains(t, body, "Ceramic Mug")
	assert.NotContains(t, body, "Ceramic Mug (")
	assert.Contains(t, body, "Discount: -$7.45")
	assert.Contains(t, body, "Total: $67.03")
}

func TestRenderOrderConfirmationOmitsZeroDiscount(t *testing.T) {
	s := newTestService(t)

	body, err := s.render("order_confirmation", OrderConfirmationData{
		OrderNumber:       "ORD-20260829-00001",
		FirstName:         "Ben",
		SubtotalFormatted: "$20.00",
		DiscountFormatted: "$0.00",
		ShippingFormatted: "$9.99",
		TotalFormatted:    "$29.99",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "Discount")
}

func TestRenderWelcome(t *testing.T) {
	s := newTestService(t)

	body, err := s.render("welcome", WelcomeData{FirstName: "Ava", StoreName: "Velvety Storefront"})
	require.NoError(t, err)
	assert.Contains(t, body, "Welcome to Velvety Storefront, Ava!")
}

func TestSendIsNoOpWithoutHost(t *testing.T) {
	s := newTestService(t)

	err := s.SendWelcome("shopper@example.com", "Ava")
	assert.NoError(t, err)
}
