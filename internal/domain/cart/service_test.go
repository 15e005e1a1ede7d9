// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velvety/storefront/internal/domain/product"
)

func uintPtr(v uint) *uint { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestSameLine(t *testing.T) {
	base := SessionItem{ProductID: 5, Quantity: 1}
	withVar := SessionItem{ProductID: 5, VariationID: uintPtr(9), Quantity: 1}

	assert.True(t, sameLine(base, 5, nil))
	assert.False(t, sameLine(base, 6, nil))

	// The same product with and without a variation are separate lines
	assert.False(t, sameLine(base, 5, uintPtr(9)))
	assert.False(t, sameLine(withVar, 5, nil))

	assert.True(t, sameLine(withVar, 5, uintPtr(9)))
	assert.False(t, sameLine(withVar, 5, uintPtr(10)))
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cart:session:abc-123", cartKey("abc-123"))
}

func testLineProduct() *product.Product {
	return &product.Product{
		ID:             5,
		Name:           "Velvet Tee",
		Slug:           "velvet-tee",
		Price:          2499,
		Stock:          10,
		TrackInventory: true,
		Images: []product.ProductImage{
			{URL: "tee-front.jpg"},
			{URL: "tee-back.jpg"},
		},
		Attributes: []product.ProductAttribute{
			{Name: "Size", Values: []string{"S", "M"}},
			{Name: "Color", Values: []string{"Red", "Blue"}},
		},
		Variations: []product.ProductVariation{
			{
				ID:         9,
				Attributes: map[string]string{"Size": "M", "Color": "Red"},
				PriceCents: int64Ptr(2999),
				Stock:      3,
				Images:     []string{"tee-red-m.jpg"},
			},
			{
				ID:         10,
				Attributes: map[string]string{"Size": "S", "Color": "Blue"},
				Stock:      2,
			},
			{
				ID:         11,
				Attributes: map[string]string{"Size": "S", "Color": "Red"},
				PriceCents: int64Ptr(0),
				Stock:      1,
			},
		},
	}
}

func TestBuildLine(t *testing.T) {
	tests := []struct {
		name          string
		item          SessionItem
		wantUnitPrice int64
		wantLineTotal int64
		wantLabel     string
		wantImages    []string
		wantInStock   bool
	}{
		{
			name:          "variation price and images override",
			item:          SessionItem{ProductID: 5, VariationID: uintPtr(9), Quantity: 2},
			wantUnitPrice: 2999,
			wantLineTotal: 5998,
			wantLabel:     "Size: M, Color: Red",
			wantImages:    []string{"tee-red-m.jpg"},
			wantInStock:   true,
		},
		{
			name:          "variation inherits base price and images",
			item:          SessionItem{ProductID: 5, VariationID: uintPtr(10), Quantity: 1},
			wantUnitPrice: 2499,
			wantLineTotal: 2499,
			wantLabel:     "Size: S, Color: Blue",
			wantImages:    []string{"tee-front.jpg", "tee-back.jpg"},
			wantInStock:   true,
		},
		{
			name:          "zero price override is a real price",
			item:          SessionItem{ProductID: 5, VariationID: uintPtr(11), Quantity: 1},
			wantUnitPrice: 0,
			wantLineTotal: 0,
			wantLabel:     "Size: S, Color: Red",
			wantImages:    []string{"tee-front.jpg", "tee-back.jpg"},
			wantInStock:   true,
		},
		{
			name:          "quantity above variation stock flags out of stock",
			item:          SessionItem{ProductID: 5, VariationID: uintPtr(9), Quantity: 4},
			wantUnitPrice: 2999,
			wantLineTotal: 11996,
			wantLabel:     "Size: M, Color: Red",
			wantImages:    []string{"tee-red-m.jpg"},
			wantInStock:   false,
		},
		{
			name:          "plain product line",
			item:          SessionItem{ProductID: 5, Quantity: 10},
			wantUnitPrice: 2499,
			wantLineTotal: 24990,
			wantImages:    []string{"tee-front.jpg", "tee-back.jpg"},
			wantInStock:   true,
		},
		{
			name:          "quantity above product stock flags out of stock",
			item:          SessionItem{ProductID: 5, Quantity: 11},
			wantUnitPrice: 2499,
			wantLineTotal: 27489,
			wantImages:    []string{"tee-front.jpg", "tee-back.jpg"},
			wantInStock:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := buildLine(testLineProduct(), tt.item)
			require.NoError(t, err)

			assert.Equal(t, tt.item.ProductID, line.ProductID)
			assert.Equal(t, tt.item.VariationID, line.VariationID)
			assert.Equal(t, "Velvet Tee", line.Name)
			assert.Equal(t, "velvet-tee", line.Slug)
			assert.Equal(t, tt.item.Quantity, line.Quantity)
			assert.Equal(t, tt.wantUnitPrice, line.UnitPriceCents)
			assert.Equal(t, tt.wantLineTotal, line.LineTotalCents)
			assert.Equal(t, tt.wantLabel, line.VariationLabel)
			assert.Equal(t, tt.wantImages, line.Images)
			assert.Equal(t, tt.wantInStock, line.InStock)
		})
	}
}

func TestBuildLineUntrackedInventory(t *testing.T) {
	prod := testLineProduct()
	prod.TrackInventory = false
	prod.Stock = 0

	line, err := buildLine(prod, SessionItem{ProductID: 5, Quantity: 500})
	require.NoError(t, err)
	assert.True(t, line.InStock)
}

func TestBuildLineUnknownVariation(t *testing.T) {
	_, err := buildLine(testLineProduct(), SessionItem{ProductID: 5, VariationID: uintPtr(99), Quantity: 1})
	assert.Error(t, err)
}
