// internal/domain/product/entity_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInStock(t *testing.T) {
	assert.True(t, (&Product{Stock: 3, TrackInventory: true}).IsInStock())
	assert.False(t, (&Product{Stock: 0, TrackInventory: true}).IsInStock())
	assert.True(t, (&Product{Stock: 0, TrackInventory: false}).IsInStock())
}

func TestVariationInfo(t *testing.T) {
	p := &Product{
		Price:          2500,
		Stock:          7,
		TrackInventory: true,
		Images: []ProductImage{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg"},
		},
	}

	info := p.VariationInfo()
	assert.Equal(t, int64(2500), info.BasePriceCents)
	assert.Equal(t, 7, info.Stock)
	assert.True(t, info.TrackInventory)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, info.Images)
}

func TestAttributeList(t *testing.T) {
	p := &Product{
		Attributes: []ProductAttribute{
			{Name: "Size", Values: []string{"S", "M", "L"}},
			{Name: "Color", Values: []string{"Red", "Blue"}},
		},
	}

	attrs := p.AttributeList()
	assert.Len(t, attrs, 2)
	assert.Equal(t, "Size", attrs[0].Name)
	assert.Equal(t, []string{"S", "M", "L"}, attrs[0].Values)
	assert.Equal(t, "Color", attrs[1].Name)
}

func TestVariationLabel(t *testing.T) {
	attrs := []ProductAttribute{
		{Name: "Size", Values: []string{"S", "M"}},
		{Name: "Color", Values: []string{"Red", "Blue"}},
	}

	v := &ProductVariation{Attributes: map[string]string{"Color": "Red", "Size": "M"}}
	assert.Equal(t, "Size: M, Color: Red", v.Label(attrs))

	// Values missing from the combination are skipped
	partial := &ProductVariation{Attributes: map[string]string{"Color": "Blue"}}
	assert.Equal(t, "Color: Blue", partial.Label(attrs))

	empty := &ProductVariation{Attributes: map[string]string{}}
	assert.Equal(t, "", empty.Label(attrs))
}

func TestVariationEngineAdapter(t *testing.T) {
	price := int64(2999)
	v := &ProductVariation{
		ID:         11,
		Attributes: map[string]string{"Size": "L"},
		PriceCents: &price,
		Stock:      4,
		SKU:        "TEE-L",
		Images:     []string{"https://cdn.example.com/l.jpg"},
	}

	engine := v.Engine()
	assert.Equal(t, uint(11), engine.ID)
	assert.Equal(t, map[string]string{"Size": "L"}, engine.Attributes)
	assert.Equal(t, &price, engine.PriceCents)
	assert.Equal(t, 4, engine.Stock)
	assert.Equal(t, "TEE-L", engine.SKU)
}
