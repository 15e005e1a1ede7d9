// internal/domain/product/service_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	s := &Service{}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Velvet Tee", "velvet-tee"},
		{"punctuation", "Mid-Century  Lamp!", "mid-century-lamp"},
		{"leading and trailing junk", "  --Ceramic Mug--  ", "ceramic-mug"},
		{"digits preserved", "Tumbler 20oz", "tumbler-20oz"},
		{"already clean", "socks", "socks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.generateSlug(tt.in))
		})
	}
}

func TestBuildOrderClause(t *testing.T) {
	s := &Service{}

	assert.Equal(t, "created_at desc", s.buildOrderClause("", ""))
	assert.Equal(t, "price asc", s.buildOrderClause("price", "asc"))
	assert.Equal(t, "price desc", s.buildOrderClause("price", "desc"))
	assert.Equal(t, "name asc", s.buildOrderClause("name", "asc"))

	// Unknown fields and directions fall back to the default ordering
	assert.Equal(t, "created_at desc", s.buildOrderClause("sku; DROP TABLE products", "asc; --"))
}
