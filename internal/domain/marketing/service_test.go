// internal/domain/marketing/service_test.go
package marketing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "shopper@example.com", NormalizeEmail("  Shopper@Example.COM "))
	assert.Equal(t, "a@b.co", NormalizeEmail("a@b.co"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
