// internal/domain/user/entity_test.go
package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeCreateLowercasesEmail(t *testing.T) {
	u := &User{Email: "Shopper@Example.COM"}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "shopper@example.com", u.Email)
}

func TestGetFullName(t *testing.T) {
	assert.Equal(t, "Ava Stone", (&User{FirstName: "Ava", LastName: "Stone"}).GetFullName())
	assert.Equal(t, "Ava", (&User{FirstName: "Ava"}).GetFullName())
	assert.Equal(t, "", (&User{}).GetFullName())
}

func TestGetDisplayName(t *testing.T) {
	named := &User{FirstName: "Ava", LastName: "Stone", Email: "ava@example.com"}
	assert.Equal(t, "Ava Stone", named.GetDisplayName())

	anonymous := &User{Email: "ava@example.com"}
	assert.Equal(t, "ava@example.com", anonymous.GetDisplayName())
}
