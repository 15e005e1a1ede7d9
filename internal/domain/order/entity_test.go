// internal/domain/order/entity_test.go
package order

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusPending, false},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_to_%s", tt.from, tt.to), func(t *testing.T) {
			o := &Order{Status: tt.from}
			assert.Equal(t, tt.want, o.CanTransitionTo(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&Order{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Order{Status: StatusPaid}).IsTerminal())
	assert.True(t, (&Order{Status: StatusShipped}).IsTerminal())
	assert.True(t, (&Order{Status: StatusCancelled}).IsTerminal())
}

func TestGenerateOrderNumber(t *testing.T) {
	o := &Order{ID: 42}
	want := fmt.Sprintf("ORD-%s-00042", time.Now().Format("20060102"))
	assert.Equal(t, want, o.GenerateOrderNumber())
}

func TestGetFormattedTotal(t *testing.T) {
	o := &Order{TotalCents: 4897}
	assert.Equal(t, 48.97, o.GetFormattedTotal())
}
