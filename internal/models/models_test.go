// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount *float64
		want     float64
	}{
		{"no discount", 59.99, nil, 59.99},
		{"lower discount wins", 59.99, floatPtr(39.99), 39.99},
		{"equal discount ignored", 59.99, floatPtr(59.99), 59.99},
		{"higher discount ignored", 59.99, floatPtr(69.99), 59.99},
		{"zero discount ignored", 59.99, floatPtr(0), 59.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Game{Price: tt.price, DiscountPrice: tt.discount}
			assert.Equal(t, tt.want, g.EffectivePrice())
		})
	}
}

func TestCanBeApproved(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		isPaid bool
		want   bool
	}{
		{"pending and paid", OrderStatusPending, true, true},
		{"pending unpaid", OrderStatusPending, false, false},
		{"processing paid", OrderStatusProcessing, true, false},
		{"cancelled paid", OrderStatusCancelled, true, false},
		{"delivered paid", OrderStatusDelivered, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{Status: tt.status, IsPaid: tt.isPaid}
			assert.Equal(t, tt.want, o.CanBeApproved())
		})
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestBlogStatusValid(t *testing.T) {
	for _, s := range []BlogStatus{BlogStatusDraft, BlogStatusPublished, BlogStatusArchived} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, BlogStatus("hidden").Valid())
}

func TestCartRecalculateTotal(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{Quantity: 2, Price: 19.99},
			{Quantity: 1, Price: 59.99},
		},
	}

	cart.RecalculateTotal()
	assert.InDelta(t, 99.97, cart.TotalPrice, 0.001)
}

func TestCartRecalculateTotalEmpty(t *testing.T) {
	cart := Cart{TotalPrice: 42}
	cart.RecalculateTotal()
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestUserPasswordRoundTrip(t *testing.T) {
	var u User
	assert.NoError(t, u.SetPassword("Sup3r!secret"))
	assert.NotEqual(t, "Sup3r!secret", u.PasswordHash)

	assert.NoError(t, u.CheckPassword("Sup3r!secret"))
	assert.Error(t, u.CheckPassword("wrong"))
}

func TestJSONBRoundTrip(t *testing.T) {
	in := JSONB{"city": "Osaka", "zip": "530-0001"}

	val, err := in.Value()
	assert.NoError(t, err)

	var out JSONB
	assert.NoError(t, out.Scan(val))
	assert.Equal(t, "Osaka", out["city"])
}

func TestJSONBNil(t *testing.T) {
	var j JSONB
	val, err := j.Value()
	assert.NoError(t, err)
	assert.Nil(t, val)

	var out JSONB
	assert.NoError(t, out.Scan(nil))
	assert.Nil(t, out)
}
