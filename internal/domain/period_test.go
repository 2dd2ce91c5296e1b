package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPeriod(t *testing.T) {
	t.Run("PeriodOf usa UTC", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		// 31/01 22h em BRT já é fevereiro em UTC
		p := PeriodOf(time.Date(2024, 1, 31, 22, 0, 0, 0, loc))
		assert.Equal(t, Period{Year: 2024, Month: time.February}, p)
	})

	t.Run("Previous atravessa o ano", func(t *testing.T) {
		p := Period{Year: 2024, Month: time.January}
		assert.Equal(t, Period{Year: 2023, Month: time.December}, p.Previous())
	})

	t.Run("String no formato mm-yyyy", func(t *testing.T) {
		assert.Equal(t, "03-2025", Period{Year: 2025, Month: time.March}.String())
	})

	t.Run("Valid", func(t *testing.T) {
		assert.True(t, Period{Year: 2025, Month: time.March}.Valid())
		assert.False(t, Period{Year: 2025, Month: 13}.Valid())
		assert.False(t, Period{}.Valid())
	})
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   OrderStatus
		wantOK bool
	}{
		{in: "pending", want: OrderStatusPending, wantOK: true},
		{in: " Completed ", want: OrderStatusCompleted, wantOK: true},
		{in: "SHIPPED", want: OrderStatusShipped, wantOK: true},
		{in: "complete", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOrderStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSumItems(t *testing.T) {
	items := []*OrderItem{
		{Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
	}

	assert.True(t, decimal.RequireFromString("20.30").Equal(SumItems(items)))
	assert.True(t, decimal.Zero.Equal(SumItems(nil)))
}
