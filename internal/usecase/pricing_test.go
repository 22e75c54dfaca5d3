package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	rates := DefaultPricingRates()

	tests := []struct {
		name         string
		unitPrice    float64
		count        int
		member       bool
		wantSubtotal float64
		wantDiscount float64
		wantTotal    float64
		wantDeposit  float64
	}{
		{
			name:         "single non-member",
			unitPrice:    100.00,
			count:        1,
			member:       false,
			wantSubtotal: 100.00,
			wantDiscount: 0.00,
			wantTotal:    100.00,
			wantDeposit:  30.00,
		},
		{
			name:         "two participants with member discount",
			unitPrice:    100.00,
			count:        2,
			member:       true,
			wantSubtotal: 200.00,
			wantDiscount: 20.00,
			wantTotal:    180.00,
			wantDeposit:  54.00,
		},
		{
			name:         "per-step rounding on awkward unit price",
			unitPrice:    33.33,
			count:        3,
			member:       true,
			wantSubtotal: 99.99,
			// 99.99 * 0.10 = 9.999 rounds half-up to 10.00
			wantDiscount: 10.00,
			wantTotal:    89.99,
			// 89.99 * 0.30 = 26.997 rounds half-up to 27.00
			wantDeposit: 27.00,
		},
		{
			name:         "half-up at exactly .005",
			unitPrice:    66.75,
			count:        1,
			member:       true,
			wantSubtotal: 66.75,
			// 66.75 * 0.10 = 6.675 rounds half-up to 6.68
			wantDiscount: 6.68,
			wantTotal:    60.07,
			// 60.07 * 0.30 = 18.021 rounds to 18.02
			wantDeposit: 18.02,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Price(tt.unitPrice, tt.count, tt.member, rates)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSubtotal, quote.Subtotal)
			assert.Equal(t, tt.wantDiscount, quote.Discount)
			assert.Equal(t, tt.wantTotal, quote.Total)
			assert.Equal(t, tt.wantDeposit, quote.Deposit)
		})
	}
}

func TestPriceParticipantBounds(t *testing.T) {
	rates := DefaultPricingRates()

	for _, count := range []int{0, -1, 4, 10} {
		_, err := Price(100.00, count, false, rates)
		assert.ErrorIs(t, err, ErrParticipantCount, "count %d must be rejected", count)
	}
}

func TestPriceCustomRates(t *testing.T) {
	rates := PricingRates{DepositBP: 5000, MemberDiscountBP: 2500}

	quote, err := Price(80.00, 1, true, rates)
	require.NoError(t, err)

	assert.Equal(t, 80.00, quote.Subtotal)
	assert.Equal(t, 20.00, quote.Discount)
	assert.Equal(t, 60.00, quote.Total)
	assert.Equal(t, 30.00, quote.Deposit)
}

func TestDepositMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5400), DepositMinorUnits(54.00))
	assert.Equal(t, int64(1802), DepositMinorUnits(18.02))
	assert.Equal(t, int64(0), DepositMinorUnits(0))
}
