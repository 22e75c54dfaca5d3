package usecase

import (
	"github.com/shopspring/decimal"
)

// PricingRates are basis points; defaults reproduce the spa's standing rates
// (30% deposit, 10% UiTM member discount).
type PricingRates struct {
	DepositBP        int
	MemberDiscountBP int
}

func DefaultPricingRates() PricingRates {
	return PricingRates{DepositBP: 3000, MemberDiscountBP: 1000}
}

// Quote is the money breakdown for a draft or booking. All values are
// half-up rounded to 2 decimal places at each step.
type Quote struct {
	Subtotal float64
	Discount float64
	Total    float64
	Deposit  float64
}

// Price computes the quote for a unit price and participant count. It is a
// pure function with no persistence: callers recompute it after every draft
// mutation instead of trusting a client-submitted total.
//
// Rounding happens at every named step, not once at the end; intermediate
// rounding changes totals by cents and the receipts must reproduce the
// bookkeeping exactly:
//
//	subtotal = round(unitPrice * count, 2)
//	discount = member ? round(subtotal * memberRate, 2) : 0
//	total    = round(subtotal - discount, 2)
//	deposit  = round(total * depositRate, 2)
func Price(unitPrice float64, participantCount int, uitmMember bool, rates PricingRates) (Quote, error) {
	if participantCount < 1 || participantCount > 3 {
		return Quote{}, ErrParticipantCount
	}

	unit := decimal.NewFromFloat(unitPrice)
	count := decimal.NewFromInt(int64(participantCount))

	subtotal := unit.Mul(count).Round(2)

	discount := decimal.Zero
	if uitmMember {
		memberRate := decimal.NewFromInt(int64(rates.MemberDiscountBP)).Div(decimal.NewFromInt(10000))
		discount = subtotal.Mul(memberRate).Round(2)
	}

	total := subtotal.Sub(discount).Round(2)

	depositRate := decimal.NewFromInt(int64(rates.DepositBP)).Div(decimal.NewFromInt(10000))
	deposit := total.Mul(depositRate).Round(2)

	return Quote{
		Subtotal: subtotal.InexactFloat64(),
		Discount: discount.InexactFloat64(),
		Total:    total.InexactFloat64(),
		Deposit:  deposit.InexactFloat64(),
	}, nil
}

// DepositMinorUnits converts a 2dp deposit to the minor currency units the
// card-checkout provider expects.
func DepositMinorUnits(deposit float64) int64 {
	return decimal.NewFromFloat(deposit).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
