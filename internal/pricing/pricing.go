// Package pricing implements the bidirectional discount/price arithmetic
// used by separata items. Final prices are whole currency units, always a
// multiple of 50; discounts are decimal percentages.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	fifty   = decimal.NewFromInt(50)
	hundred = decimal.NewFromInt(100)
)

// PriceFromDiscount computes the final price for a regular price and a
// discount percentage, rounding down to the nearest multiple of 50.
func PriceFromDiscount(regularPrice int64, discountPercent decimal.Decimal) int64 {
	discounted := decimal.NewFromInt(regularPrice).
		Mul(hundred.Sub(discountPercent)).
		Div(hundred)
	return discounted.Div(fifty).Floor().Mul(fifty).IntPart()
}

// DiscountFromPrice computes the discount percentage implied by a final
// price. The result is not rounded; two-decimal rounding is presentation
// only. A non-positive regular price yields zero.
func DiscountFromPrice(regularPrice, finalPrice int64) decimal.Decimal {
	if regularPrice <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(regularPrice - finalPrice).
		Mul(hundred).
		Div(decimal.NewFromInt(regularPrice))
}

// Field names the price field an operator edited last
type Field string

const (
	FieldRegularPrice    Field = "regular_price"
	FieldDiscountPercent Field = "discount_percent"
	FieldFinalPrice      Field = "final_price"
)

// Quote is the editable price state of one item. After changing any field,
// call Recompute with the field that changed; the raw value of that field
// is authoritative and the counterpart is derived from it.
type Quote struct {
	RegularPrice    int64
	DiscountPercent *decimal.Decimal
	FinalPrice      int64
}

// Recompute rederives the dependent price field.
//
// Editing the discount derives the final price. Editing the final price
// derives the discount. Editing the regular price keeps the discount and
// rederives the final price from it (discount is sticky relative to the
// regular price); with no discount stored, the final price is kept and the
// regular price change stands on its own.
func (q *Quote) Recompute(lastEdited Field) {
	switch lastEdited {
	case FieldDiscountPercent:
		if q.DiscountPercent != nil {
			q.FinalPrice = PriceFromDiscount(q.RegularPrice, *q.DiscountPercent)
		}
	case FieldFinalPrice:
		d := DiscountFromPrice(q.RegularPrice, q.FinalPrice)
		q.DiscountPercent = &d
	case FieldRegularPrice:
		if q.DiscountPercent != nil {
			q.FinalPrice = PriceFromDiscount(q.RegularPrice, *q.DiscountPercent)
		}
	}
}
