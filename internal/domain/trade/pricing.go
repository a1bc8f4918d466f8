package trade

import "github.com/shopspring/decimal"

// DiscountType represents how an order discount value is interpreted
type DiscountType string

const (
	DiscountTypeFlat       DiscountType = "flat"
	DiscountTypePercentage DiscountType = "percentage"
)

// IsValid checks if the discount type is a known DiscountType
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountTypeFlat, DiscountTypePercentage:
		return true
	}
	return false
}

// String returns the string representation of DiscountType
func (d DiscountType) String() string {
	return string(d)
}

var oneHundred = decimal.NewFromInt(100)

// Totals holds the monetary amounts computed for an order.
// All amounts are non-negative.
type Totals struct {
	TotalPrice      decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalPayable    decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
}

// clampDiscountValue returns the discount value as stored: never negative.
func clampDiscountValue(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// ComputeTotals computes order totals from the cart and discount configuration.
// It is pure and never fails: negative intermediate values are clamped to zero
// and percentage discounts above 100 are clamped before multiplication.
// An empty cart yields all-zero totals.
func ComputeTotals(items []OrderItem, discountType DiscountType, discountValue, paid decimal.Decimal) Totals {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	if discountValue.IsNegative() {
		discountValue = decimal.Zero
	}
	if paid.IsNegative() {
		paid = decimal.Zero
	}

	var discount decimal.Decimal
	if discountType == DiscountTypePercentage {
		pct := decimal.Min(discountValue, oneHundred)
		discount = total.Mul(pct).Div(oneHundred)
	} else {
		discount = discountValue
	}

	payable := total.Sub(discount)
	if payable.IsNegative() {
		payable = decimal.Zero
	}

	remaining := payable.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Totals{
		TotalPrice:      total,
		DiscountAmount:  discount,
		TotalPayable:    payable,
		PaidAmount:      paid,
		RemainingAmount: remaining,
	}
}
