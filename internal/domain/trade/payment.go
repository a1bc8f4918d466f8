package trade

import (
	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus is a label derived from the paid amount and the payable
// amount. It is never a transition target of its own; every place that
// displays or filters by payment state goes through DerivePaymentStatus.
type PaymentStatus string

const (
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusPartiallyPaid PaymentStatus = "partiallypaid"
	PaymentStatusCredit        PaymentStatus = "credit"
	PaymentStatusUnset         PaymentStatus = ""
)

// PaymentMethodCredit is the payment method that marks an order as taken
// on credit when nothing is paid upfront. Seeded as a default method.
const PaymentMethodCredit = "Credit"

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus computes the payment status label for an order.
//   - paid: paid amount covers the payable amount and something was paid
//   - partiallypaid: something was paid but less than the payable amount
//   - credit: the credit payment method was chosen with zero upfront payment
//   - unset otherwise
func DerivePaymentStatus(paid, payable decimal.Decimal, method string) PaymentStatus {
	switch {
	case paid.IsPositive() && paid.GreaterThanOrEqual(payable):
		return PaymentStatusPaid
	case paid.IsPositive() && paid.LessThan(payable):
		return PaymentStatusPartiallyPaid
	case method == PaymentMethodCredit && paid.IsZero():
		return PaymentStatusCredit
	}
	return PaymentStatusUnset
}

// PaymentOption is a selectable payment method (e.g. Cash, Card, GPay,
// Credit). Seeded on first boot, offered as a lookup to clients.
type PaymentOption struct {
	shared.BaseEntity
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

// TableName overrides the gorm table name
func (PaymentOption) TableName() string {
	return "payment_methods"
}
