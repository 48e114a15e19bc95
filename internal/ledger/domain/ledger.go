// Package domain computes a reservation's financial position from its
// contractual total, its payment entries and its consumption charges.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tolerance absorbs rounding in every money comparison.
var Tolerance = decimal.RequireFromString("0.01")

type SaleLine struct {
	Total  decimal.Decimal
	IsPaid bool
}

// Ledger is the position of one reservation.
//
//	Balance = (Total - Paid) + Refunded + SalesDebt
//
// Positive Balance is owed by the guest, negative is credit owed to the guest.
// Overpaid is Paid - Total and only matters as a refund ceiling once the stay
// is closed. Refundable is the credit still available after earlier refunds.
type Ledger struct {
	Total      decimal.Decimal `json:"total"`
	Paid       decimal.Decimal `json:"paid"`
	Refunded   decimal.Decimal `json:"refunded"`
	SalesDebt  decimal.Decimal `json:"sales_debt"`
	Balance    decimal.Decimal `json:"balance"`
	Overpaid   decimal.Decimal `json:"overpaid"`
	Refundable decimal.Decimal `json:"refundable"`
}

func Compute(total decimal.Decimal, payments []decimal.Decimal, sales []SaleLine) Ledger {
	paid := decimal.Zero
	refunded := decimal.Zero
	for _, amount := range payments {
		switch amount.Sign() {
		case 1:
			paid = paid.Add(amount)
		case -1:
			refunded = refunded.Add(amount.Abs())
		}
	}

	salesDebt := decimal.Zero
	for _, s := range sales {
		if !s.IsPaid {
			salesDebt = salesDebt.Add(s.Total)
		}
	}

	balance := total.Sub(paid).Add(refunded).Add(salesDebt)
	refundable := decimal.Zero
	if balance.IsNegative() {
		refundable = balance.Neg()
	}

	return Ledger{
		Total:      total,
		Paid:       paid,
		Refunded:   refunded,
		SalesDebt:  salesDebt,
		Balance:    balance,
		Overpaid:   paid.Sub(total),
		Refundable: refundable,
	}
}

// IsSettled reports whether the balance is zero within Tolerance.
func (l Ledger) IsSettled() bool {
	return l.Balance.Abs().LessThanOrEqual(Tolerance)
}

// Owes reports whether the guest still owes more than Tolerance.
func (l Ledger) Owes() bool {
	return l.Balance.GreaterThan(Tolerance)
}

type Service interface {
	GetLedger(ctx context.Context, reservationID snowflake.ID) (*Ledger, error)
	// LedgerFor computes from rows visible to db, so callers inside a
	// transaction see their own uncommitted entries.
	LedgerFor(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (Ledger, error)
	// Sync recomputes and stores the reservation's cached balance and
	// payment status.
	Sync(ctx context.Context, db *gorm.DB, reservationID snowflake.ID) (Ledger, error)
}
