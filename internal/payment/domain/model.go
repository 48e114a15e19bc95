package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindPayment    Kind = "payment"
	KindSettlement Kind = "settlement"
	KindRefund     Kind = "refund"
)

const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

// Payment is an append-only ledger entry. Amount is signed: positive for
// money received, negative for a refund. Corrections are new entries.
type Payment struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ReservationID snowflake.ID    `json:"reservation_id" gorm:"not null;index"`
	Kind          Kind            `json:"kind" gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Method        string          `json:"method" gorm:"type:varchar(20);not null"`
	Note          string          `json:"note" gorm:"type:text"`
	CreatedBy     string          `json:"created_by" gorm:"type:varchar(64);not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }

// NormalizeMethod lowercases method and reports whether it is accepted at the desk.
func NormalizeMethod(method string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(method))
	switch m {
	case MethodCash, MethodCard, MethodTransfer:
		return m, true
	default:
		return "", false
	}
}
