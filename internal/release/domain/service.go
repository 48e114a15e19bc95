package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	ledgerdomain "github.com/railzwaylabs/frontdesk/internal/ledger/domain"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	staydomain "github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"gorm.io/gorm"
)

type Request struct {
	RoomID        snowflake.ID `json:"room_id"`
	Date          time.Time    `json:"date"`
	PaymentMethod string       `json:"payment_method"`
}

// Result of a release. Released is false when the room had no open stay;
// that is not an error. History is nil when the snapshot could not be written.
type Result struct {
	Released    bool                           `json:"released"`
	Message     string                         `json:"message,omitempty"`
	Reservation *reservationdomain.Reservation `json:"reservation,omitempty"`
	Stay        *staydomain.Stay               `json:"stay,omitempty"`
	Settlement  *paymentdomain.Payment         `json:"settlement,omitempty"`
	Ledger      *ledgerdomain.Ledger           `json:"ledger,omitempty"`
	History     *RoomReleaseHistory            `json:"history,omitempty"`
}

type HistoryFilter struct {
	RoomID *snowflake.ID
	From   time.Time
	To     time.Time
}

type Service interface {
	Release(ctx context.Context, req Request) (*Result, error)
	ListHistory(ctx context.Context, filter HistoryFilter) ([]RoomReleaseHistory, error)
	ExportHistory(ctx context.Context, filter HistoryFilter, format auditdomain.ExportFormat) (*auditdomain.ExportResult, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, h *RoomReleaseHistory) error
	List(ctx context.Context, db *gorm.DB, filter HistoryFilter) ([]RoomReleaseHistory, error)
}

const MessageNothingToRelease = "room has no open stay"

var (
	ErrRoomNotFound          = errs.NotFound("room_not_found", "room does not exist")
	ErrHistoricDate          = errs.Validation("historic_date", "release date cannot be in the past")
	ErrPaymentMethodRequired = errs.Validation("payment_method_required", "a payment method is required to settle the outstanding balance")
	ErrReservationNotFound   = errs.NotFound("reservation_not_found", "reservation does not exist")
	ErrBalanceNotSettled     = errs.Integrity("balance_not_settled", "balance is not zero after settlement")
)
