package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/errs"
	"gorm.io/gorm"
)

// Service assigns guests. Every write locks the reservation row so capacity
// is checked against committed state. Methods taking a db join the caller's
// transaction; a nil db uses the service's own connection.
type Service interface {
	AssignPrincipal(ctx context.Context, db *gorm.DB, reservationID, customerID snowflake.ID) error
	// AddAdditionalGuest reports false when the guest was already assigned.
	AddAdditionalGuest(ctx context.Context, db *gorm.DB, reservationRoomID, customerID snowflake.ID) (bool, error)
	RemoveAdditionalGuest(ctx context.Context, reservationRoomID, customerID snowflake.ID) error
	AssignGuests(ctx context.Context, req AssignRequest) (*Assignment, error)
	GetAssignment(ctx context.Context, db *gorm.DB, reservationRoomID snowflake.ID) (*Assignment, error)
}

type AssignRequest struct {
	ReservationRoomID snowflake.ID   `json:"reservation_room_id"`
	PrincipalID       *snowflake.ID  `json:"principal_id"`
	AdditionalIDs     []snowflake.ID `json:"additional_ids"`
}

var (
	ErrReservationNotFound = errs.NotFound("reservation_not_found", "reservation does not exist")
	ErrRoomLinkNotFound    = errs.NotFound("reservation_room_not_found", "reservation room does not exist")
	ErrRoomNotFound        = errs.NotFound("room_not_found", "room does not exist")
	ErrCustomerNotFound    = errs.Validation("customer_not_found", "guest must be an existing customer")
	ErrGuestIsPrincipal    = errs.Validation("guest_is_principal", "customer is already the principal guest")
	ErrGuestIsAdditional   = errs.Validation("guest_is_additional", "customer is already an additional guest")
	ErrCapacityExceeded    = errs.Validation("capacity_exceeded", "guest count exceeds the room capacity")
	ErrGuestNotAssigned    = errs.NotFound("guest_not_assigned", "customer is not an additional guest of this room")
	ErrReservationReleased = errs.Conflict("reservation_released", "reservation was already released")
)
