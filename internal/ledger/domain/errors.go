package domain

import "github.com/railzwaylabs/frontdesk/internal/errs"

var ErrReservationNotFound = errs.NotFound("reservation_not_found", "reservation does not exist")
