package migration

import (
	"fmt"

	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	guestdomain "github.com/railzwaylabs/frontdesk/internal/guest/domain"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	releasedomain "github.com/railzwaylabs/frontdesk/internal/release/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	saledomain "github.com/railzwaylabs/frontdesk/internal/sale/domain"
	staydomain "github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&roomdomain.Room{},
		&roomdomain.RateBand{},
		&customerdomain.Customer{},
		&reservationdomain.Reservation{},
		&reservationdomain.ReservationRoom{},
		&guestdomain.AdditionalGuest{},
		&staydomain.Stay{},
		&paymentdomain.Payment{},
		&saledomain.Sale{},
		&releasedomain.RoomReleaseHistory{},
		&auditdomain.AuditLog{},
	}
}

// AutoMigrate builds the schema from the models. Used for sqlite, where the
// postgres migrations do not apply.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
