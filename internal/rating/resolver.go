// Package rating resolves the nightly price of a room for a guest count.
package rating

import (
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/shopspring/decimal"
)

// ResolveNightlyRate scans the room's bands in configured order and returns the
// first positive price whose [min, max] contains guests. Bands with
// non-positive bounds are misconfigured and skipped. Without a match the base
// price applies. Zero means no price is available; callers must reject.
func ResolveNightlyRate(room roomdomain.Room, guests int) decimal.Decimal {
	if guests <= 0 {
		return decimal.Zero
	}

	for _, band := range room.RateBands {
		if band.MinGuests <= 0 || band.MaxGuests <= 0 {
			continue
		}
		if guests < band.MinGuests || guests > band.MaxGuests {
			continue
		}
		if band.PricePerNight.IsPositive() {
			return band.PricePerNight
		}
		break
	}

	if room.BasePrice.IsPositive() {
		return room.BasePrice
	}
	return decimal.Zero
}

// StayTotal prices nights at the resolved rate. ok is false when no price is
// available for the guest count.
func StayTotal(room roomdomain.Room, guests, nights int) (total, perNight decimal.Decimal, ok bool) {
	perNight = ResolveNightlyRate(room, guests)
	if !perNight.IsPositive() || nights <= 0 {
		return decimal.Zero, perNight, false
	}
	return perNight.Mul(decimal.NewFromInt(int64(nights))).Round(2), perNight, true
}
