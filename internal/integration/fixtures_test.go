package integration

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	quickrentdomain "github.com/railzwaylabs/frontdesk/internal/quickrent/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport"
	"github.com/railzwaylabs/frontdesk/internal/testsupport/harness"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func moneyPtr(v int64) *decimal.Decimal {
	d := money(v)
	return &d
}

// at returns a context whose clock reads the given March 2026 day and hour.
func at(day, hour int) context.Context {
	return clock.WithAsOf(context.Background(), time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC))
}

func march(day int) time.Time {
	return testsupport.Date(2026, time.March, day)
}

var roomSeq atomic.Int64

func newRoom(t *testing.T, app *harness.App, capacity int, base int64, bands ...roomdomain.RateBandInput) *roomdomain.Room {
	t.Helper()
	room, err := app.Rooms.Create(context.Background(), roomdomain.CreateRequest{
		Code:        fmt.Sprintf("R-%d", roomSeq.Add(1)),
		Name:        "Test room",
		Beds:        capacity,
		MaxCapacity: capacity,
		BasePrice:   money(base),
		RateBands:   bands,
	})
	require.NoError(t, err)
	return room
}

func newCustomer(t *testing.T, app *harness.App, name string) snowflake.ID {
	t.Helper()
	c, err := app.Customers.Create(context.Background(), customerdomain.CreateRequest{FullName: name})
	require.NoError(t, err)
	return c.ID
}

func ids(t *testing.T, app *harness.App, n int) []snowflake.ID {
	t.Helper()
	out := make([]snowflake.ID, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, newCustomer(t, app, fmt.Sprintf("Guest %d", i+1)))
	}
	return out
}

// walkIn books a room from March 10 to checkOut for one principal guest.
func walkIn(t *testing.T, app *harness.App, room *roomdomain.Room, checkOutDay int, manual *decimal.Decimal, deposit int64) *quickrentdomain.Result {
	t.Helper()
	principal := newCustomer(t, app, "Principal")
	req := quickrentdomain.Request{
		RoomID:       room.ID,
		CheckInDate:  march(10),
		CheckOutDate: march(checkOutDay),
		PrincipalID:  &principal,
		ManualTotal:  manual,
	}
	if deposit > 0 {
		req.Deposit = money(deposit)
		req.PaymentMethod = "cash"
	}
	result, err := app.QuickRent.Create(at(10, 10), req)
	require.NoError(t, err)
	return result
}

func requireMoney(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.True(t, money(want).Equal(got), append([]any{"want %d got %s", want, got.String()}, msgAndArgs...)...)
}

func mustOpenReservation(t *testing.T, app *harness.App, roomID snowflake.ID) snowflake.ID {
	t.Helper()
	stay, err := app.Stays.FindOpenByRoom(context.Background(), nil, roomID)
	require.NoError(t, err)
	require.NotNil(t, stay)
	return stay.ReservationID
}
