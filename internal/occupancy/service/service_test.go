package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	occupancydomain "github.com/railzwaylabs/frontdesk/internal/occupancy/domain"
	quickrentdomain "github.com/railzwaylabs/frontdesk/internal/quickrent/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport"
	"github.com/railzwaylabs/frontdesk/internal/testsupport/harness"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedApp(t *testing.T) (*harness.App, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return harness.New(t, harness.WithRedis(rdb, time.Minute)), s
}

func createRoom(t *testing.T, app *harness.App) *roomdomain.Room {
	t.Helper()
	room, err := app.Rooms.Create(context.Background(), roomdomain.CreateRequest{
		Code:        "301",
		Name:        "Corner",
		Beds:        2,
		MaxCapacity: 2,
		BasePrice:   decimal.NewFromInt(70000),
	})
	require.NoError(t, err)
	return room
}

func TestStatusIsCachedUnderStateVersion(t *testing.T) {
	app, mr := newCachedApp(t)
	room := createRoom(t, app)
	ctx := context.Background()
	day := testsupport.Date(2026, time.March, 10)

	status, err := app.Occupancy.GetOperationalStatus(ctx, room.ID, day)
	require.NoError(t, err)
	assert.Equal(t, occupancydomain.StatusPendingCleaning, status.Status, "a room never cleaned is not ready")

	key := fmt.Sprintf("room_status:%s:%d:2026-03-10", room.ID, status.StateVersion)
	cached, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, string(occupancydomain.StatusPendingCleaning), cached)
	assert.Equal(t, time.Minute, mr.TTL(key))

	// A hit is served without deriving again.
	require.NoError(t, mr.Set(key, string(occupancydomain.StatusFreeClean)))
	status, err = app.Occupancy.GetOperationalStatus(ctx, room.ID, day)
	require.NoError(t, err)
	assert.Equal(t, occupancydomain.StatusFreeClean, status.Status)
}

func TestStayMutationInvalidatesCachedStatus(t *testing.T) {
	app, mr := newCachedApp(t)
	room := createRoom(t, app)
	day := testsupport.Date(2026, time.March, 10)
	ctx := clock.WithAsOf(context.Background(), time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	before, err := app.Occupancy.GetOperationalStatus(ctx, room.ID, day)
	require.NoError(t, err)
	assert.Equal(t, occupancydomain.StatusPendingCleaning, before.Status)

	_, err = app.QuickRent.Create(ctx, quickrentdomain.Request{
		RoomID:       room.ID,
		CheckInDate:  day,
		CheckOutDate: testsupport.Date(2026, time.March, 12),
	})
	require.NoError(t, err)

	after, err := app.Occupancy.GetOperationalStatus(ctx, room.ID, day)
	require.NoError(t, err)
	assert.Greater(t, after.StateVersion, before.StateVersion)
	assert.Equal(t, occupancydomain.StatusOccupied, after.Status)
	assert.Len(t, mr.Keys(), 2)
}

func TestStatusWithoutCache(t *testing.T) {
	app := harness.New(t)
	room := createRoom(t, app)

	statuses, err := app.Occupancy.ListOperationalStatus(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, room.ID, statuses[0].RoomID)
	assert.Equal(t, "2026-03-10", statuses[0].Date)

	_, err = app.Occupancy.GetOperationalStatus(context.Background(), 99, time.Time{})
	require.ErrorIs(t, err, occupancydomain.ErrRoomNotFound)
}
