package integration

import (
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	guestdomain "github.com/railzwaylabs/frontdesk/internal/guest/domain"
	releasedomain "github.com/railzwaylabs/frontdesk/internal/release/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentGuestAddsRespectCapacity(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 50000)
	result := walkIn(t, app, room, 11, nil, 0)
	candidates := ids(t, app, 6)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		added    int
		rejected int
	)
	for _, id := range candidates {
		wg.Add(1)
		go func(id snowflake.ID) {
			defer wg.Done()
			ok, err := app.Guests.AddAdditionalGuest(at(10, 12), nil, result.ReservationRoom.ID, id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && ok:
				added++
			case assert.ErrorIs(t, err, guestdomain.ErrCapacityExceeded):
				rejected++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, added)
	assert.Equal(t, len(candidates)-1, rejected)

	assignment, err := app.Guests.GetAssignment(at(10, 13), nil, result.ReservationRoom.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, assignment.Count())

	res, err := app.Reservations.Get(at(10, 13), result.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.GuestCount)
}

func TestPrincipalAndAdditionalAreExclusive(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 4, 50000)
	result := walkIn(t, app, room, 11, nil, 0)
	linkID := result.ReservationRoom.ID
	principal := *result.Reservation.PrincipalCustomerID

	_, err := app.Guests.AddAdditionalGuest(at(10, 12), nil, linkID, principal)
	require.ErrorIs(t, err, guestdomain.ErrGuestIsPrincipal)

	companion := newCustomer(t, app, "Companion")
	added, err := app.Guests.AddAdditionalGuest(at(10, 12), nil, linkID, companion)
	require.NoError(t, err)
	require.True(t, added)

	again, err := app.Guests.AddAdditionalGuest(at(10, 12), nil, linkID, companion)
	require.NoError(t, err)
	assert.False(t, again, "a repeated add is a no-op")

	err = app.Guests.AssignPrincipal(at(10, 12), nil, result.Reservation.ID, companion)
	require.ErrorIs(t, err, guestdomain.ErrGuestIsAdditional)

	_, err = app.Guests.AddAdditionalGuest(at(10, 12), nil, linkID, snowflake.ID(4242))
	require.ErrorIs(t, err, guestdomain.ErrCustomerNotFound)

	// Replacing the principal keeps the head count.
	replacement := newCustomer(t, app, "Replacement")
	require.NoError(t, app.Guests.AssignPrincipal(at(10, 13), nil, result.Reservation.ID, replacement))

	assignment, err := app.Guests.GetAssignment(at(10, 13), nil, linkID)
	require.NoError(t, err)
	require.NotNil(t, assignment.Principal)
	assert.Equal(t, "Replacement", assignment.Principal.FullName)
	assert.Equal(t, 2, assignment.Count())
	assert.Equal(t, 4, assignment.MaxCapacity)
}

func TestRemoveAdditionalGuest(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 3, 50000)
	result := walkIn(t, app, room, 11, nil, 0)
	linkID := result.ReservationRoom.ID
	guests := ids(t, app, 2)

	assignment, err := app.Guests.AssignGuests(at(10, 12), guestdomain.AssignRequest{
		ReservationRoomID: linkID,
		AdditionalIDs:     guests,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, assignment.Count())

	require.NoError(t, app.Guests.RemoveAdditionalGuest(at(10, 13), linkID, guests[0]))
	err = app.Guests.RemoveAdditionalGuest(at(10, 13), linkID, guests[0])
	require.ErrorIs(t, err, guestdomain.ErrGuestNotAssigned)

	res, err := app.Reservations.Get(at(10, 13), result.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.GuestCount)
}

func TestAssignGuestsIsAllOrNothing(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 50000)
	result := walkIn(t, app, room, 11, nil, 0)
	linkID := result.ReservationRoom.ID

	_, err := app.Guests.AssignGuests(at(10, 12), guestdomain.AssignRequest{
		ReservationRoomID: linkID,
		AdditionalIDs:     ids(t, app, 2),
	})
	require.ErrorIs(t, err, guestdomain.ErrCapacityExceeded)

	assignment, err := app.Guests.GetAssignment(at(10, 12), nil, linkID)
	require.NoError(t, err)
	assert.Empty(t, assignment.Additional)
	assert.Equal(t, 1, assignment.Count())
}

func TestGuestsFrozenAfterRelease(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 3, 50000)
	result := walkIn(t, app, room, 11, nil, 50000)

	_, err := app.Release.Release(at(11, 9), releasedomain.Request{RoomID: room.ID})
	require.NoError(t, err)

	_, err = app.Guests.AddAdditionalGuest(at(11, 10), nil, result.ReservationRoom.ID, newCustomer(t, app, "Too late"))
	require.ErrorIs(t, err, guestdomain.ErrReservationReleased)

	_, err = app.Guests.GetAssignment(at(11, 10), nil, snowflake.ID(1))
	require.ErrorIs(t, err, guestdomain.ErrRoomLinkNotFound)
}
