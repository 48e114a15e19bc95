package repository

import (
	"context"
	"testing"
	"time"

	"github.com/railzwaylabs/frontdesk/internal/stay/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneOpenStayPerRoom(t *testing.T) {
	db := testsupport.NewDB(t)
	node := testsupport.Node(t)
	r := Provide()
	ctx := context.Background()
	roomID := node.Generate()

	newStay := func() *domain.Stay {
		return &domain.Stay{
			ID:                node.Generate(),
			ReservationID:     node.Generate(),
			ReservationRoomID: node.Generate(),
			RoomID:            roomID,
			Status:            domain.StatusActive,
			CheckInAt:         testsupport.Now,
			CreatedAt:         testsupport.Now,
			UpdatedAt:         testsupport.Now,
		}
	}

	first := newStay()
	require.NoError(t, r.Insert(ctx, db, first))
	require.Error(t, r.Insert(ctx, db, newStay()), "a second open stay for the room must be refused")

	closed, err := r.Close(ctx, db, first.ID, testsupport.Now.Add(20*time.Hour))
	require.NoError(t, err)
	assert.True(t, closed)

	second := newStay()
	require.NoError(t, r.Insert(ctx, db, second))

	open, err := r.FindOpenByRoom(ctx, db, roomID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, second.ID, open.ID)

	missing, err := r.FindByID(ctx, db, node.Generate())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
