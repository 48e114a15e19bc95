package repository

import (
	"context"
	"testing"

	"github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFindByIDForUpdateLoadsBandsInsideTransaction(t *testing.T) {
	db := testsupport.NewDB(t)
	node := testsupport.Node(t)
	r := Provide()
	ctx := context.Background()

	room := &domain.Room{
		ID:          node.Generate(),
		Code:        "201",
		Name:        "Garden",
		Beds:        2,
		MaxCapacity: 3,
		BasePrice:   decimal.NewFromInt(70000),
		CreatedAt:   testsupport.Now,
		UpdatedAt:   testsupport.Now,
	}
	for i, price := range []int64{50000, 65000} {
		room.RateBands = append(room.RateBands, domain.RateBand{
			ID:            node.Generate(),
			RoomID:        room.ID,
			Position:      i,
			MinGuests:     i + 1,
			MaxGuests:     i + 1,
			PricePerNight: decimal.NewFromInt(price),
			CreatedAt:     testsupport.Now,
		})
	}
	require.NoError(t, r.Insert(ctx, db, room))

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := r.FindByIDForUpdate(ctx, tx, room.ID)
		if err != nil {
			return err
		}
		require.NotNil(t, locked)
		require.Len(t, locked.RateBands, 2)
		assert.Equal(t, 0, locked.RateBands[0].Position)
		assert.True(t, decimal.NewFromInt(65000).Equal(locked.RateBands[1].PricePerNight))

		plain, err := r.FindByID(ctx, tx, room.ID)
		if err != nil {
			return err
		}
		assert.Len(t, plain.RateBands, 2)
		return nil
	})
	require.NoError(t, err)

	missing, err := r.FindByIDForUpdate(ctx, db, node.Generate())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
