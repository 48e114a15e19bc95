package seed

import (
	"context"
	"testing"

	customerdomain "github.com/railzwaylabs/frontdesk/internal/customer/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDemoDataIsIdempotent(t *testing.T) {
	db := testsupport.NewDB(t)
	node := testsupport.Node(t)
	ctx := context.Background()

	require.NoError(t, EnsureDemoData(ctx, db, node))
	require.NoError(t, EnsureDemoData(ctx, db, node))

	var rooms, bands, customers int64
	require.NoError(t, db.Model(&roomdomain.Room{}).Count(&rooms).Error)
	require.NoError(t, db.Model(&roomdomain.RateBand{}).Count(&bands).Error)
	require.NoError(t, db.Model(&customerdomain.Customer{}).Count(&customers).Error)

	assert.Equal(t, int64(len(demoRooms)), rooms)
	assert.Equal(t, int64(5), bands)
	assert.Equal(t, int64(len(demoCustomers)), customers)
}

func TestRoomCode(t *testing.T) {
	assert.Equal(t, "102-garden-double", RoomCode("102 Garden Double"))
}
