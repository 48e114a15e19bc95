package rating

import (
	"testing"

	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func band(min, max int, price int64) roomdomain.RateBand {
	return roomdomain.RateBand{MinGuests: min, MaxGuests: max, PricePerNight: decimal.NewFromInt(price)}
}

func TestResolveNightlyRate(t *testing.T) {
	room := roomdomain.Room{
		BasePrice: decimal.NewFromInt(100000),
		RateBands: []roomdomain.RateBand{
			band(1, 1, 80000),
			band(2, 3, 120000),
			band(3, 4, 150000), // overlaps the previous band on 3
		},
	}

	tests := []struct {
		name   string
		guests int
		want   int64
	}{
		{"single band", 1, 80000},
		{"range band", 2, 120000},
		{"overlap takes first", 3, 120000},
		{"later band", 4, 150000},
		{"gap falls back to base", 5, 100000},
		{"zero guests", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveNightlyRate(room, tt.guests)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestResolveSkipsMisconfiguredBands(t *testing.T) {
	room := roomdomain.Room{
		BasePrice: decimal.NewFromInt(90000),
		RateBands: []roomdomain.RateBand{
			band(0, 2, 10),
			band(-1, 5, 20),
			band(1, 2, 0),
		},
	}
	assert.True(t, decimal.NewFromInt(90000).Equal(ResolveNightlyRate(room, 2)))
}

func TestResolveNoPriceAvailable(t *testing.T) {
	room := roomdomain.Room{BasePrice: decimal.Zero}
	assert.True(t, ResolveNightlyRate(room, 1).IsZero())

	_, _, ok := StayTotal(room, 1, 2)
	assert.False(t, ok)
}

func TestStayTotalWithoutBands(t *testing.T) {
	room := roomdomain.Room{MaxCapacity: 2, BasePrice: decimal.NewFromInt(100000)}

	total, perNight, ok := StayTotal(room, 1, 2)
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(100000).Equal(perNight))
	assert.True(t, decimal.NewFromInt(200000).Equal(total))
}
