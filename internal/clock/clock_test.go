package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	in := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysBetween(in, time.Date(2026, 3, 12, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(in, in.Add(time.Hour)))
	assert.Equal(t, -1, DaysBetween(in, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 21, DaysBetween(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)))
}

func TestAsOfOverridesClock(t *testing.T) {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	override := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	c := Fixed{At: base}
	assert.Equal(t, base, c.Now(context.Background()))
	assert.Equal(t, override, c.Now(WithAsOf(context.Background(), override)))

	sys := SystemClock{Location: time.UTC}
	assert.Equal(t, override, sys.Now(WithAsOf(context.Background(), override)))
	assert.Equal(t, DateOf(override), Today(WithAsOf(context.Background(), override), sys))
}

func TestCalendarDateKeepsDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	parsed, err := time.Parse("2006-01-02", "2026-03-10")
	assert.NoError(t, err)

	got := CalendarDate(parsed, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), got)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, loc), DateOf(parsed.In(loc)))
}
