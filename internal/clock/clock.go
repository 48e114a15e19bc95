package clock

import (
	"context"
	"time"

	"go.uber.org/fx"
)

var Module = fx.Module("clock",
	fx.Provide(NewFromLocation),
)

type Clock interface {
	Now(ctx context.Context) time.Time
}

// Today returns the calendar day of c's current time.
func Today(ctx context.Context, c Clock) time.Time {
	return DateOf(c.Now(ctx))
}

// DateOf truncates t to midnight in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a to b. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	from := DateOf(a)
	to := DateOf(b.In(a.Location()))
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	u1 := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	u2 := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(u2.Sub(u1).Hours() / 24)
}

// CalendarDate reads t's year, month and day as a date in loc, ignoring t's
// own zone. Dates parsed from "2006-01-02" land in UTC; this keeps the day.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
