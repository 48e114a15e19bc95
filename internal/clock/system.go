package clock

import (
	"context"
	"time"

	"github.com/railzwaylabs/frontdesk/internal/config"
)

type SystemClock struct {
	Location *time.Location
}

func NewFromLocation(cfg config.Config) (Clock, error) {
	loc, err := time.LoadLocation(cfg.HotelTimezone)
	if err != nil {
		return nil, err
	}
	return SystemClock{Location: loc}, nil
}

func (c SystemClock) Now(ctx context.Context) time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	if t, ok := AsOfFromContext(ctx); ok {
		return t.In(loc)
	}
	return time.Now().In(loc)
}

// Fixed always reports the same instant. Used by tests and replay tooling.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now(ctx context.Context) time.Time {
	if t, ok := AsOfFromContext(ctx); ok {
		return t.In(f.At.Location())
	}
	return f.At
}
