package clock

import (
	"context"
	"time"
)

type key string

var asOfKey key = "as_of"

// WithAsOf returns a context whose clock reads report t instead of wall time.
func WithAsOf(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, asOfKey, t)
}

// AsOfFromContext returns the as-of instant carried by ctx, if present.
func AsOfFromContext(ctx context.Context) (time.Time, bool) {
	if ctx == nil {
		return time.Time{}, false
	}
	t, ok := ctx.Value(asOfKey).(time.Time)
	return t, ok
}
