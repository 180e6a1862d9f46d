package session

import (
	"context"
	"maps"
)

// Flash slot names.
const (
	SuccessKey = "success"
	ErrorKey   = "error"
	ErrorsKey  = "errors"
)

// Reader exposes the validation and flash state of the previous request.
// Missing state is not an error: an empty bag and an empty string mean
// "nothing to render".
type Reader interface {
	Errors(ctx context.Context) (ErrorBag, error)
	Flash(ctx context.Context, key string) (string, error)
}

// Snapshot is an in-memory Reader. Store.Middleware places one in the
// request context; tests and static pages can use it directly.
type Snapshot struct {
	Bag     ErrorBag
	Flashes map[string]string
}

var _ Reader = Snapshot{}

// Errors returns the snapshot bag.
func (s Snapshot) Errors(context.Context) (ErrorBag, error) {
	return s.Bag, nil
}

// Flash returns the flash value stored under key.
func (s Snapshot) Flash(_ context.Context, key string) (string, error) {
	return s.Flashes[key], nil
}

// With returns a copy of s with the flash key set.
func (s Snapshot) With(key, value string) Snapshot {
	out := Snapshot{Bag: s.Bag, Flashes: maps.Clone(s.Flashes)}
	if out.Flashes == nil {
		out.Flashes = make(map[string]string)
	}
	out.Flashes[key] = value
	return out
}

type snapshotKey struct{}

// WithSnapshot stores snap in ctx.
func WithSnapshot(ctx context.Context, snap Snapshot) context.Context {
	return context.WithValue(ctx, snapshotKey{}, snap)
}

// SnapshotFrom returns the snapshot stored in ctx, if any.
func SnapshotFrom(ctx context.Context) (Snapshot, bool) {
	if ctx == nil {
		return Snapshot{}, false
	}
	snap, ok := ctx.Value(snapshotKey{}).(Snapshot)
	return snap, ok
}

// Empty is a Reader with no state.
var Empty Reader = Snapshot{}
