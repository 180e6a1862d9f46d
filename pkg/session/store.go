package session

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/alexedwards/scs/v2"
	"go.uber.org/zap"
)

// ErrNoManager is returned when a Store is built without a session manager.
var ErrNoManager = errors.New("session: session manager is required")

var registerBagOnce sync.Once

// Store reads and writes form state through an scs session. Values written
// during one request are consumed by Middleware on the next one, giving
// them flash semantics.
type Store struct {
	manager *scs.SessionManager
	logger  *zap.Logger
}

var _ Reader = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for decode problems.
func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore wraps manager.
func NewStore(manager *scs.SessionManager, options ...StoreOption) (*Store, error) {
	if manager == nil {
		return nil, ErrNoManager
	}
	registerBagOnce.Do(func() {
		gob.Register(ErrorBag{})
	})

	store := &Store{manager: manager, logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(store)
	}
	return store, nil
}

// Manager returns the wrapped session manager.
func (s *Store) Manager() *scs.SessionManager {
	return s.manager
}

// PutErrors stores bag for the next request. Empty bags clear the slot.
func (s *Store) PutErrors(ctx context.Context, bag ErrorBag) {
	if bag.Empty() {
		s.manager.Remove(ctx, ErrorsKey)
		return
	}
	s.manager.Put(ctx, ErrorsKey, bag)
}

// FlashSuccess stores a success message for the next request.
func (s *Store) FlashSuccess(ctx context.Context, message string) {
	s.manager.Put(ctx, SuccessKey, message)
}

// FlashError stores an error message for the next request.
func (s *Store) FlashError(ctx context.Context, message string) {
	s.manager.Put(ctx, ErrorKey, message)
}

// Errors returns the bag of the request snapshot when Middleware ran, or
// peeks at the session otherwise.
func (s *Store) Errors(ctx context.Context) (ErrorBag, error) {
	if snap, ok := SnapshotFrom(ctx); ok {
		return snap.Bag, nil
	}
	return s.peekErrors(ctx)
}

// Flash returns the flash value of the request snapshot when Middleware
// ran, or peeks at the session otherwise.
func (s *Store) Flash(ctx context.Context, key string) (string, error) {
	if snap, ok := SnapshotFrom(ctx); ok {
		return snap.Flashes[key], nil
	}
	return s.manager.GetString(ctx, key), nil
}

// Pop removes the flash state from the session and returns it.
func (s *Store) Pop(ctx context.Context) (Snapshot, error) {
	bag, err := s.decodeErrors(s.manager.Pop(ctx, ErrorsKey))
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Bag: bag, Flashes: make(map[string]string, 2)}
	for _, key := range []string{SuccessKey, ErrorKey} {
		if value := s.manager.PopString(ctx, key); value != "" {
			snap.Flashes[key] = value
		}
	}
	return snap, nil
}

// Middleware pops the flash state once per request and exposes it through
// the request context. It must run inside the manager's LoadAndSave.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.Pop(r.Context())
		if err != nil {
			s.logger.Warn("discarding undecodable form state", zap.Error(err))
			snap = Snapshot{}
		}
		next.ServeHTTP(w, r.WithContext(WithSnapshot(r.Context(), snap)))
	})
}

func (s *Store) peekErrors(ctx context.Context) (ErrorBag, error) {
	return s.decodeErrors(s.manager.Get(ctx, ErrorsKey))
}

func (s *Store) decodeErrors(raw any) (ErrorBag, error) {
	switch value := raw.(type) {
	case nil:
		return ErrorBag{}, nil
	case ErrorBag:
		return value, nil
	case *ErrorBag:
		if value == nil {
			return ErrorBag{}, nil
		}
		return *value, nil
	case map[string][]string:
		return ErrorBagFromMap(value), nil
	default:
		return ErrorBag{}, fmt.Errorf("session: unexpected %T stored under %q", raw, ErrorsKey)
	}
}
