package session

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"BatiDetect/internal/entity"
)

var ErrSessionNotFound = errors.New("session not found")

const defaultTTL = 60 * time.Minute

// IStore keeps one SessionState per browser session.
type IStore interface {
	Get(ctx context.Context, id string) (*entity.SessionState, error)
	Save(ctx context.Context, state entity.SessionState) error
	Delete(ctx context.Context, id string) error
	Name() string
}

// New picks the backend from SESSION_STORE ("memory" by default, or "redis").
func New() IStore {
	ttl := ttlFromEnv()
	if os.Getenv("SESSION_STORE") == "redis" {
		return NewRedis(ttl)
	}
	return NewMemory(ttl)
}

func ttlFromEnv() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		return defaultTTL
	}
	return time.Duration(minutes) * time.Minute
}

// LoadOrNew returns the stored state for id, or a fresh default state.
func LoadOrNew(ctx context.Context, store IStore, id string) (entity.SessionState, error) {
	state, err := store.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return entity.NewSessionState(id), nil
	}
	if err != nil {
		return entity.SessionState{}, err
	}
	return *state, nil
}
