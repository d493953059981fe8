package utils

import (
	"crypto/rand"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var ErrEmptyNumber = errors.New("empty number")

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewSessionID() (string, error)
	ParseDecimal(raw string) (float64, error)
}

type utils struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func New() IUtils {
	return &utils{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t), u.entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) NewSessionID() (string, error) {
	return u.NewULIDFromTimestamp(time.Now())
}

// ParseDecimal accepts both "48.8566" and the French "48,8566".
func (u *utils) ParseDecimal(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrEmptyNumber
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	return strconv.ParseFloat(raw, 64)
}
