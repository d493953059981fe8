package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"BatiDetect/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(ttl time.Duration) IStore {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return NewRedisWithClient(client, ttl)
}

func NewRedisWithClient(client *redis.Client, ttl time.Duration) IStore {
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Name() string {
	return "redis"
}

func (r *redisStore) Get(ctx context.Context, id string) (*entity.SessionState, error) {
	val, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting session %s: %v", id, err))
		return nil, err
	}

	var state entity.SessionState
	if err := jsoniter.Unmarshal(val, &state); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return &state, nil
}

func (r *redisStore) Save(ctx context.Context, state entity.SessionState) error {
	payload, err := jsoniter.Marshal(state)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, keyPrefix+state.ID, payload, r.ttl).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error saving session %s: %v", state.ID, err))
		return err
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error deleting session %s: %v", id, err))
		return err
	}
	return nil
}
