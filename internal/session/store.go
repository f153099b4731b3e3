// Package session owns the merchant's persisted sign-in state. The token,
// store id, store name and store email live under one fixed key per session
// and are removed together on logout.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/a1k2f3/sellercenter-buybot/internal/config"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fixed field names inside the session hash
const (
	fieldToken      = "token"
	fieldStoreID    = "storeId"
	fieldStoreName  = "storeName"
	fieldStoreEmail = "storeEmail"
)

type Store interface {
	Save(ctx context.Context, sess *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("host", cfg.RedisConnect.Host), slog.String("port", cfg.RedisConnect.Port))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func Key(id uuid.UUID) string {
	return "session:" + id.String()
}

func (s *redisStore) Save(ctx context.Context, sess *models.Session) error {

	key := Key(sess.ID)

	pipe := s.client.TxPipeline()

	pipe.HSet(ctx, key,
		fieldToken, sess.Token,
		fieldStoreID, sess.StoreID,
		fieldStoreName, sess.StoreName,
		fieldStoreEmail, sess.StoreEmail,
	)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session %s: %w", key, err)
	}

	return nil
}

func (s *redisStore) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {

	key := Key(id)

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", key, err)
	}

	// HGetAll returns an empty map for a missing key
	if len(fields) == 0 {
		return nil, nil
	}

	return &models.Session{
		ID:         id,
		Token:      fields[fieldToken],
		StoreID:    fields[fieldStoreID],
		StoreName:  fields[fieldStoreName],
		StoreEmail: fields[fieldStoreEmail],
	}, nil
}

func (s *redisStore) Delete(ctx context.Context, id uuid.UUID) error {

	key := Key(id)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", key, err)
	}

	return nil
}
