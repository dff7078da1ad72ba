package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

const (
	sessionKeyPrefix = "quiz:session:"
	activeKeyPrefix  = "quiz:chat:"
)

// RedisQuizStorage keeps quiz sessions in Redis as JSON with a TTL,
// so running quizzes survive a bot restart.
type RedisQuizStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return rdb, nil
}

// NewRedisQuizStorage creates a Redis backed storage.
func NewRedisQuizStorage(client *redis.Client, ttl time.Duration) *RedisQuizStorage {
	return &RedisQuizStorage{client: client, ttl: ttl}
}

// Store saves a session and makes it the active one of its chat.
func (s *RedisQuizStorage) Store(ctx context.Context, session *entities.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	activeKey := activeKey(session.ChatID)
	prev, err := s.client.Get(ctx, activeKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("get active session: %w", err)
	}

	pipe := s.client.TxPipeline()
	if prev != "" && prev != session.ID {
		pipe.Del(ctx, sessionKey(prev))
	}
	pipe.Set(ctx, sessionKey(session.ID), data, s.ttl)
	pipe.Set(ctx, activeKey, session.ID, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID.
func (s *RedisQuizStorage) Get(ctx context.Context, sessionID string) (*entities.QuizSession, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session entities.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// GetActive retrieves the active session of a chat.
func (s *RedisQuizStorage) GetActive(ctx context.Context, chatID int64) (*entities.QuizSession, error) {
	id, err := s.client.Get(ctx, activeKey(chatID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes a session.
func (s *RedisQuizStorage) Delete(ctx context.Context, sessionID string) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.Del(ctx, activeKey(session.ChatID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// HealthCheck verifies that Redis is reachable.
func (s *RedisQuizStorage) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func activeKey(chatID int64) string {
	return activeKeyPrefix + strconv.FormatInt(chatID, 10)
}
