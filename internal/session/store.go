package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"donorhub/models"
	"donorhub/utils"
)

var ErrNotFound = errors.New("session: not found")

// Store keeps browser sessions in Redis, keyed by an opaque session id that
// is handed to the browser in place of the backend token. The backend token
// never leaves the server side.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewStore(redisClient *redis.Client, ttl time.Duration, log *zerolog.Logger) *Store {
	return &Store{
		redis: redisClient,
		ttl:   ttl,
		log:   log,
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Create stores the session under a fresh opaque id and returns that id.
func (s *Store) Create(ctx context.Context, sess *models.Session) (string, error) {
	id, err := utils.GenerateCode(16)
	if err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}

	sess.ID = id
	sess.CreatedAt = time.Now().Unix()

	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("session: json.Marshal: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(id), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: redis.Set: %w", err)
	}
	return id, nil
}

// Get loads the session for an id; ErrNotFound when it expired or never was.
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.redis.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis.Get: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("session: json.Unmarshal: %w", err)
	}
	return &sess, nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("session: redis.Del: %w", err)
	}
	return nil
}

// Touch extends the session lifetime on activity.
func (s *Store) Touch(ctx context.Context, id string) {
	if err := s.redis.Expire(ctx, sessionKey(id), s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("session", id).Msg("failed to extend session ttl")
	}
}
