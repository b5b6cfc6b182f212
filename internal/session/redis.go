package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

const (
	redisSessionPrefix = "session:"
	redisUserPrefix    = "session:user:"
)

// RedisStore keeps each session under session:<token> with a TTL equal to
// its lifetime. session:user:<id> is a set of the user's tokens.
type RedisStore struct {
	rdb   redis.UniversalClient
	clock clock
}

// NewRedisStore returns a redis backed store.
func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// WithClock overrides the time source.
func (s *RedisStore) WithClock(now func() time.Time) *RedisStore {
	s.clock = now
	return s
}

func sessionKey(token string) string {
	return redisSessionPrefix + token
}

func userKey(userID uint64) string {
	return redisUserPrefix + strconv.FormatUint(userID, 10)
}

// Issue implements Store. Session and index are written in one MULTI/EXEC.
func (s *RedisStore) Issue(ctx context.Context, userID uint64, role rbac.Role, ttl time.Duration) (*Session, error) {
	if err := checkIssue(role, ttl); err != nil {
		return nil, err
	}

	token, err := NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := s.clock.now()
	sess := &Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(token), payload, ttl)
		pipe.SAdd(ctx, userKey(userID), token)
		pipe.Expire(ctx, userKey(userID), ttl)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return sess, nil
}

// Lookup implements Store.
func (s *RedisStore) Lookup(ctx context.Context, token string) (*Session, error) {
	if !wellFormed(token) {
		return nil, ErrNotFound
	}

	raw, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	var sess Session
	if err = json.Unmarshal(raw, &sess); err != nil || !sess.Role.Valid() {
		return nil, ErrNotFound
	}

	sess.Token = token

	return &sess, nil
}

// Revoke implements Store.
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	sess, err := s.Lookup(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(token))
		pipe.SRem(ctx, userKey(sess.UserID), token)

		return nil
	})
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

// RevokeUser implements Store.
func (s *RedisStore) RevokeUser(ctx context.Context, userID uint64) error {
	tokens, err := s.rdb.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKey(token))
	}

	keys = append(keys, userKey(userID))

	if err = s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}

	return nil
}
