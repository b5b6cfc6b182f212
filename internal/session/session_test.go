package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

var signingKey = []byte(strings.Repeat("s", 32))

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Session{}))

	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, rdb
}

type backend struct {
	name      string
	store     Store
	stateless bool
}

func backends(t *testing.T) []backend {
	t.Helper()

	_, rdb := newTestRedis(t)

	return []backend{
		{name: "gorm", store: NewGormStore(newTestDB(t))},
		{name: "redis", store: NewRedisStore(rdb)},
		{name: "jwt", store: NewJWTStore(signingKey, "test"), stateless: true},
	}
}

func TestStore_IssueAndLookup(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			before := time.Now().Add(-time.Second)

			sess, err := b.store.Issue(ctx, 42, rbac.RoleEditor, time.Hour)
			require.NoError(t, err)
			require.NotEmpty(t, sess.Token)
			assert.Equal(t, uint64(42), sess.UserID)
			assert.Equal(t, rbac.RoleEditor, sess.Role)
			assert.True(t, sess.IssuedAt.After(before))
			assert.WithinDuration(t, sess.IssuedAt.Add(time.Hour), sess.ExpiresAt, time.Second)

			got, err := b.store.Lookup(ctx, sess.Token)
			require.NoError(t, err)
			assert.Equal(t, sess.UserID, got.UserID)
			assert.Equal(t, sess.Role, got.Role)
			assert.Equal(t, sess.Token, got.Token)
			assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
			assert.True(t, got.Valid(time.Now()))

			// lookup is read-only: a second lookup sees the same record
			again, err := b.store.Lookup(ctx, sess.Token)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestStore_IssueRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			_, err := b.store.Issue(ctx, 1, rbac.RoleAdmin, 0)
			require.ErrorIs(t, err, ErrInvalidTTL)

			_, err = b.store.Issue(ctx, 1, "ROOT", time.Hour)
			require.ErrorIs(t, err, ErrInvalidRole)
		})
	}
}

func TestStore_LookupUnknown(t *testing.T) {
	ctx := context.Background()
	unknown, err := NewToken()
	require.NoError(t, err)

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			for _, token := range []string{"", "abc", unknown, strings.Repeat("z", 64), "a.b.c"} {
				_, err := b.store.Lookup(ctx, token)
				require.ErrorIs(t, err, ErrNotFound, "token %q", token)
			}
		})
	}
}

func TestStore_LookupTampered(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			sess, err := b.store.Issue(ctx, 7, rbac.RoleViewer, time.Hour)
			require.NoError(t, err)

			i := len(sess.Token) - 5
			repl := byte('A')
			if sess.Token[i] == 'A' {
				repl = 'B'
			}

			tampered := sess.Token[:i] + string(repl) + sess.Token[i+1:]

			_, err = b.store.Lookup(ctx, tampered)
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_Revoke(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends(t) {
		if b.stateless {
			continue
		}

		t.Run(b.name, func(t *testing.T) {
			s1, err := b.store.Issue(ctx, 1, rbac.RoleAdmin, time.Hour)
			require.NoError(t, err)
			s2, err := b.store.Issue(ctx, 1, rbac.RoleAdmin, time.Hour)
			require.NoError(t, err)
			other, err := b.store.Issue(ctx, 2, rbac.RoleViewer, time.Hour)
			require.NoError(t, err)

			require.NoError(t, b.store.Revoke(ctx, s1.Token))
			_, err = b.store.Lookup(ctx, s1.Token)
			require.ErrorIs(t, err, ErrNotFound)

			// concurrent sessions of the same user survive a single logout
			_, err = b.store.Lookup(ctx, s2.Token)
			require.NoError(t, err)

			// revoking twice or revoking garbage is fine
			require.NoError(t, b.store.Revoke(ctx, s1.Token))
			require.NoError(t, b.store.Revoke(ctx, "garbage"))

			require.NoError(t, b.store.RevokeUser(ctx, 1))
			_, err = b.store.Lookup(ctx, s2.Token)
			require.ErrorIs(t, err, ErrNotFound)

			_, err = b.store.Lookup(ctx, other.Token)
			require.NoError(t, err)
		})
	}
}

func TestJWTStore_RevokeIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewJWTStore(signingKey, "test")

	sess, err := s.Issue(ctx, 1, rbac.RoleAdmin, time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, sess.Token))
	require.NoError(t, s.RevokeUser(ctx, 1))

	_, err = s.Lookup(ctx, sess.Token)
	require.NoError(t, err)
}

func TestJWTStore_Verification(t *testing.T) {
	ctx := context.Background()

	sess, err := NewJWTStore(signingKey, "test").Issue(ctx, 1, rbac.RoleAdmin, time.Hour)
	require.NoError(t, err)

	// another key
	_, err = NewJWTStore([]byte(strings.Repeat("x", 32)), "test").Lookup(ctx, sess.Token)
	require.ErrorIs(t, err, ErrNotFound)

	// another issuer
	_, err = NewJWTStore(signingKey, "elsewhere").Lookup(ctx, sess.Token)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ExpiredIsReturnedForCallerToReject(t *testing.T) {
	ctx := context.Background()
	past := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	gs := NewGormStore(newTestDB(t)).WithClock(func() time.Time { return past })
	js := NewJWTStore(signingKey, "").WithClock(func() time.Time { return past })

	for name, s := range map[string]Store{"gorm": gs, "jwt": js} {
		t.Run(name, func(t *testing.T) {
			sess, err := s.Issue(ctx, 3, rbac.RoleViewer, time.Minute)
			require.NoError(t, err)

			got, err := s.Lookup(ctx, sess.Token)
			require.NoError(t, err)
			assert.False(t, got.Valid(time.Now()))
			assert.True(t, got.Valid(past.Add(30*time.Second)))
			assert.False(t, got.Valid(past.Add(time.Minute)))
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	s := NewRedisStore(rdb)

	sess, err := s.Issue(ctx, 9, rbac.RoleEditor, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, mr.TTL(sessionKey(sess.Token)))
	ok, err := mr.SIsMember(userKey(9), sess.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)

	_, err = s.Lookup(ctx, sess.Token)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_BackendFailure(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	s := NewRedisStore(rdb)

	sess, err := s.Issue(ctx, 9, rbac.RoleEditor, time.Minute)
	require.NoError(t, err)

	mr.SetError("LOADING redis is loading the dataset")

	_, err = s.Lookup(ctx, sess.Token)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestGormStore_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)

	s := NewGormStore(db).WithClock(func() time.Time { return now })

	short, err := s.Issue(ctx, 1, rbac.RoleAdmin, time.Minute)
	require.NoError(t, err)
	long, err := s.Issue(ctx, 1, rbac.RoleAdmin, time.Hour)
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)

	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Lookup(ctx, short.Token)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Lookup(ctx, long.Token)
	require.NoError(t, err)
}

func TestGormStore_UnknownRoleInRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	token, err := NewToken()
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Session{
		Token: token, UserID: 1, Role: "ROOT", IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	_, err = NewGormStore(db).Lookup(ctx, token)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNew(t *testing.T) {
	_, rdb := newTestRedis(t)
	db := newTestDB(t)

	s, err := New(config.Session{Backend: config.SessionBackendDB}, db, nil, "")
	require.NoError(t, err)
	assert.IsType(t, &GormStore{}, s)

	s, err = New(config.Session{Backend: config.SessionBackendRedis}, nil, rdb, "")
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)

	s, err = New(config.Session{Backend: config.SessionBackendJWT, SigningKey: string(signingKey)}, nil, nil, "")
	require.NoError(t, err)
	assert.IsType(t, &JWTStore{}, s)

	_, err = New(config.Session{Backend: config.SessionBackendRedis}, db, nil, "")
	require.Error(t, err)

	_, err = New(config.Session{Backend: "memcache"}, db, nil, "")
	require.ErrorIs(t, err, config.ErrUnknownSessionBackend)
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.True(t, wellFormed(a))
	assert.False(t, wellFormed(a[:63]))
}
