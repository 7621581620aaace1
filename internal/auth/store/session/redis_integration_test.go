//go:build integration

package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/store/session"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = session.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeSession(ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:                 id.NewSessionID(),
		PrincipalID:        id.NewPrincipalID(),
		Status:             models.SessionStatusActive,
		LastAccessTokenJTI: "jti-1",
		DeviceDisplayName:  "Test Device",
		CreatedAt:          now,
		ExpiresAt:          now.Add(ttl),
	}
}

func (s *RedisStoreSuite) TestCreateFindAndExpire() {
	ctx := context.Background()
	sess := makeSession(time.Hour)
	s.Require().NoError(s.store.Create(ctx, sess))
	s.ErrorIs(s.store.Create(ctx, sess), sentinel.ErrConflict)

	found, err := s.store.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.ID, found.ID)
	s.Equal(sess.PrincipalID, found.PrincipalID)

	ttl, err := s.redis.Client.TTL(ctx, "session:"+sess.ID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 59*time.Minute)
}

func (s *RedisStoreSuite) TestRevokeKeepsTTL() {
	ctx := context.Background()
	sess := makeSession(time.Hour)
	s.Require().NoError(s.store.Create(ctx, sess))

	s.Require().NoError(s.store.RevokeSessionIfActive(ctx, sess.ID, time.Now()))
	found, err := s.store.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(models.SessionStatusRevoked, found.Status)

	ttl, err := s.redis.Client.TTL(ctx, "session:"+sess.ID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

// Concurrent revocations either win, lose the WATCH race or see the session
// already revoked. Exactly one wins.
func (s *RedisStoreSuite) TestConcurrentRevoke() {
	ctx := context.Background()
	sess := makeSession(time.Hour)
	s.Require().NoError(s.store.Create(ctx, sess))

	const goroutines = 20
	var wg sync.WaitGroup
	var success, lost, other atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.RevokeSessionIfActive(ctx, sess.ID, time.Now())
			switch {
			case err == nil:
				success.Add(1)
			case errors.Is(err, redis.TxFailedErr), errors.Is(err, models.ErrSessionRevoked):
				lost.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), success.Load())
	s.Equal(int32(goroutines-1), lost.Load())
	s.Equal(int32(0), other.Load())
}
