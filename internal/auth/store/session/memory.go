// Package session persists face-login sessions in memory or Redis.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded session store for development and tests.
type InMemory struct {
	mu       sync.Mutex
	sessions map[id.SessionID]*models.Session
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[id.SessionID]*models.Session)}
}

func (s *InMemory) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return sentinel.ErrConflict
	}
	s.sessions[session.ID] = clone(session)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, sessionID id.SessionID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(sess), nil
}

// Execute runs validate and then mutate against the stored session under the
// store lock. A validate error aborts without writing.
func (s *InMemory) Execute(_ context.Context, sessionID id.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := clone(sess)
	if err := validate(working); err != nil {
		return nil, err
	}
	mutate(working)
	s.sessions[sessionID] = working
	return clone(working), nil
}

func (s *InMemory) RevokeSessionIfActive(ctx context.Context, sessionID id.SessionID, now time.Time) error {
	_, err := s.Execute(ctx, sessionID,
		func(sess *models.Session) error { return sess.CanRevoke() },
		func(sess *models.Session) { sess.ApplyRevocation(now) },
	)
	return err
}

func clone(s *models.Session) *models.Session {
	c := *s
	if s.RevokedAt != nil {
		t := *s.RevokedAt
		c.RevokedAt = &t
	}
	return &c
}
