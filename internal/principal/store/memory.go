// Package store persists principals in memory or Postgres.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded principal directory for development and tests.
type InMemory struct {
	mu         sync.RWMutex
	principals map[id.PrincipalID]*models.Principal
}

func NewInMemory() *InMemory {
	return &InMemory{principals: make(map[id.PrincipalID]*models.Principal)}
}

// Create inserts a principal. Email (case-insensitive) and government ID are unique.
func (s *InMemory) Create(_ context.Context, p *models.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.principals[p.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	for _, existing := range s.principals {
		if strings.EqualFold(existing.Email, p.Email) || existing.GovernmentID == p.GovernmentID {
			return sentinel.ErrAlreadyUsed
		}
	}
	clone := *p
	s.principals[p.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, principalID id.PrincipalID) (*models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.principals[principalID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByEmail(_ context.Context, address string) (*models.Principal, error) {
	return s.findFirst(func(p *models.Principal) bool { return strings.EqualFold(p.Email, address) })
}

func (s *InMemory) FindByGovernmentID(_ context.Context, governmentID string) (*models.Principal, error) {
	return s.findFirst(func(p *models.Principal) bool { return p.GovernmentID == governmentID })
}

func (s *InMemory) findFirst(match func(*models.Principal) bool) (*models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.principals {
		if match(p) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// UpdateFaceEnrollment writes the face enrollment flag and date.
func (s *InMemory) UpdateFaceEnrollment(_ context.Context, principalID id.PrincipalID, enrolled bool, at *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.principals[principalID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.FaceEnrolled = enrolled
	p.FaceEnrollmentDate = at
	return nil
}
