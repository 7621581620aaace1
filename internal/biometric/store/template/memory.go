// Package template persists encrypted face templates.
package template

import (
	"context"
	"sync"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

// InMemory keeps templates per owner. A single mutex serializes writes so the
// one-active-template invariant holds under concurrent enrollment.
type InMemory struct {
	mu        sync.Mutex
	templates map[id.PrincipalID][]*models.Template
}

func NewInMemory() *InMemory {
	return &InMemory{templates: make(map[id.PrincipalID][]*models.Template)}
}

// UpsertActive replaces the owner's active template in place or inserts t as
// the new active template. The stored template is returned.
func (s *InMemory) UpsertActive(_ context.Context, t *models.Template) (*models.Template, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.templates[t.OwnerID] {
		if existing.Active {
			existing.Payload = t.Payload
			existing.CapturedAt = t.CapturedAt
			existing.UpdatedAt = t.UpdatedAt
			clone := *existing
			return &clone, true, nil
		}
	}
	stored := *t
	stored.Active = true
	s.templates[t.OwnerID] = append(s.templates[t.OwnerID], &stored)
	clone := stored
	return &clone, false, nil
}

func (s *InMemory) FindActive(_ context.Context, ownerID id.PrincipalID) ([]*models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Template
	for _, t := range s.templates[ownerID] {
		if t.Active {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

// DeactivateAll is idempotent and reports how many templates it switched off.
func (s *InMemory) DeactivateAll(_ context.Context, ownerID id.PrincipalID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.templates[ownerID] {
		if t.Active {
			t.Active = false
			n++
		}
	}
	return n, nil
}

// CountAll returns every stored template for an owner, active or not.
func (s *InMemory) CountAll(_ context.Context, ownerID id.PrincipalID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.templates[ownerID])
}
