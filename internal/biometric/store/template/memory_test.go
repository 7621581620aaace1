package template

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	owner id.PrincipalID
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.owner = id.NewPrincipalID()
}

func (s *InMemorySuite) newTemplate(ciphertext string) *models.Template {
	now := time.Now()
	return &models.Template{
		ID:         id.NewTemplateID(),
		OwnerID:    s.owner,
		Payload:    models.EncryptedPayload{Ciphertext: ciphertext, IV: "iv"},
		CapturedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *InMemorySuite) TestUpsertReplacesInPlace() {
	first, replaced, err := s.store.UpsertActive(s.ctx, s.newTemplate("first"))
	s.Require().NoError(err)
	s.False(replaced)

	second, replaced, err := s.store.UpsertActive(s.ctx, s.newTemplate("second"))
	s.Require().NoError(err)
	s.True(replaced)
	s.Equal(first.ID, second.ID, "re-enrollment keeps the row")

	active, err := s.store.FindActive(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal("second", active[0].Payload.Ciphertext)
	s.Equal(1, s.store.CountAll(s.ctx, s.owner))
}

func (s *InMemorySuite) TestDeactivateAll() {
	_, _, err := s.store.UpsertActive(s.ctx, s.newTemplate("a"))
	s.Require().NoError(err)

	n, err := s.store.DeactivateAll(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Equal(1, n)

	n, err = s.store.DeactivateAll(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Zero(n, "idempotent")

	active, err := s.store.FindActive(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Empty(active)
	s.Equal(1, s.store.CountAll(s.ctx, s.owner), "deactivated, never deleted")

	_, replaced, err := s.store.UpsertActive(s.ctx, s.newTemplate("b"))
	s.Require().NoError(err)
	s.False(replaced, "enrolling after revoke starts a new active row")
	s.Equal(2, s.store.CountAll(s.ctx, s.owner))
}

func (s *InMemorySuite) TestConcurrentEnrollmentKeepsOneActive() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.store.UpsertActive(s.ctx, s.newTemplate("x"))
			s.NoError(err)
		}()
	}
	wg.Wait()

	active, err := s.store.FindActive(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Len(active, 1)
}
