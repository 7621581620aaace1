package principal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/store"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

type ResolverSuite struct {
	suite.Suite
	ctx      context.Context
	store    *store.InMemory
	resolver *Resolver
	asha     *models.Principal
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	s.resolver = NewResolver(s.store)

	p, err := models.NewPrincipal(id.NewPrincipalID(), "Asha Rao", "asha@example.org", "", "GOV-1", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, p))
	s.asha = p
}

func (s *ResolverSuite) TestResolve() {
	s.Run("direct principal ID", func() {
		p, err := s.resolver.Resolve(s.ctx, s.asha.ID.String())
		s.Require().NoError(err)
		s.Equal(s.asha.ID, p.ID)
	})

	s.Run("falls back to email", func() {
		p, err := s.resolver.Resolve(s.ctx, " ASHA@example.org ")
		s.Require().NoError(err)
		s.Equal(s.asha.ID, p.ID)
	})

	s.Run("unknown UUID does not fall through to a match", func() {
		_, err := s.resolver.Resolve(s.ctx, id.NewPrincipalID().String())
		s.ErrorIs(err, ErrPrincipalNotFound)
	})

	s.Run("neither strategy applies", func() {
		_, err := s.resolver.Resolve(s.ctx, "someone")
		s.ErrorIs(err, ErrPrincipalNotFound)
	})

	s.Run("empty reference is a validation error", func() {
		_, err := s.resolver.Resolve(s.ctx, "  ")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ResolverSuite) TestStrategyOrder() {
	var calls []string
	first := func(context.Context, string) (*models.Principal, bool, error) {
		calls = append(calls, "first")
		return s.asha, true, nil
	}
	second := func(context.Context, string) (*models.Principal, bool, error) {
		calls = append(calls, "second")
		return nil, false, nil
	}

	r := NewResolverWithStrategies(first, second)
	_, err := r.Resolve(s.ctx, "ref")
	s.Require().NoError(err)
	s.Equal([]string{"first"}, calls)
}

func (s *ResolverSuite) TestStrategyErrorIsInternal() {
	failing := func(context.Context, string) (*models.Principal, bool, error) {
		return nil, false, errors.New("db down")
	}
	_, err := NewResolverWithStrategies(failing).Resolve(s.ctx, "ref")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
