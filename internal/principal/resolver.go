// Package principal resolves free-form owner references to principals.
package principal

import (
	"context"
	"errors"
	"strings"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/email"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
)

// ErrPrincipalNotFound is returned when no strategy resolves the reference.
var ErrPrincipalNotFound = dErrors.New(dErrors.CodeNotFound, "principal not found")

// Directory is the read side of the principal store used for resolution.
type Directory interface {
	FindByID(ctx context.Context, principalID id.PrincipalID) (*models.Principal, error)
	FindByEmail(ctx context.Context, address string) (*models.Principal, error)
}

// Strategy maps an owner reference to a principal. ok is false when the
// strategy does not apply to the reference or finds nothing.
type Strategy func(ctx context.Context, ref string) (p *models.Principal, ok bool, err error)

// Resolver tries its strategies in order; the first hit wins.
type Resolver struct {
	strategies []Strategy
}

// NewResolver resolves by direct principal ID first, then by email address.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{strategies: []Strategy{ByID(dir), ByEmail(dir)}}
}

// NewResolverWithStrategies builds a resolver with an explicit order.
func NewResolverWithStrategies(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve returns the principal for ref or ErrPrincipalNotFound.
func (r *Resolver) Resolve(ctx context.Context, ref string) (*models.Principal, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "owner reference is required")
	}
	for _, strategy := range r.strategies {
		p, ok, err := strategy(ctx, ref)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve principal")
		}
		if ok {
			return p, nil
		}
	}
	return nil, ErrPrincipalNotFound
}

// ByID treats the reference as a principal UUID.
func ByID(dir Directory) Strategy {
	return func(ctx context.Context, ref string) (*models.Principal, bool, error) {
		principalID, err := id.ParsePrincipalID(ref)
		if err != nil {
			return nil, false, nil
		}
		return lookup(dir.FindByID(ctx, principalID))
	}
}

// ByEmail treats the reference as a contact address.
func ByEmail(dir Directory) Strategy {
	return func(ctx context.Context, ref string) (*models.Principal, bool, error) {
		address := email.Normalize(ref)
		if !email.IsValid(address) {
			return nil, false, nil
		}
		return lookup(dir.FindByEmail(ctx, address))
	}
}

func lookup(p *models.Principal, err error) (*models.Principal, bool, error) {
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}
