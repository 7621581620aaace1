// Package token signs and checks the single-use tokens that ask a principal
// to confirm or reject a nominee.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

const PurposeNomineeVerification = "nominee_verification"

const DefaultTTL = 72 * time.Hour

var (
	ErrTokenExpired = dErrors.New(dErrors.CodeTokenExpired, "verification token has expired")
	ErrTokenInvalid = dErrors.New(dErrors.CodeCrypto, "verification token is invalid")
)

// Payload is the decoded content of a verification token.
type Payload struct {
	NomineeID         id.NomineeID
	LinkedPrincipalID id.PrincipalID
	Purpose           string
	ExpiresAt         time.Time
}

type claims struct {
	NomineeID         string `json:"nominee_id"`
	LinkedPrincipalID string `json:"linked_principal_id"`
	Purpose           string `json:"purpose"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 tokens with a single static secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

type Option func(*Issuer)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

func NewIssuer(secret string, opts ...Option) *Issuer {
	i := &Issuer{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a token for nomineeID. Every call yields a distinct token.
func (i *Issuer) Issue(nomineeID id.NomineeID, principalID id.PrincipalID, purpose string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := i.now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		NomineeID:         nomineeID.String(),
		LinkedPrincipalID: principalID.String(),
		Purpose:           purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}).SignedString(i.secret)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign verification token")
	}
	return signed, nil
}

// Validate checks signature, algorithm, expiry and purpose. Expiry is
// reported as ErrTokenExpired; everything else as ErrTokenInvalid.
func (i *Issuer) Validate(tokenString string) (*Payload, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if c.Purpose != PurposeNomineeVerification {
		return nil, ErrTokenInvalid
	}

	nomineeID, err := id.ParseNomineeID(c.NomineeID)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	principalID, err := id.ParsePrincipalID(c.LinkedPrincipalID)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return &Payload{
		NomineeID:         nomineeID,
		LinkedPrincipalID: principalID,
		Purpose:           c.Purpose,
		ExpiresAt:         c.ExpiresAt.Time,
	}, nil
}
