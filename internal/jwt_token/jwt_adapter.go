package jwttoken

import (
	authmw "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/auth"
)

func ToMiddlewareClaims(claims *Claims) *authmw.Claims {
	return &authmw.Claims{
		PrincipalID: claims.PrincipalID,
		SessionID:   claims.SessionID,
		JTI:         claims.ID,
	}
}

// JWTServiceAdapter exposes JWTService as an authmw.TokenValidator.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
