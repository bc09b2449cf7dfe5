package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TokenVerifier validates access tokens and consults the blacklist
type TokenVerifier struct {
	jwt       *JWTService
	blacklist TokenBlacklist
}

// NewTokenVerifier creates a TokenVerifier
func NewTokenVerifier(jwt *JWTService, blacklist TokenBlacklist) *TokenVerifier {
	return &TokenVerifier{jwt: jwt, blacklist: blacklist}
}

// VerifyAccessToken returns the claims of a valid, unrevoked access token
func (v *TokenVerifier) VerifyAccessToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := v.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	return v.checkRevocation(ctx, claims)
}

// VerifyRefreshToken returns the claims of a valid refresh token whose user has not been revoked since it was issued
func (v *TokenVerifier) VerifyRefreshToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := v.jwt.ValidateRefreshToken(token)
	if err != nil {
		return nil, err
	}
	return v.checkRevocation(ctx, claims)
}

func (v *TokenVerifier) checkRevocation(ctx context.Context, claims *Claims) (*Claims, error) {
	revoked, err := v.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("checking token blacklist: %w", err)
	}
	if revoked {
		return nil, ErrTokenBlacklisted
	}
	invalidated, err := v.blacklist.IsUserTokenInvalidated(ctx, claims.Subject, claims.GetIssuedAtTime())
	if err != nil {
		return nil, fmt.Errorf("checking user token invalidation: %w", err)
	}
	if invalidated {
		return nil, ErrTokenBlacklisted
	}
	return claims, nil
}

// RevokeToken blacklists one token for the rest of its lifetime
func (v *TokenVerifier) RevokeToken(ctx context.Context, claims *Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return v.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

// RevokeUser invalidates every token issued to the user so far.
// The marker lives as long as the longest-lived token.
func (v *TokenVerifier) RevokeUser(ctx context.Context, userID uuid.UUID) error {
	return v.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), v.jwt.GetRefreshTokenExpiration())
}
