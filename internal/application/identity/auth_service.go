package identity

import (
	"context"
	"errors"
	"time"

	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
	"github.com/dotmart/backend/internal/infrastructure/auth"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// TokenIssuer signs access and refresh tokens
type TokenIssuer interface {
	GenerateTokenPair(sub auth.Subject) (*auth.TokenPair, error)
	GenerateAccessToken(sub auth.Subject) (string, error)
	GetAccessTokenExpiration() time.Duration
}

// RefreshTokenVerifier validates refresh tokens and revokes tokens on logout
type RefreshTokenVerifier interface {
	VerifyRefreshToken(ctx context.Context, token string) (*auth.Claims, error)
	RevokeToken(ctx context.Context, claims *auth.Claims) error
}

var (
	errAccountInactive   = shared.Forbidden("Your account is not active. Please contact support.")
	errWrongPassword     = shared.Unauthorized("Password is incorrect")
	errMissingRefresh    = shared.Unauthorized("Refresh token is missing")
	errInvalidRefreshJWT = shared.Unauthorized("You are not authorized!")
)

// AuthService handles login, token refresh and logout
type AuthService struct {
	userRepo identity.UserRepository
	issuer   TokenIssuer
	verifier RefreshTokenVerifier
	hasher   identity.PasswordHasher
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	issuer TokenIssuer,
	verifier RefreshTokenVerifier,
	hasher identity.PasswordHasher,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		verifier: verifier,
		hasher:   hasher,
		logger:   logger,
	}
}

// Login checks credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "login")
	defer span.End()

	email := valueobject.NormalizeEmail(req.Email)
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !shared.IsNotFound(err) {
			telemetry.RecordError(span, err)
		}
		s.logger.Info("login failed: unknown email", zap.String("email", email))
		return nil, err
	}

	if !user.IsActive() {
		s.logger.Info("login refused: inactive account", zap.String("user_id", user.ID.String()))
		return nil, errAccountInactive
	}
	if !user.VerifyPassword(req.Password, s.hasher) {
		s.logger.Info("login failed: wrong password", zap.String("user_id", user.ID.String()))
		return nil, errWrongPassword
	}

	pair, err := s.issuer.GenerateTokenPair(subjectOf(user))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrUserID, user.ID.String())
	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}, nil
}

// RefreshToken issues a new access token for a valid refresh token.
// The refresh token itself is not rotated.
func (s *AuthService) RefreshToken(ctx context.Context, token string) (*RefreshResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "refresh")
	defer span.End()

	if token == "" {
		return nil, errMissingRefresh
	}

	claims, err := s.verifier.VerifyRefreshToken(ctx, token)
	if err != nil {
		s.logger.Debug("refresh token rejected", zap.Error(err))
		if isTokenError(err) {
			return nil, errInvalidRefreshJWT
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, errInvalidRefreshJWT
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, errAccountInactive
	}

	accessToken, err := s.issuer.GenerateAccessToken(subjectOf(user))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrUserID, user.ID.String())
	return &RefreshResult{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(s.issuer.GetAccessTokenExpiration()),
	}, nil
}

// Logout revokes the presented access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "logout")
	defer span.End()

	if claims == nil {
		return nil
	}
	if err := s.verifier.RevokeToken(ctx, claims); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.logger.Info("user logged out", zap.String("user_id", claims.Subject))
	return nil
}

func subjectOf(u *identity.User) auth.Subject {
	return auth.Subject{UserID: u.ID, Email: u.Email, Role: string(u.Role)}
}

func isTokenError(err error) bool {
	for _, target := range []error{
		auth.ErrInvalidToken,
		auth.ErrExpiredToken,
		auth.ErrInvalidTokenType,
		auth.ErrInvalidClaims,
		auth.ErrTokenNotYetValid,
		auth.ErrMissingUserID,
		auth.ErrTokenBlacklisted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
