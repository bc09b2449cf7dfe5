package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/dotmart/backend/internal/infrastructure/auth"
	"github.com/dotmart/backend/internal/infrastructure/logger"
	"github.com/dotmart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// ClaimsKey holds the verified *auth.Claims
	ClaimsKey = "auth_claims"
	// UserIDKey holds the subject id as a string; the request logger reads it
	UserIDKey = "user_id"
	// UserRoleKey holds the subject role
	UserRoleKey = "user_role"
)

const (
	msgNotAuthorized = "You are not authorized!"
	msgNoPermission  = "You do not have permission to access this resource"
)

// AccessTokenVerifier checks an access token and returns its claims.
// *auth.TokenVerifier satisfies it.
type AccessTokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*auth.Claims, error)
}

// Authenticate requires a valid access token in the Authorization header. The
// raw token is accepted as well as the "Bearer <token>" form. When roles are
// given the subject's role must be one of them.
func Authenticate(verifier AccessTokenVerifier, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			abortAuth(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, msgNotAuthorized)
			return
		}

		ctx := c.Request.Context()
		claims, err := verifier.VerifyAccessToken(ctx, token)
		if err != nil {
			logger.L(ctx).Debug("access token rejected", zap.Error(err))
			abortAuth(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, msgNotAuthorized)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, claims.Subject))

		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			abortAuth(c, http.StatusForbidden, dto.ErrCodeForbidden, msgNoPermission)
			return
		}
		c.Next()
	}
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func abortAuth(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetClaims returns the verified claims, or nil on public routes
func GetClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// GetUserID returns the authenticated subject id
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// HasRole reports whether the authenticated subject has the role
func HasRole(c *gin.Context, role string) bool {
	return c.GetString(UserRoleKey) == role
}
