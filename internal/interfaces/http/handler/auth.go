package handler

import (
	"net/http"
	"strings"

	identityapp "github.com/dotmart/backend/internal/application/identity"
	"github.com/dotmart/backend/internal/infrastructure/config"
	"github.com/dotmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// TokenResponse carries an access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// AuthHandler handles login, refresh and logout
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Login godoc
// @Summary      Log in with email and password
// @Description  Sets httpOnly accessToken and refreshToken cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=TokenResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response "wrong password"
// @Failure      403 {object} dto.Response "account blocked"
// @Failure      404 {object} dto.Response "unknown email"
// @Failure      429 {object} dto.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	maxAge := int(h.cookie.MaxAge.Seconds())
	h.setCookie(c, accessTokenCookie, result.AccessToken, maxAge)
	h.setCookie(c, refreshTokenCookie, result.RefreshToken, maxAge)
	h.Success(c, "User logged in successfully", TokenResponse{AccessToken: result.AccessToken})
}

// RefreshToken godoc
// @Summary      Issue a new access token from the refresh cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=TokenResponse}
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response "account blocked"
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(refreshTokenCookie)
	result, err := h.authService.RefreshToken(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Refresh token processed successfully", TokenResponse{AccessToken: result.AccessToken})
}

// Logout godoc
// @Summary      Revoke the presented access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, accessTokenCookie, "", -1)
	h.setCookie(c, refreshTokenCookie, "", -1)
	h.Success(c, "User logged out successfully", nil)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(name, value, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func sameSiteMode(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
