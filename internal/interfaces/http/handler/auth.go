package handler

import (
	"net/http"
	"time"

	appidentity "github.com/agencydesk/backend/internal/application/identity"
	"github.com/agencydesk/backend/internal/infrastructure/config"
	"github.com/agencydesk/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles sign-in and sign-out
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	cookieCfg   config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieCfg:   cookieCfg,
	}
}

// SignInRequest represents the sign-in request body
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse represents the signed-in user
type SignInResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignIn verifies credentials and sets the session cookie
// POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Email and password are required")
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, int(time.Until(result.ExpiresAt).Seconds()))

	h.Success(c, SignInResponse{
		ID:        result.User.ID,
		Name:      result.User.Name,
		Email:     result.User.Email,
		ExpiresAt: result.ExpiresAt,
	})
}

// SignOut revokes the session token and clears the cookie
// POST /api/v1/auth/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, err := c.Cookie(h.cookieCfg.Name)
	if err == nil && token != "" {
		if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	h.Success(c, gin.H{"signed_out": true})
}

// Me returns the current session's user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetSessionClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, gin.H{
		"id":    claims.UserID,
		"name":  claims.Name,
		"email": claims.Email,
	})
}

// setSessionCookie writes the auth cookie with the configured attributes
func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(parseSameSite(h.cookieCfg.SameSite))
	c.SetCookie(
		h.cookieCfg.Name,
		value,
		maxAge,
		h.cookieCfg.Path,
		h.cookieCfg.Domain,
		h.cookieCfg.Secure,
		true, // httpOnly, the token is never exposed to scripts
	)
}

// parseSameSite maps the configured policy name to http.SameSite
func parseSameSite(policy string) http.SameSite {
	switch policy {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
