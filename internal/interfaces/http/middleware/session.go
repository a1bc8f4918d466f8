package middleware

import (
	"net/http"
	"strings"

	appidentity "github.com/agencydesk/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// Context keys for the authenticated session
const (
	SessionClaimsKey = "session_claims"
	SessionUserIDKey = "session_user_id"
)

// SignInPath is where unauthenticated browser requests are redirected
const SignInPath = "/signin"

// DashboardPath is where already-authenticated requests to the sign-in
// page are redirected
const DashboardPath = "/dashboard"

// RequireSession gates routes behind a valid session cookie. API clients
// get a 401 JSON response; requests that accept HTML are redirected to
// the sign-in page instead.
func RequireSession(cookieName string, tokens appidentity.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			rejectUnauthenticated(c)
			return
		}

		claims, err := tokens.Validate(c.Request.Context(), token)
		if err != nil {
			rejectUnauthenticated(c)
			return
		}

		c.Set(SessionClaimsKey, claims)
		c.Set(SessionUserIDKey, claims.UserID)
		c.Next()
	}
}

// RedirectIfAuthenticated sends requests carrying a valid session away
// from the sign-in page
func RedirectIfAuthenticated(cookieName string, tokens appidentity.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		if _, err := tokens.Validate(c.Request.Context(), token); err != nil {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, DashboardPath)
		c.Abort()
	}
}

// GetSessionClaims returns the validated session claims, or nil outside
// a RequireSession-gated route
func GetSessionClaims(c *gin.Context) *appidentity.SessionClaims {
	if v, exists := c.Get(SessionClaimsKey); exists {
		if claims, ok := v.(*appidentity.SessionClaims); ok {
			return claims
		}
	}
	return nil
}

// GetSessionUserID returns the authenticated user's ID, or 0
func GetSessionUserID(c *gin.Context) uint {
	if v, exists := c.Get(SessionUserIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// rejectUnauthenticated answers an unauthenticated request according to
// what the client accepts
func rejectUnauthenticated(c *gin.Context) {
	if acceptsHTML(c) {
		c.Redirect(http.StatusFound, SignInPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"},
	})
}

// acceptsHTML reports whether the request prefers an HTML response
func acceptsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}
