package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"go-staffing-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	CSRFTokenCookieName = "csrf_token"
	CSRFTokenHeaderName = "X-CSRF-Token"
	// 32 bytes = 64 hex chars
	CSRFTokenLength = 32
	CSRFTokenExpiry = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	b := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// CSRFMiddleware implements the double-submit cookie pattern for requests that
// authenticate with the auth_token cookie. Bearer-token requests cannot be forged
// cross-site and are not checked.
//
// The frontend reads the csrf_token cookie and echoes it in X-CSRF-Token on every
// POST, PUT, PATCH and DELETE.
func CSRFMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Abort(c, http.StatusInternalServerError, "Failed to generate security token")
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			// HttpOnly is off so the frontend can read it
			c.SetCookie(CSRFTokenCookieName, newToken, int(CSRFTokenExpiry.Seconds()), "/", "", secureCookie, false)
			csrfCookie = newToken
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}
		if authCookie, err := c.Cookie(authCookieName); err != nil || authCookie == "" {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			response.Abort(c, http.StatusForbidden, "Missing CSRF token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(headerToken), []byte(csrfCookie)) != 1 {
			response.Abort(c, http.StatusForbidden, "Invalid CSRF token")
			return
		}

		c.Next()
	}
}
