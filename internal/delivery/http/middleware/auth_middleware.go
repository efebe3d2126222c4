package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-staffing-backend/config"
	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/auth"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookieName = "auth_token"
	keyUserName    = "UserName"
	keyCookieAuth  = "CookieAuth"
)

// UserLoader resolves the local user row for a verified token subject.
type UserLoader interface {
	GetCurrentUser(ctx context.Context, id string) (*domain.User, error)
}

// TokenMiddleware verifies the bearer or cookie token and stores the subject and email.
// It does not require a local user row, so it guards only the sync endpoint.
func TokenMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifyToken(c, jwksProvider, cfg) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthMiddleware verifies the token, then loads the user to obtain role and company.
// The role claim inside the token is never trusted.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifyToken(c, jwksProvider, cfg) {
			c.Abort()
			return
		}

		userID := c.GetString(string(domain.KeyUserID))
		user, err := users.GetCurrentUser(c.Request.Context(), userID)
		if err != nil {
			if appErr, ok := apperror.As(err); ok && appErr.Code == http.StatusNotFound {
				response.Abort(c, http.StatusUnauthorized, "User not found, sync your account first")
				return
			}
			logger.Log.Error("auth user lookup failed", "user_id", userID, "error", err)
			response.Abort(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
			return
		}
		if user.IsDisabled {
			response.Abort(c, http.StatusForbidden, "Account is disabled")
			return
		}

		setIdentity(c, user.Identity())
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		security.DefaultLogger().LogUnauthorizedAccess(c.Request.Context(),
			c.GetString(string(domain.KeyUserID)), role, "route", c.FullPath())
		response.Abort(c, http.StatusForbidden, "Insufficient permissions")
	}
}

// IdentityFrom returns the caller placed on the context by AuthMiddleware.
func IdentityFrom(c *gin.Context) domain.Identity {
	id := domain.Identity{
		UserID: c.GetString(string(domain.KeyUserID)),
		Email:  c.GetString(string(domain.KeyUserEmail)),
		Role:   c.GetString(string(domain.KeyUserRole)),
	}
	if v, ok := c.Get(string(domain.KeyCompanyID)); ok {
		if companyID, ok := v.(int64); ok {
			id.CompanyID = &companyID
		}
	}
	return id
}

// NameFrom returns the display name carried in the token metadata, if any.
func NameFrom(c *gin.Context) *string {
	if name := c.GetString(keyUserName); name != "" {
		return &name
	}
	return nil
}

func setIdentity(c *gin.Context, id domain.Identity) {
	c.Set(string(domain.KeyUserID), id.UserID)
	c.Set(string(domain.KeyUserEmail), id.Email)
	c.Set(string(domain.KeyUserRole), id.Role)

	ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, id.UserID)
	ctx = context.WithValue(ctx, domain.KeyUserRole, id.Role)
	if id.CompanyID != nil {
		c.Set(string(domain.KeyCompanyID), *id.CompanyID)
		ctx = context.WithValue(ctx, domain.KeyCompanyID, *id.CompanyID)
	}
	c.Request = c.Request.WithContext(ctx)
}

func verifyToken(c *gin.Context, jwksProvider *auth.Provider, cfg *config.Config) bool {
	tokenString, fromCookie := extractToken(c)
	if tokenString == "" {
		response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if cfg.SupabaseJWTSecret == "" {
				return nil, errors.New("HS256 token received but SUPABASE_JWT_SECRET is not configured")
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		case *jwt.SigningMethodRSA:
			if jwksProvider == nil {
				return nil, errors.New("RS256 token received but no JWKS endpoint is configured")
			}
			return jwksProvider.KeyFunc(token)
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		reason := "invalid"
		if err != nil {
			reason = err.Error()
		}
		security.DefaultLogger().LogInvalidToken(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(),
			c.GetString(string(domain.KeyRequestID)), reason)
		message := "Invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			message = "Token has expired"
		}
		response.Error(c, http.StatusUnauthorized, message, nil)
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
		return false
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		response.Error(c, http.StatusUnauthorized, "Token has no subject", nil)
		return false
	}
	email, _ := claims["email"].(string)

	c.Set(string(domain.KeyUserID), sub)
	c.Set(string(domain.KeyUserEmail), email)
	c.Set(keyCookieAuth, fromCookie)
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if name, ok := meta["full_name"].(string); ok {
			c.Set(keyUserName, strings.TrimSpace(name))
		}
	}
	return true
}

func extractToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1]), false
		}
		return "", false
	}
	if cookie, err := c.Cookie(authCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
