package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC      domain.AuthUsecase
	candidateUC domain.CandidateUsecase
}

// NewAuthHandler registers the sync endpoint on the token-only group and the
// account endpoints on the fully authenticated group.
func NewAuthHandler(tokenOnly, protected *gin.RouterGroup, authUC domain.AuthUsecase, candidateUC domain.CandidateUsecase) {
	handler := &AuthHandler{authUC: authUC, candidateUC: candidateUC}

	tokenOnly.POST("/auth/sync", handler.SyncProfile)

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

// SyncProfile godoc
// @Summary      Sync the signed-in user
// @Description  Creates the local user row on first sign-in. New users start as CANDIDATE.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/sync [post]
func (h *AuthHandler) SyncProfile(c *gin.Context) {
	user := &domain.User{
		ID:    c.GetString(string(domain.KeyUserID)),
		Email: c.GetString(string(domain.KeyUserEmail)),
		Name:  middleware.NameFrom(c),
	}
	if user.Email == "" {
		c.Error(apperror.BadRequest("token carries no email"))
		return
	}

	if err := h.authUC.EnsureUserExists(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}
	if user.IsDisabled {
		c.Error(apperror.Forbidden("Account is disabled"))
		return
	}

	response.Success(c, http.StatusOK, "Profile synced", user)
}

// Me godoc
// @Summary      Get current user
// @Description  Returns the user and, for candidates, whether a profile exists.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), identity.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	var profileCompleted *bool
	if user.Role == domain.RoleCandidate {
		done := false
		if _, err := h.candidateUC.GetMyProfile(c.Request.Context(), identity); err == nil {
			done = true
		} else if appErr, ok := apperror.As(err); !ok || appErr.Code != http.StatusNotFound {
			c.Error(err)
			return
		}
		profileCompleted = &done
	}

	response.Success(c, http.StatusOK, "User details", gin.H{
		"user":              user,
		"profile_completed": profileCompleted,
	})
}
