package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC   domain.AdminUsecase
	authUC    domain.AuthUsecase
	contentUC domain.ContentUsecase
	healthUC  usecase.HealthUsecase
}

// NewAdminHandler registers the admin console. Every route requires the ADMIN role.
func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase, authUC domain.AuthUsecase, contentUC domain.ContentUsecase, healthUC usecase.HealthUsecase) {
	handler := &AdminHandler{adminUC: adminUC, authUC: authUC, contentUC: contentUC, healthUC: healthUC}

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/stats", handler.GetStats)

		admin.GET("/users", handler.ListUsers)
		admin.GET("/users/check-email", handler.CheckEmail)
		admin.PATCH("/users/:id/role", handler.AssignRole)
		admin.PATCH("/users/:id/disable", handler.DisableUser)

		admin.GET("/candidates", handler.ListCandidates)
		admin.GET("/jobs", handler.ListJobs)
		admin.GET("/applications", handler.ListApplications)

		admin.GET("/content/:page", handler.ListSections)
		admin.POST("/content", handler.CreateSection)
		admin.PUT("/content/:id", handler.UpdateSection)
		admin.DELETE("/content/:id", handler.DeleteSection)
	}
}

// GetStats godoc
// @Summary      Get admin dashboard statistics
// @Description  Users by role, candidates by type, jobs and applications by status, plus system health.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.AdminStats}
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	if h.healthUC != nil {
		status, healthy := h.healthUC.Check(c.Request.Context())
		stats.SystemHealth = domain.SystemHealth{Status: "healthy", LastChecked: time.Now().UTC().Format(time.RFC3339)}
		switch {
		case !healthy:
			stats.SystemHealth.Status = "down"
		case status["status"] == "degraded":
			stats.SystemHealth.Status = "degraded"
		}
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role       query     string  false  "CANDIDATE, EMPLOYER or ADMIN"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Items per page"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.AdminUser]}
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	result, err := h.adminUC.ListUsers(c.Request.Context(), middleware.IdentityFrom(c), c.Query("role"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users list", result)
}

// CheckEmail godoc
// @Summary      Check whether an email is registered
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Email"
// @Success      200    {object}  response.Response
// @Router       /admin/users/check-email [get]
func (h *AdminHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.Error(apperror.BadRequest("email is required"))
		return
	}
	exists, err := h.authUC.CheckEmailExists(c.Request.Context(), email)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email checked", gin.H{"exists": exists})
}

// AssignRole godoc
// @Summary      Change a user's role
// @Description  company_id is kept only for EMPLOYER.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "User ID"
// @Param        body  body      domain.AssignRoleRequest  true  "Role"
// @Success      200   {object}  response.Response{data=domain.User}
// @Router       /admin/users/{id}/role [patch]
func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req domain.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("role must be one of CANDIDATE, EMPLOYER, ADMIN"))
		return
	}
	user, err := h.authUC.AssignRole(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role updated", user)
}

// DisableUser godoc
// @Summary      Disable or enable a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "User ID"
// @Param        body  body      object  true  "{ disable: bool }"
// @Success      200   {object}  response.Response{data=domain.User}
// @Router       /admin/users/{id}/disable [patch]
func (h *AdminHandler) DisableUser(c *gin.Context) {
	var body struct {
		Disable bool `json:"disable"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	user, err := h.adminUC.DisableUser(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), body.Disable)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", user)
}

// ListCandidates godoc
// @Summary      List candidates
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        candidate_type  query     string  false  "REGULAR, PWD, LGBTQ or WOMEN_RETURNING"
// @Param        q               query     string  false  "Name or email search"
// @Param        page            query     int     false  "Page number"
// @Param        page_size       query     int     false  "Items per page"
// @Success      200             {object}  response.Response{data=domain.PaginatedResult[domain.CandidateProfile]}
// @Router       /admin/candidates [get]
func (h *AdminHandler) ListCandidates(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := domain.CandidateFilter{CandidateType: c.Query("candidate_type"), Search: c.Query("q")}

	result, err := h.adminUC.ListCandidates(c.Request.Context(), middleware.IdentityFrom(c), filter, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidates list", result)
}

// ListJobs godoc
// @Summary      List jobs for moderation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        active     query     bool  false  "Filter by active flag"
// @Param        page       query     int   false  "Page number"
// @Param        page_size  query     int   false  "Items per page"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.AdminJob]}
// @Router       /admin/jobs [get]
func (h *AdminHandler) ListJobs(c *gin.Context) {
	var active *bool
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(apperror.BadRequest("active must be true or false"))
			return
		}
		active = &v
	}
	page, pageSize := pageParams(c)

	result, err := h.adminUC.ListJobs(c.Request.Context(), middleware.IdentityFrom(c), active, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs list", result)
}

// ListApplications godoc
// @Summary      List applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Application status"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Items per page"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Application]}
// @Router       /admin/applications [get]
func (h *AdminHandler) ListApplications(c *gin.Context) {
	page, pageSize := pageParams(c)
	result, err := h.adminUC.ListApplications(c.Request.Context(), middleware.IdentityFrom(c), c.Query("status"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications list", result)
}

// ListSections godoc
// @Summary      List content sections of a page, drafts included
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page  path      string  true  "HOME, ABOUT, TRAINING, CAPABILITIES or CONTACT"
// @Success      200   {object}  response.Response{data=[]domain.ContentSection}
// @Router       /admin/content/{page} [get]
func (h *AdminHandler) ListSections(c *gin.Context) {
	sections, err := h.contentUC.ListSections(c.Request.Context(), c.Param("page"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Sections retrieved", sections)
}

// CreateSection godoc
// @Summary      Create content section
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ContentSectionInput  true  "Section"
// @Success      201   {object}  response.Response{data=domain.ContentSection}
// @Router       /admin/content [post]
func (h *AdminHandler) CreateSection(c *gin.Context) {
	var input domain.ContentSectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	section, err := h.contentUC.CreateSection(c.Request.Context(), &input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Section created", section)
}

// UpdateSection godoc
// @Summary      Update content section
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "Section ID"
// @Param        body  body      domain.ContentSectionInput  true  "Section"
// @Success      200   {object}  response.Response{data=domain.ContentSection}
// @Router       /admin/content/{id} [put]
func (h *AdminHandler) UpdateSection(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var input domain.ContentSectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	section, err := h.contentUC.UpdateSection(c.Request.Context(), id, &input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section updated", section)
}

// DeleteSection godoc
// @Summary      Delete content section
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Section ID"
// @Success      200  {object}  response.Response
// @Router       /admin/content/{id} [delete]
func (h *AdminHandler) DeleteSection(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.contentUC.DeleteSection(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section deleted", nil)
}
