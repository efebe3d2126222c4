package v1

import (
	"fmt"
	"net/http"
	"strings"

	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	r.POST("/jobs/:id/apply", handler.ApplyToJob)

	applications := r.Group("/applications")
	{
		applications.GET("/me", handler.GetMyApplications)
		applications.GET("/:id", handler.GetApplicationDetail)
		applications.PATCH("/:id/status", handler.UpdateApplicationStatus)
	}

	employer := r.Group("/employer/jobs")
	{
		employer.GET("/:id/applications", handler.ListJobApplications)
		employer.GET("/:id/applications/export", handler.ExportJobApplications)
	}
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Candidate only. The job must be active and before its deadline.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                              true   "Job ID"
// @Param        body  body      domain.SubmitApplicationRequest  false  "Cover letter"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	jobID, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.SubmitApplicationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest("Invalid request body"))
			return
		}
	}

	app, err := h.applicationUC.SubmitApplication(c.Request.Context(), middleware.IdentityFrom(c), jobID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// GetMyApplications godoc
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /applications/me [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	apps, err := h.applicationUC.ListMyApplications(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// GetApplicationDetail godoc
// @Summary      Get application
// @Description  Visible to the applicant, the job's employer and admins.
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.ApplicationDetails}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplicationDetail(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	details, err := h.applicationUC.GetApplicationDetails(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", details)
}

// UpdateApplicationStatus godoc
// @Summary      Change application status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                                     true  "Application ID"
// @Param        body  body      domain.UpdateApplicationStatusRequest  true  "Status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      403   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("status is required"))
		return
	}

	status := domain.ApplicationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	app, err := h.applicationUC.SetApplicationStatus(c.Request.Context(), middleware.IdentityFrom(c), id, status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// ListJobApplications godoc
// @Summary      List applicants of a job
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Router       /employer/jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	jobID, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	apps, err := h.applicationUC.ListJobApplications(c.Request.Context(), middleware.IdentityFrom(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ExportJobApplications godoc
// @Summary      Export applicants as xlsx
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  int  true  "Job ID"
// @Success      200  {file}  binary
// @Failure      403  {object}  response.Response
// @Router       /employer/jobs/{id}/applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ExportJobApplications(c *gin.Context) {
	jobID, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	data, filename, err := h.applicationUC.ExportJobApplications(c.Request.Context(), middleware.IdentityFrom(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
