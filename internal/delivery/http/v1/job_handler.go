package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Public listing only ever returns active, non-expired jobs
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.PublicList)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.PATCH("/:id/visibility", handler.SetVisibility)
		protectedJobs.DELETE("/:id", handler.Delete)
	}

	protected.GET("/employer/jobs", handler.ListByEmployer)
}

type VisibilityRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// PublicList godoc
// @Summary      List open jobs
// @Description  Active jobs whose deadline has not passed. candidate_type keeps jobs aimed at that type or at everyone.
// @Tags         jobs
// @Produce      json
// @Param        candidate_type  query     string  false  "REGULAR, PWD, LGBTQ or WOMEN_RETURNING"
// @Param        category        query     string  false  "Category"
// @Param        work_mode       query     string  false  "ONSITE, REMOTE or HYBRID"
// @Param        q               query     string  false  "Title search"
// @Param        page            query     int     false  "Page number"
// @Param        page_size       query     int     false  "Page size"
// @Success      200             {object}  response.Response{data=domain.PaginatedResult[domain.JobWithCompany]}
// @Router       /jobs [get]
func (h *JobHandler) PublicList(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := domain.JobFilter{
		CandidateType: c.Query("candidate_type"),
		Category:      c.Query("category"),
		WorkMode:      c.Query("work_mode"),
		Search:        c.Query("q"),
	}

	result, err := h.jobUC.ListPublicJobs(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", result)
}

// GetDetails godoc
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobWithCompany}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// Create godoc
// @Summary      Create job
// @Description  Employer only, posted under the employer's company.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      403  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var input domain.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), middleware.IdentityFrom(c), &input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int              true  "Job ID"
// @Param        job  body      domain.JobInput  true  "Job"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var input domain.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), middleware.IdentityFrom(c), id, &input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// SetVisibility godoc
// @Summary      Pause or resume a job
// @Description  Hides or shows a job without deleting it.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Job ID"
// @Param        body  body      VisibilityRequest  true  "Visibility"
// @Success      200   {object}  response.Response{data=domain.Job}
// @Router       /jobs/{id}/visibility [patch]
// @Security     BearerAuth
func (h *JobHandler) SetVisibility(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("is_active is required"))
		return
	}

	job, err := h.jobUC.SetVisibility(c.Request.Context(), middleware.IdentityFrom(c), id, *req.IsActive)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job visibility updated", job)
}

// Delete godoc
// @Summary      Delete job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.jobUC.DeleteJob(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// ListByEmployer godoc
// @Summary      List own company's jobs
// @Description  Includes paused and expired jobs.
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Job]}
// @Router       /employer/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListByEmployer(c *gin.Context) {
	page, pageSize := pageParams(c)
	result, err := h.jobUC.ListCompanyJobs(c.Request.Context(), middleware.IdentityFrom(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", result)
}
