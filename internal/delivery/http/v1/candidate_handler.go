package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
	resumeUC    domain.ResumeUsecase
}

// NewCandidateHandler registers profile and resume routes. uploadLimit guards every
// route that accepts a file.
func NewCandidateHandler(protected *gin.RouterGroup, candidateUC domain.CandidateUsecase, resumeUC domain.ResumeUsecase, uploadLimit gin.HandlerFunc) {
	handler := &CandidateHandler{candidateUC: candidateUC, resumeUC: resumeUC}

	candidates := protected.Group("/candidates")
	{
		candidates.POST("/profile", uploadLimit, handler.CreateProfile)
		candidates.GET("/me", handler.GetMyProfile)
		candidates.GET("/:id", handler.GetProfile)
		candidates.PUT("/:id", uploadLimit, handler.UpdateProfile)

		candidates.POST("/:id/resume", uploadLimit, handler.UploadResume)
		candidates.DELETE("/:id/resume", handler.DeleteResume)
		candidates.GET("/:id/resume/link", handler.GetResumeLink)
		candidates.GET("/:id/resume/availability", handler.CheckResumeAvailability)
	}
}

// CreateProfile godoc
// @Summary      Create candidate profile
// @Description  Submits the intake form. Accepts JSON, or multipart with a "profile" JSON field and an optional "resume" file (PDF/DOC/DOCX, 5MB). Admins may pass user_id to create for another candidate.
// @Tags         candidates
// @Accept       json,mpfd
// @Produce      json
// @Param        profile  body      domain.ProfileDraft  true   "Profile draft"
// @Param        user_id  query     string               false  "Owner user id (admin only)"
// @Success      201      {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /candidates/profile [post]
// @Security     BearerAuth
func (h *CandidateHandler) CreateProfile(c *gin.Context) {
	draft, err := bindProfileDraft(c)
	if err != nil {
		c.Error(err)
		return
	}
	resume, err := readUpload(c, "resume", security.ProfileResumePolicy.MaxBytes)
	if err != nil {
		c.Error(err)
		return
	}

	profile, err := h.candidateUC.CreateProfile(c.Request.Context(), middleware.IdentityFrom(c), c.Query("user_id"), draft, resume)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Profile created", profile)
}

// UpdateProfile godoc
// @Summary      Update candidate profile
// @Description  Replaces the profile and reconciles educations, certifications and work experiences. Switching candidate_type clears the previous type's fields.
// @Tags         candidates
// @Accept       json,mpfd
// @Produce      json
// @Param        id       path      string               true  "Candidate profile ID"
// @Param        profile  body      domain.ProfileDraft  true  "Profile draft"
// @Success      200      {object}  response.Response{data=domain.CandidateProfile}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /candidates/{id} [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	draft, err := bindProfileDraft(c)
	if err != nil {
		c.Error(err)
		return
	}
	resume, err := readUpload(c, "resume", security.ProfileResumePolicy.MaxBytes)
	if err != nil {
		c.Error(err)
		return
	}

	profile, err := h.candidateUC.UpdateProfile(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), draft, resume)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// GetMyProfile godoc
// @Summary      Get own candidate profile
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.candidateUC.GetMyProfile(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Employers and admins can read any profile, candidates only their own.
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate profile ID"
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	profile, err := h.candidateUC.GetProfile(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UploadResume godoc
// @Summary      Upload resume
// @Description  PDF only, at most 1MB. Replaces the current resume.
// @Tags         resumes
// @Accept       mpfd
// @Produce      json
// @Param        id    path      string  true  "Candidate profile ID"
// @Param        file  formData  file    true  "Resume PDF"
// @Success      201   {object}  response.Response{data=domain.ResumeUploadResult}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /candidates/{id}/resume [post]
// @Security     BearerAuth
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	file, err := readUpload(c, "file", security.StandaloneResumePolicy.MaxBytes)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.resumeUC.UploadResume(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), file)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume uploaded", result)
}

// DeleteResume godoc
// @Summary      Delete resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Candidate profile ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/resume [delete]
// @Security     BearerAuth
func (h *CandidateHandler) DeleteResume(c *gin.Context) {
	if err := h.resumeUC.DeleteResume(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted", nil)
}

// GetResumeLink godoc
// @Summary      Get resume download link
// @Description  Returns a signed URL valid for one hour.
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Candidate profile ID"
// @Success      200  {object}  response.Response{data=domain.SignedURL}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/resume/link [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetResumeLink(c *gin.Context) {
	link, err := h.resumeUC.GetResumeDownloadLink(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume link generated", link)
}

// CheckResumeAvailability godoc
// @Summary      Check resume availability
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Candidate profile ID"
// @Success      200  {object}  response.Response{data=domain.ResumeAvailability}
// @Router       /candidates/{id}/resume/availability [get]
// @Security     BearerAuth
func (h *CandidateHandler) CheckResumeAvailability(c *gin.Context) {
	res, err := h.resumeUC.CheckResumeAvailability(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume availability", res)
}
