package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(public, protected *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	public.GET("/companies/:id", handler.GetCompany)

	employer := protected.Group("/employer/company", middleware.RequireRole(domain.RoleEmployer))
	{
		employer.GET("", handler.GetMyCompany)
		employer.POST("", handler.CreateMyCompany)
		employer.PUT("", handler.UpdateMyCompany)
	}
}

// GetCompany godoc
// @Summary      Get company
// @Tags         companies
// @Produce      json
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	company, err := h.companyUC.GetCompany(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company retrieved", company)
}

// GetMyCompany godoc
// @Summary      Get the employer's company
// @Tags         employer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      404  {object}  response.Response
// @Router       /employer/company [get]
func (h *CompanyHandler) GetMyCompany(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity.CompanyID == nil {
		c.Error(apperror.NotFound("No company is attached to this account"))
		return
	}
	company, err := h.companyUC.GetCompany(c.Request.Context(), *identity.CompanyID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company retrieved", company)
}

// CreateMyCompany godoc
// @Summary      Create the employer's company
// @Description  Creates the company and attaches the calling employer to it.
// @Tags         employer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CompanyInput  true  "Company"
// @Success      201   {object}  response.Response{data=domain.Company}
// @Failure      409   {object}  response.Response
// @Router       /employer/company [post]
func (h *CompanyHandler) CreateMyCompany(c *gin.Context) {
	var input domain.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	company, err := h.companyUC.CreateMyCompany(c.Request.Context(), middleware.IdentityFrom(c), &input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created", company)
}

// UpdateMyCompany godoc
// @Summary      Update the employer's company
// @Tags         employer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CompanyInput  true  "Company"
// @Success      200   {object}  response.Response{data=domain.Company}
// @Router       /employer/company [put]
func (h *CompanyHandler) UpdateMyCompany(c *gin.Context) {
	var input domain.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	company, err := h.companyUC.UpdateMyCompany(c.Request.Context(), middleware.IdentityFrom(c), &input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company updated", company)
}
