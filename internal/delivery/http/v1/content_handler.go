package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUC domain.ContentUsecase
}

func NewContentHandler(public *gin.RouterGroup, contentUC domain.ContentUsecase) {
	handler := &ContentHandler{contentUC: contentUC}
	public.GET("/content/:page", handler.GetPage)
}

// GetPage godoc
// @Summary      Get published content of a site page
// @Tags         content
// @Produce      json
// @Param        page  path      string  true  "HOME, ABOUT, TRAINING, CAPABILITIES or CONTACT"
// @Success      200   {object}  response.Response{data=[]domain.ContentSection}
// @Failure      404   {object}  response.Response
// @Router       /content/{page} [get]
func (h *ContentHandler) GetPage(c *gin.Context) {
	sections, err := h.contentUC.GetPage(c.Request.Context(), c.Param("page"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Cache-Control", "public, max-age=300")
	response.Success(c, http.StatusOK, "Page content", sections)
}
