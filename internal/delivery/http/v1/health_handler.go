package v1

import (
	"net/http"

	"go-staffing-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

// NewHealthHandler registers the unauthenticated liveness probe.
func NewHealthHandler(r gin.IRoutes, healthUC usecase.HealthUsecase) {
	r.GET("/health", func(c *gin.Context) {
		status, healthy := healthUC.Check(c.Request.Context())
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}
