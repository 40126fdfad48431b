package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"weatherwidget.app/internal/adapters/render"
	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
)

// HealthResponse represents the aggregated health report
type HealthResponse struct {
	Status     string      `json:"status"`
	Components interface{} `json:"components"`
}

// getPage handles GET / by running one submit and rendering its outcome
func (s *HTTPServerAdapter) getPage(c *gin.Context) {
	query := s.initialQuery(c)

	controller, err := s.newController(query, "page-"+uuid.NewString(), false)
	if err != nil {
		s.handleError(c, err)
		return
	}
	controller.Mount(c.Request.Context())

	page, err := s.renderer.Page(render.NewPageData(controller.Query(), controller.State()))
	if err != nil {
		s.logger.Error("Failed to render page", ports.F("error", err))
		s.handleError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// getAsset serves the embedded icon assets
func (s *HTTPServerAdapter) getAsset(c *gin.Context) {
	data, contentType, ok := render.Asset(c.Param("name"))
	if !ok {
		s.handleError(c, errors.NewNotFoundError("asset not found"))
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, data)
}

// getHealth handles GET /health
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())

	status, code := "healthy", http.StatusOK
	if !ports.Healthy(results) {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{Status: status, Components: results})
}
