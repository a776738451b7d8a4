package controllers

import (
	"net/http"

	"foodscan/services"
	"foodscan/views"

	"github.com/gin-gonic/gin"
)

type PageController struct {
	Pipeline *services.AnalysisService
}

func NewPageController(pipeline *services.AnalysisService) *PageController {
	return &PageController{Pipeline: pipeline}
}

// GET /
// The single page. When the session already holds an analysis it is shown
// again under "Last Analysis" until a new image replaces it.
func (pc *PageController) Index(c *gin.Context) {
	data := gin.H{"HasLast": false}
	if last := pc.Pipeline.Last(c.GetString("sessionID")); last != nil {
		data["HasLast"] = true
		data["Last"] = views.BuildResultView(last)
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// GET /healthz
func (pc *PageController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
