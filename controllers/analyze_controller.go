package controllers

import (
	"errors"
	"io"
	"net/http"

	"foodscan/services"
	"foodscan/utils"
	"foodscan/views"

	"github.com/gin-gonic/gin"
)

type AnalyzeController struct {
	Pipeline *services.AnalysisService
}

func NewAnalyzeController(pipeline *services.AnalysisService) *AnalyzeController {
	return &AnalyzeController{Pipeline: pipeline}
}

const (
	msgAnalysisFailed = "❌ Failed to analyze the image. Please try again."
	msgBadImage       = "⚠️ Could not read that image file. Please choose a JPEG or PNG photo."
)

// POST /analyze
// Accepts either a multipart "image" file (the page's file picker) or a
// JSON body {"image_base64": "data:image/...;base64,..."} (camera capture).
// Replies with rendered HTML: result fragments on success, an inline error
// notice otherwise. Failures never disturb the retained previous analysis.
func (ac *AnalyzeController) Analyze(c *gin.Context) {
	sid := c.GetString("sessionID")

	imageData, err := readImagePayload(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": msgBadImage})
		return
	}

	analysis, err := ac.Pipeline.Analyze(c.Request.Context(), sid, imageData)
	if err != nil {
		if errors.Is(err, services.ErrBadImage) {
			c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": msgBadImage})
			return
		}
		// every service-side cause collapses into one failure message
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Message": msgAnalysisFailed})
		return
	}

	c.HTML(http.StatusOK, "results.html", views.BuildResultView(analysis))
}

// POST /analysis/clear
// The page fires this when a new image is selected.
func (ac *AnalyzeController) ClearLast(c *gin.Context) {
	ac.Pipeline.ClearLast(c.GetString("sessionID"))
	c.Status(http.StatusNoContent)
}

func readImagePayload(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return utils.DecodeDataURI(req.ImageBase64)
}
