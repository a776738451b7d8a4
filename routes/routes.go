package routes

import (
	"foodscan/controllers"
	"foodscan/middlewares"
	"foodscan/services"
	"foodscan/views"

	"github.com/gin-gonic/gin"
)

func SetupRouter(pipeline *services.AnalysisService, hub *services.StatusHub) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(views.Templates())

	page := controllers.NewPageController(pipeline)
	analyze := controllers.NewAnalyzeController(pipeline)
	status := controllers.NewStatusController(hub)

	r.GET("/healthz", page.Health)

	// Everything the page touches runs under a session
	app := r.Group("/")
	app.Use(middlewares.SessionMiddleware())
	{
		app.GET("", page.Index)
		app.POST("analyze", analyze.Analyze)
		app.POST("analysis/clear", analyze.ClearLast)
		app.GET("ws/status", status.StatusWS)
	}

	return r
}
