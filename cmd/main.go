package main

import (
	"foodscan/config"
	"foodscan/routes"
	"foodscan/services"
)

func main() {
	config.Init()

	gemini := services.NewGeminiService(
		config.App.GeminiAPIKey,
		config.App.GeminiModel,
		config.App.RequestTimeout,
	)
	hub := services.NewStatusHub()
	pipeline := services.NewAnalysisService(gemini, services.NewSessionStore(), hub)

	r := routes.SetupRouter(pipeline, hub)
	r.Run(config.App.ListenAddr)
}
