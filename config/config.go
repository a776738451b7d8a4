package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds everything tunable. Secrets come from the environment
// (.env in development), the rest from an optional config.yaml.
type AppConfig struct {
	ListenAddr  string `yaml:"listen_addr"`
	GeminiModel string `yaml:"gemini_model"`

	// yaml carries the timeout as whole seconds
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	RequestTimeout time.Duration `yaml:"-"`
	GeminiAPIKey   string        `yaml:"-"`
}

var App AppConfig

// Init loads .env (skipped with a note when absent — deployments use real
// environment variables) and config.yaml when present. The Gemini key is
// deliberately NOT validated here: a missing key surfaces as a failed
// inference call, nothing earlier.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	App = AppConfig{
		ListenAddr:     ":8080",
		GeminiModel:    "gemini-2.5-pro",
		RequestTimeout: 60 * time.Second,
	}

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &App); err != nil {
			log.Fatalf("config.yaml is malformed: %v", err)
		}
		if App.RequestTimeoutSeconds > 0 {
			App.RequestTimeout = time.Duration(App.RequestTimeoutSeconds) * time.Second
		}
		if App.ListenAddr == "" {
			App.ListenAddr = ":8080"
		}
		if App.GeminiModel == "" {
			App.GeminiModel = "gemini-2.5-pro"
		}
	}

	App.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
}
