package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"foodscan/models"
)

// Analyzer is the capability boundary around the external inference
// service: one image in, one validated analysis (or failure) out. Tests and
// controllers never need to know a network is involved.
type Analyzer interface {
	Analyze(ctx context.Context, imageBytes []byte) (*models.NutritionAnalysis, error)
}

const analysisPrompt = `Analyze this food image and provide detailed nutritional information.
Identify each food item visible in the image and estimate:
1. The name of each food item
2. The portion size in grams
3. Protein content in grams
4. Calories
5. Carbohydrates in grams

Be as accurate as possible with portion estimation based on visual cues like plate size,
utensils, or common serving sizes. Provide a confidence level (high/medium/low) for your analysis.

If multiple food items are present, list each separately.
Calculate the total calories for the entire meal.`

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiService builds the client. An empty apiKey is accepted — the
// service simply rejects the first call, which is surfaced like any other
// analysis failure.
func NewGeminiService(apiKey, model string, timeout time.Duration) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiEndpoint,
		client:  &http.Client{Timeout: timeout},
	}
}

// Request/response shapes for the generateContent REST call. Only the
// fields this service touches.
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiBlobPart `json:"inlineData,omitempty"`
}

type geminiBlobPart struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenConfig struct {
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *geminiSchema `json:"responseSchema"`
}

// geminiSchema is the OpenAPI subset Gemini accepts as a structured-output
// declaration.
type geminiSchema struct {
	Type       string                   `json:"type"`
	Properties map[string]*geminiSchema `json:"properties,omitempty"`
	Items      *geminiSchema            `json:"items,omitempty"`
	Required   []string                 `json:"required,omitempty"`
}

func nutritionSchema() *geminiSchema {
	number := func() *geminiSchema { return &geminiSchema{Type: "NUMBER"} }
	return &geminiSchema{
		Type: "OBJECT",
		Properties: map[string]*geminiSchema{
			"food_items": {
				Type: "ARRAY",
				Items: &geminiSchema{
					Type: "OBJECT",
					Properties: map[string]*geminiSchema{
						"name":          {Type: "STRING"},
						"portion_grams": number(),
						"protein_grams": number(),
						"calories":      number(),
						"carbs_grams":   number(),
					},
					Required: []string{"name", "portion_grams", "protein_grams", "calories", "carbs_grams"},
				},
			},
			"total_calories":   number(),
			"confidence_level": {Type: "STRING"},
		},
		Required: []string{"food_items", "total_calories", "confidence_level"},
	}
}

func (g *GeminiService) buildRequest(imageBytes []byte) geminiRequest {
	return geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiBlobPart{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
				{Text: analysisPrompt},
			},
		}},
		GenerationConfig: geminiGenConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   nutritionSchema(),
		},
	}
}

// Analyze sends one generateContent call and validates the reply. Every
// failure mode — transport, HTTP status, API error payload, empty
// candidates, schema mismatch — comes back as a plain error; the caller
// sees one "analysis failed" outcome.
func (g *GeminiService) Analyze(ctx context.Context, imageBytes []byte) (*models.NutritionAnalysis, error) {
	body, err := json.Marshal(g.buildRequest(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(respBytes))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	if parsed.Error.Message != "" {
		return nil, fmt.Errorf("gemini API error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	return models.ParseNutritionAnalysis([]byte(parsed.Candidates[0].Content.Parts[0].Text))
}
