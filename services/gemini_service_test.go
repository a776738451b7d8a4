package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func geminiReply(text string) string {
	reply := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": text}},
			},
		}},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

const appleJSON = `{"food_items":[{"name":"Apple","portion_grams":150,"protein_grams":0.5,"calories":80,"carbs_grams":21}],"total_calories":80,"confidence_level":"high"}`

func newTestGemini(serverURL string) *GeminiService {
	g := NewGeminiService("test-key", "gemini-2.5-pro", 5*time.Second)
	g.baseURL = serverURL
	return g
}

func TestGeminiAnalyzeSuccess(t *testing.T) {
	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header missing, got %q", r.Header.Get("x-goog-api-key"))
		}
		if !strings.HasSuffix(r.URL.Path, "gemini-2.5-pro:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		io.WriteString(w, geminiReply(appleJSON))
	}))
	defer server.Close()

	a, err := newTestGemini(server.URL).Analyze(context.Background(), []byte("fake-jpeg-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.TotalCalories != 80 || len(a.FoodItems) != 1 || a.FoodItems[0].Name != "Apple" {
		t.Errorf("analysis wrong: %+v", a)
	}

	// the outbound request must carry the image, the prompt and the schema
	body := string(captured)
	for _, want := range []string{
		`"inlineData"`,
		`"mimeType":"image/jpeg"`,
		`"responseMimeType":"application/json"`,
		`"responseSchema"`,
		`"total_calories"`,
		"Analyze this food image",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("request body missing %s", want)
		}
	}
}

func TestGeminiAnalyzeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := newTestGemini(server.URL).Analyze(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected an error for a 403 reply")
	}
}

func TestGeminiAnalyzeSchemaMismatch(t *testing.T) {
	// calories missing on the single item
	bad := `{"food_items":[{"name":"Apple","portion_grams":150,"protein_grams":0.5,"carbs_grams":21}],"total_calories":80,"confidence_level":"high"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, geminiReply(bad))
	}))
	defer server.Close()

	if _, err := newTestGemini(server.URL).Analyze(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected schema mismatch to fail")
	}
}

func TestGeminiAnalyzeEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	if _, err := newTestGemini(server.URL).Analyze(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected an error for empty candidates")
	}
}

func TestGeminiAnalyzeNetworkFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	if _, err := newTestGemini(server.URL).Analyze(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected an error when the service is unreachable")
	}
}
