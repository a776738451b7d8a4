package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"foodscan/models"
)

type stubAnalyzer struct {
	result *models.NutritionAnalysis
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, imageBytes []byte) (*models.NutritionAnalysis, error) {
	s.calls++
	return s.result, s.err
}

func testImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("failed to build test image: %v", err)
	}
	return buf.Bytes()
}

func appleAnalysis() *models.NutritionAnalysis {
	return &models.NutritionAnalysis{
		FoodItems: []models.FoodItem{
			{Name: "Apple", PortionGrams: 150, ProteinGrams: 0.5, Calories: 80, CarbsGrams: 21},
		},
		TotalCalories:   80,
		ConfidenceLevel: "high",
	}
}

func TestAnalyzeStoresResult(t *testing.T) {
	stub := &stubAnalyzer{result: appleAnalysis()}
	store := NewSessionStore()
	svc := NewAnalysisService(stub, store, NewStatusHub())

	got, err := svc.Analyze(context.Background(), "sid-1", testImage(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCalories != 80 {
		t.Errorf("total = %v, want 80", got.TotalCalories)
	}
	if store.Get("sid-1") != got {
		t.Error("successful analysis must land in the session slot")
	}
}

func TestAnalyzeFailureKeepsPreviousResult(t *testing.T) {
	previous := appleAnalysis()
	store := NewSessionStore()
	store.Set("sid-1", previous)

	stub := &stubAnalyzer{err: errors.New("simulated timeout")}
	svc := NewAnalysisService(stub, store, NewStatusHub())

	if _, err := svc.Analyze(context.Background(), "sid-1", testImage(t)); err == nil {
		t.Fatal("expected a failure result")
	}
	if store.Get("sid-1") != previous {
		t.Error("a failed analysis must not disturb the retained one")
	}
}

func TestAnalyzeRejectsBadImageBeforeCalling(t *testing.T) {
	stub := &stubAnalyzer{result: appleAnalysis()}
	svc := NewAnalysisService(stub, NewSessionStore(), NewStatusHub())

	if _, err := svc.Analyze(context.Background(), "sid-1", []byte("not an image")); err == nil {
		t.Fatal("expected image decode failure")
	}
	if stub.calls != 0 {
		t.Errorf("analyzer must not be called on undecodable input, got %d calls", stub.calls)
	}
}

func TestLastAndClear(t *testing.T) {
	stub := &stubAnalyzer{result: appleAnalysis()}
	svc := NewAnalysisService(stub, NewSessionStore(), NewStatusHub())

	if svc.Last("sid-1") != nil {
		t.Error("fresh session should have no analysis")
	}
	if _, err := svc.Analyze(context.Background(), "sid-1", testImage(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Last("sid-1") == nil {
		t.Error("analysis should be retained")
	}
	svc.ClearLast("sid-1")
	if svc.Last("sid-1") != nil {
		t.Error("clear must empty the slot")
	}
}
