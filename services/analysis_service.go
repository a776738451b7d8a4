package services

import (
	"context"
	"errors"
	"fmt"

	"foodscan/models"
	"foodscan/utils"
)

// ErrBadImage marks a malformed upload, the one failure the user can fix
// themselves.
var ErrBadImage = errors.New("unreadable image")

// AnalysisService runs the whole pipeline for one user action: decode the
// upload, re-encode to JPEG, hand it to the analyzer, and keep the result
// in the session slot. One analysis at a time per session; no retries.
type AnalysisService struct {
	analyzer Analyzer
	store    *SessionStore
	hub      *StatusHub
}

func NewAnalysisService(analyzer Analyzer, store *SessionStore, hub *StatusHub) *AnalysisService {
	return &AnalysisService{analyzer: analyzer, store: store, hub: hub}
}

// Analyze runs one image through the pipeline. On success the session's
// last-analysis slot is overwritten; on any failure the previous analysis
// (if any) stays in place and the error describes which stage failed.
func (s *AnalysisService) Analyze(ctx context.Context, sessionID string, imageData []byte) (*models.NutritionAnalysis, error) {
	s.hub.Notify(sessionID, "analysis.started", nil)

	jpegBytes, err := utils.ReencodeJPEG(imageData)
	if err != nil {
		s.hub.Notify(sessionID, "analysis.failed", map[string]any{"reason": "bad image"})
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	analysis, err := s.analyzer.Analyze(ctx, jpegBytes)
	if err != nil {
		s.hub.Notify(sessionID, "analysis.failed", map[string]any{"reason": "analysis failed"})
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	s.store.Set(sessionID, analysis)
	s.hub.Notify(sessionID, "analysis.completed", map[string]any{
		"total_calories": analysis.TotalCalories,
	})
	return analysis, nil
}

// Last returns the session's retained analysis, nil when none.
func (s *AnalysisService) Last(sessionID string) *models.NutritionAnalysis {
	return s.store.Get(sessionID)
}

// ClearLast drops the retained analysis; the page calls this when the user
// selects a new image.
func (s *AnalysisService) ClearLast(sessionID string) {
	s.store.Clear(sessionID)
}
