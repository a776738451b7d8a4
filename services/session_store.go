package services

import (
	"sync"

	"foodscan/models"
)

// SessionStore keeps the single most-recent analysis per session. Set on
// success, cleared when the user picks a new image, read on redisplay.
// Overwritten, never merged; gone on process restart.
type SessionStore struct {
	mu       sync.RWMutex
	analyses map[string]*models.NutritionAnalysis
}

func NewSessionStore() *SessionStore {
	return &SessionStore{analyses: make(map[string]*models.NutritionAnalysis)}
}

func (s *SessionStore) Set(sessionID string, a *models.NutritionAnalysis) {
	s.mu.Lock()
	s.analyses[sessionID] = a
	s.mu.Unlock()
}

// Get returns the last analysis for the session, or nil when none exists.
func (s *SessionStore) Get(sessionID string) *models.NutritionAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyses[sessionID]
}

func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.analyses, sessionID)
	s.mu.Unlock()
}
