package services

import (
	"testing"

	"foodscan/models"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	if store.Get("a") != nil {
		t.Error("empty store must return nil")
	}

	first := &models.NutritionAnalysis{TotalCalories: 100, ConfidenceLevel: "low"}
	store.Set("a", first)
	if store.Get("a") != first {
		t.Error("stored analysis not returned")
	}

	// sessions are independent
	if store.Get("b") != nil {
		t.Error("other sessions must not see the analysis")
	}

	second := &models.NutritionAnalysis{TotalCalories: 200, ConfidenceLevel: "high"}
	store.Set("a", second)
	if store.Get("a") != second {
		t.Error("a newer analysis must overwrite the slot")
	}

	store.Clear("a")
	if store.Get("a") != nil {
		t.Error("cleared slot must be empty")
	}
}
