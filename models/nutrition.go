package models

import (
	"encoding/json"
	"fmt"
)

// One detected food with the model's per-item estimates.
// Immutable once built from a validated response.
type FoodItem struct {
	Name         string  `json:"name"`
	PortionGrams float64 `json:"portion_grams"`
	ProteinGrams float64 `json:"protein_grams"`
	Calories     float64 `json:"calories"`
	CarbsGrams   float64 `json:"carbs_grams"`
}

// The full analysis for one image. Item order is the detection order the
// service returned. TotalCalories is reported as-is and is NOT reconciled
// against the sum of item calories. ConfidenceLevel is free text
// ("high"/"medium"/"low" in practice), not an enum.
type NutritionAnalysis struct {
	FoodItems       []FoodItem `json:"food_items"`
	TotalCalories   float64    `json:"total_calories"`
	ConfidenceLevel string     `json:"confidence_level"`
}

// Raw shapes with pointer fields so we can tell "absent" from "zero".
type rawFoodItem struct {
	Name         *string  `json:"name"`
	PortionGrams *float64 `json:"portion_grams"`
	ProteinGrams *float64 `json:"protein_grams"`
	Calories     *float64 `json:"calories"`
	CarbsGrams   *float64 `json:"carbs_grams"`
}

type rawAnalysis struct {
	FoodItems       []rawFoodItem `json:"food_items"`
	TotalCalories   *float64      `json:"total_calories"`
	ConfidenceLevel *string       `json:"confidence_level"`
}

// ParseNutritionAnalysis validates a service reply against the declared
// schema. Every field is required; a missing field on any item fails the
// whole reply rather than producing a partially populated value. Item
// quantities must be non-negative. No cross-field check is done —
// total_calories is trusted as the service reported it.
func ParseNutritionAnalysis(data []byte) (*NutritionAnalysis, error) {
	var raw rawAnalysis
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if raw.FoodItems == nil {
		return nil, fmt.Errorf("response missing field: food_items")
	}
	if raw.TotalCalories == nil {
		return nil, fmt.Errorf("response missing field: total_calories")
	}
	if raw.ConfidenceLevel == nil {
		return nil, fmt.Errorf("response missing field: confidence_level")
	}

	out := &NutritionAnalysis{
		FoodItems:       make([]FoodItem, 0, len(raw.FoodItems)),
		TotalCalories:   *raw.TotalCalories,
		ConfidenceLevel: *raw.ConfidenceLevel,
	}
	for i, ri := range raw.FoodItems {
		item, err := ri.validate()
		if err != nil {
			return nil, fmt.Errorf("food_items[%d]: %w", i, err)
		}
		out.FoodItems = append(out.FoodItems, item)
	}
	return out, nil
}

func (r rawFoodItem) validate() (FoodItem, error) {
	switch {
	case r.Name == nil:
		return FoodItem{}, fmt.Errorf("missing field: name")
	case r.PortionGrams == nil:
		return FoodItem{}, fmt.Errorf("missing field: portion_grams")
	case r.ProteinGrams == nil:
		return FoodItem{}, fmt.Errorf("missing field: protein_grams")
	case r.Calories == nil:
		return FoodItem{}, fmt.Errorf("missing field: calories")
	case r.CarbsGrams == nil:
		return FoodItem{}, fmt.Errorf("missing field: carbs_grams")
	}
	for name, v := range map[string]float64{
		"portion_grams": *r.PortionGrams,
		"protein_grams": *r.ProteinGrams,
		"calories":      *r.Calories,
		"carbs_grams":   *r.CarbsGrams,
	} {
		if v < 0 {
			return FoodItem{}, fmt.Errorf("%s is negative: %v", name, v)
		}
	}
	return FoodItem{
		Name:         *r.Name,
		PortionGrams: *r.PortionGrams,
		ProteinGrams: *r.ProteinGrams,
		Calories:     *r.Calories,
		CarbsGrams:   *r.CarbsGrams,
	}, nil
}
