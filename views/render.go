package views

import (
	"math"
	"strconv"

	"foodscan/models"
)

// ItemView is one food card, every number already formatted for display.
type ItemView struct {
	Name     string
	Portion  string // whole grams
	Calories string // whole kcal
	Protein  string // one decimal
	Carbs    string // one decimal
}

// ResultView is everything one render pass needs: the summary banner plus
// zero or more item cards. Built from a validated analysis and nothing
// else.
type ResultView struct {
	TotalCalories string
	Confidence    string
	Items         []ItemView
}

// BuildResultView maps an analysis onto its display form. Pure: same input,
// same output, no side effects. An analysis with no items still yields the
// summary (and an empty Items slice).
func BuildResultView(a *models.NutritionAnalysis) ResultView {
	view := ResultView{
		TotalCalories: WholeUnits(a.TotalCalories),
		Confidence:    a.ConfidenceLevel,
		Items:         make([]ItemView, 0, len(a.FoodItems)),
	}
	for _, item := range a.FoodItems {
		view.Items = append(view.Items, ItemView{
			Name:     item.Name,
			Portion:  WholeUnits(item.PortionGrams),
			Calories: WholeUnits(item.Calories),
			Protein:  OneDecimal(item.ProteinGrams),
			Carbs:    OneDecimal(item.CarbsGrams),
		})
	}
	return view
}

// WholeUnits rounds half away from zero to an integer string.
func WholeUnits(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

// OneDecimal keeps one decimal place, half away from zero.
func OneDecimal(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}
