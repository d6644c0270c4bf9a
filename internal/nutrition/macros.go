package nutrition

import "math"

const (
	baseCarbPercent    = 50.0
	baseProteinPercent = 20.0
	baseFatPercent     = 30.0
	minCarbPercent     = 30.0
	maxCarbPercent     = 60.0

	kcalPerGramCarb    = 4.0
	kcalPerGramProtein = 4.0
	kcalPerGramFat     = 9.0
)

// MacroTargets are daily gram targets and their share of calories.
type MacroTargets struct {
	Carbs          float64 `json:"carbs"`
	Protein        float64 `json:"protein"`
	Fat            float64 `json:"fat"`
	CarbPercent    float64 `json:"carbPercent"`
	ProteinPercent float64 `json:"proteinPercent"`
	FatPercent     float64 `json:"fatPercent"`
}

// AllocateMacros splits the calorie budget, lowering carbohydrates in proportion to
// how far readings sit above target and moving the difference to protein and fat 2:3.
func AllocateMacros(dailyCalories int, currentFbs, currentPpbs, targetFbs, targetPpbs float64) MacroTargets {
	devF := math.Max(0, (currentFbs-targetFbs)/10)
	devP := math.Max(0, (currentPpbs-targetPpbs)/10)

	carb := clamp(baseCarbPercent-0.1*devF-0.1*devP, minCarbPercent, maxCarbPercent)
	lost := baseCarbPercent - carb
	protein := baseProteinPercent + lost*baseProteinPercent/baseCarbPercent
	fat := baseFatPercent + lost*baseFatPercent/baseCarbPercent

	cal := float64(dailyCalories)
	return MacroTargets{
		Carbs:          round1(cal * carb / 100 / kcalPerGramCarb),
		Protein:        round1(cal * protein / 100 / kcalPerGramProtein),
		Fat:            round1(cal * fat / 100 / kcalPerGramFat),
		CarbPercent:    round1(carb),
		ProteinPercent: round1(protein),
		FatPercent:     round1(fat),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
