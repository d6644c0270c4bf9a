package nutrition

import (
	"math"
	"strings"
)

// ActivityLevel is the self-reported physical activity of a user.
type ActivityLevel string

const (
	Sedentary ActivityLevel = "sedentary"
	Light     ActivityLevel = "light"
	Moderate  ActivityLevel = "moderate"
	High      ActivityLevel = "high"
)

var activityFactors = map[ActivityLevel]float64{
	Sedentary: 1.0,
	Light:     1.2,
	Moderate:  1.55,
	High:      1.725,
}

// Body metric bounds accepted by the estimator.
const (
	MinAgeYears  = 1
	MaxAgeYears  = 120
	MinHeightCm  = 50.0
	MaxHeightCm  = 300.0
	MinWeightKg  = 20.0
	MaxWeightKg  = 500.0
	idealBMI     = 22.0
	kcalPerKgIBW = 25.0
)

// ParseActivityLevel normalises user input into a known level.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	level := ActivityLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := activityFactors[level]; !ok {
		return "", invalid("activityLevel", "unknown activity level %q", s)
	}
	return level, nil
}

// ActivityFactor returns the multiplier for a level.
func ActivityFactor(level ActivityLevel) (float64, error) {
	f, ok := activityFactors[level]
	if !ok {
		return 0, invalid("activityLevel", "unknown activity level %q", level)
	}
	return f, nil
}

// BodyMetrics are the biometric inputs of the calorie estimate.
type BodyMetrics struct {
	HeightCm      float64
	WeightKg      float64
	Age           int
	Gender        string
	ActivityLevel ActivityLevel
}

// Validate checks the metrics against the accepted ranges.
func (m BodyMetrics) Validate() error {
	if m.HeightCm < MinHeightCm || m.HeightCm > MaxHeightCm {
		return invalid("height", "must be between %.0f and %.0f cm", MinHeightCm, MaxHeightCm)
	}
	if m.WeightKg < MinWeightKg || m.WeightKg > MaxWeightKg {
		return invalid("weight", "must be between %.0f and %.0f kg", MinWeightKg, MaxWeightKg)
	}
	if m.Age < MinAgeYears || m.Age > MaxAgeYears {
		return invalid("age", "must be between %d and %d", MinAgeYears, MaxAgeYears)
	}
	if _, err := ActivityFactor(m.ActivityLevel); err != nil {
		return err
	}
	return nil
}

// CalorieEstimate is the result of EstimateDailyCalories with its intermediate factors.
type CalorieEstimate struct {
	DailyCalories   int     `json:"dailyCalories"`
	IdealBodyWeight float64 `json:"idealBodyWeight"`
	ActivityFactor  float64 `json:"activityFactor"`
	SeverityFactor  float64 `json:"severityFactor"`
}

// SeverityFactor reduces the calorie budget for poorly controlled blood sugar.
func SeverityFactor(fbs, ppbs float64) float64 {
	switch {
	case fbs >= 180 || ppbs >= 250:
		return 0.85
	case fbs >= 126 || ppbs >= 180:
		return 0.9
	default:
		return 1.0
	}
}

// IdealBodyWeight is the weight at BMI 22 for the given height.
func IdealBodyWeight(heightCm float64) float64 {
	m := heightCm / 100
	return idealBMI * m * m
}

// EstimateDailyCalories derives the daily calorie budget from body metrics and current readings.
func EstimateDailyCalories(m BodyMetrics, currentFbs, currentPpbs float64) (CalorieEstimate, error) {
	if err := m.Validate(); err != nil {
		return CalorieEstimate{}, err
	}
	if currentFbs < 0 || currentPpbs < 0 {
		return CalorieEstimate{}, invalid("bloodSugar", "readings must not be negative")
	}

	ibw := IdealBodyWeight(m.HeightCm)
	af := activityFactors[m.ActivityLevel]
	sf := SeverityFactor(currentFbs, currentPpbs)

	return CalorieEstimate{
		DailyCalories:   int(math.Round(ibw * kcalPerKgIBW * af * sf)),
		IdealBodyWeight: ibw,
		ActivityFactor:  af,
		SeverityFactor:  sf,
	}, nil
}
