package nutrition

import (
	"math"
	"time"
)

// Clinical targets every progression converges to.
const (
	IdealFbs  = 100.0
	IdealPpbs = 140.0

	// ReductionPercent is the step applied to the current reading per target period.
	ReductionPercent = 10.0
)

// Reading is a fasting / post-prandial blood sugar pair in mg/dL.
type Reading struct {
	Fbs          float64   `json:"fbs"`
	Ppbs         float64   `json:"ppbs"`
	DateRecorded time.Time `json:"dateRecorded"`
}

// Targets is the output of ComputeProgressiveTargets.
type Targets struct {
	TargetFbs        float64 `json:"targetFbs"`
	TargetPpbs       float64 `json:"targetPpbs"`
	ReductionPercent float64 `json:"reductionPercent"`
	FbsReduction     float64 `json:"fbsReduction"`
	PpbsReduction    float64 `json:"ppbsReduction"`
	IsAtIdealLevel   bool    `json:"isAtIdealLevel"`
}

// ComputeProgressiveTargets steps the current readings 10% toward the ideal,
// never asking for a target below it. Without a baseline the ideals are returned.
func ComputeProgressiveTargets(initial *Reading, currentFbs, currentPpbs float64) Targets {
	t := Targets{
		TargetFbs:        IdealFbs,
		TargetPpbs:       IdealPpbs,
		ReductionPercent: ReductionPercent,
		IsAtIdealLevel:   currentFbs <= IdealFbs && currentPpbs <= IdealPpbs,
	}
	if initial == nil {
		return t
	}

	factor := 1 - ReductionPercent/100
	t.TargetFbs = math.Max(IdealFbs, math.Round(currentFbs*factor))
	t.TargetPpbs = math.Max(IdealPpbs, math.Round(currentPpbs*factor))
	t.FbsReduction = math.Max(0, currentFbs-t.TargetFbs)
	t.PpbsReduction = math.Max(0, currentPpbs-t.TargetPpbs)
	return t
}
