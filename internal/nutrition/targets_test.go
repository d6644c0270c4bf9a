package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgressiveTargetsWithoutBaseline(t *testing.T) {
	got := ComputeProgressiveTargets(nil, 220, 300)
	assert.Equal(t, IdealFbs, got.TargetFbs)
	assert.Equal(t, IdealPpbs, got.TargetPpbs)
	assert.False(t, got.IsAtIdealLevel)
}

func TestComputeProgressiveTargetsReanchorsOnCurrentReading(t *testing.T) {
	initial := &Reading{Fbs: 250, Ppbs: 320, DateRecorded: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	got := ComputeProgressiveTargets(initial, 180, 240)
	assert.Equal(t, 162.0, got.TargetFbs)
	assert.Equal(t, 216.0, got.TargetPpbs)
	assert.Equal(t, 10.0, got.ReductionPercent)
	assert.Equal(t, 18.0, got.FbsReduction)
	assert.Equal(t, 24.0, got.PpbsReduction)
	assert.False(t, got.IsAtIdealLevel)
}

func TestComputeProgressiveTargetsFloorsAtIdeal(t *testing.T) {
	initial := &Reading{Fbs: 130, Ppbs: 170}

	got := ComputeProgressiveTargets(initial, 105, 150)
	assert.Equal(t, IdealFbs, got.TargetFbs)
	assert.Equal(t, IdealPpbs, got.TargetPpbs)
	assert.Equal(t, 5.0, got.FbsReduction)
	assert.Equal(t, 10.0, got.PpbsReduction)
}

func TestComputeProgressiveTargetsProperties(t *testing.T) {
	initial := &Reading{Fbs: 200, Ppbs: 280}
	for fbs := 60.0; fbs <= 400; fbs += 7 {
		for ppbs := 80.0; ppbs <= 500; ppbs += 11 {
			got := ComputeProgressiveTargets(initial, fbs, ppbs)
			assert.GreaterOrEqual(t, got.TargetFbs, IdealFbs)
			assert.GreaterOrEqual(t, got.TargetPpbs, IdealPpbs)
			assert.Equal(t, fbs <= IdealFbs && ppbs <= IdealPpbs, got.IsAtIdealLevel)
		}
	}
}
