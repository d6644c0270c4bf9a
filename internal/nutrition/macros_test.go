package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateMacrosBaseline(t *testing.T) {
	got := AllocateMacros(2000, 100, 140, 100, 140)
	assert.Equal(t, MacroTargets{
		Carbs:          250,
		Protein:        100,
		Fat:            66.7,
		CarbPercent:    50,
		ProteinPercent: 20,
		FatPercent:     30,
	}, got)
}

func TestAllocateMacrosShiftsCarbsWhenAboveTarget(t *testing.T) {
	// devF = 10, devP = 10, carbs lose 2 points: 48/20.8/31.2
	got := AllocateMacros(1800, 200, 240, 100, 140)
	assert.Equal(t, 48.0, got.CarbPercent)
	assert.Equal(t, 20.8, got.ProteinPercent)
	assert.Equal(t, 31.2, got.FatPercent)
	assert.Equal(t, 216.0, got.Carbs)
	assert.Equal(t, 93.6, got.Protein)
	assert.Equal(t, 62.4, got.Fat)
}

func TestAllocateMacrosIgnoresReadingsBelowTarget(t *testing.T) {
	got := AllocateMacros(1500, 80, 110, 100, 140)
	assert.Equal(t, 50.0, got.CarbPercent)
}

func TestAllocateMacrosClampsCarbShare(t *testing.T) {
	got := AllocateMacros(2000, 2500, 3000, 100, 140)
	assert.Equal(t, 30.0, got.CarbPercent)
	assert.Equal(t, 28.0, got.ProteinPercent)
	assert.Equal(t, 42.0, got.FatPercent)
}

func TestAllocateMacrosPercentagesAlwaysSumToHundred(t *testing.T) {
	for fbs := 50.0; fbs <= 3000; fbs += 37 {
		for ppbs := 50.0; ppbs <= 3000; ppbs += 53 {
			got := AllocateMacros(1900, fbs, ppbs, 100, 140)
			assert.GreaterOrEqual(t, got.CarbPercent, 30.0)
			assert.LessOrEqual(t, got.CarbPercent, 60.0)
			assert.InDelta(t, 100, got.CarbPercent+got.ProteinPercent+got.FatPercent, 0.1+1e-9)
		}
	}
}
