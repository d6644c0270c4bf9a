package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	assert.Equal(t, 23.4, BMI(160, 60))
	assert.Equal(t, 31.1, BMI(170, 90))
	assert.Zero(t, BMI(0, 60))
	assert.Zero(t, BMI(160, 0))
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{16, Underweight},
		{18.4, Underweight},
		{18.5, Normal},
		{24.9, Normal},
		{25, Overweight},
		{29.9, Overweight},
		{30, Obese},
		{42, Obese},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BMICategory(tt.bmi), "bmi %.1f", tt.bmi)
	}
}
