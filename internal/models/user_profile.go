package models

import (
	"time"

	"github.com/glycofit/backend/internal/nutrition"
	"gorm.io/datatypes"
)

// UserProfile is the per-user document: identity, body metrics, glycemic state,
// derived targets, gamification state and the daily consumption ledger.
type UserProfile struct {
	ID          string `gorm:"type:varchar(128);primarykey" json:"id"`
	DisplayName string `gorm:"size:100" json:"displayName"`
	Email       string `gorm:"size:255;index" json:"email"`
	HasProfile  bool   `gorm:"not null;default:false" json:"hasProfile"`

	HeightCm      float64 `json:"height"`
	WeightKg      float64 `json:"weight"`
	Age           int     `json:"age"`
	Gender        string  `gorm:"size:32" json:"gender"`
	ActivityLevel string  `gorm:"size:32" json:"activityLevel"`
	DiabetesType  string  `gorm:"size:32" json:"diabetesType"`

	Hba1cLevel        float64                     `gorm:"column:hba1c_level" json:"hba1cLevel"`
	MedicationStatus  string                      `gorm:"size:32" json:"insulinMedicationStatus"`
	HealthConditions  datatypes.JSONSlice[string] `json:"existingHealthConditions"`
	Allergies         datatypes.JSONSlice[string] `json:"allergies"`
	PreferredDietType string                      `gorm:"size:32" json:"preferredDietType"`

	CurrentFbs        float64    `json:"currentFbs"`
	CurrentPpbs       float64    `json:"currentPpbs"`
	InitialFbs        float64    `json:"-"`
	InitialPpbs       float64    `json:"-"`
	InitialRecordedAt *time.Time `json:"-"`
	TargetFbs         float64    `json:"targetFbs"`
	TargetPpbs        float64    `json:"targetPpbs"`
	TargetSetDate     string     `gorm:"size:10" json:"targetSetDate"`

	DailyCalories  int     `json:"dailyCalories"`
	TargetCarbs    float64 `json:"targetCarbs"`
	TargetProtein  float64 `json:"targetProtein"`
	TargetFat      float64 `json:"targetFat"`
	CarbPercent    float64 `json:"carbPercent"`
	ProteinPercent float64 `json:"proteinPercent"`
	FatPercent     float64 `json:"fatPercent"`

	CurrentPoints    int    `gorm:"not null;default:0" json:"currentPoints"`
	TotalPoints      int    `gorm:"not null;default:0" json:"totalPoints"`
	DailyStreak      int    `gorm:"not null;default:0" json:"dailyStreak"`
	LongestStreak    int    `gorm:"not null;default:0" json:"longestStreak"`
	MealsLoggedToday int    `gorm:"not null;default:0" json:"mealsLoggedToday"`
	LastMealDate     string `gorm:"size:10" json:"lastMealDate"`

	ConsumedCalories float64 `gorm:"not null;default:0" json:"consumedCalories"`
	ConsumedCarbs    float64 `gorm:"not null;default:0" json:"consumedCarbs"`
	ConsumedProtein  float64 `gorm:"not null;default:0" json:"consumedProtein"`
	ConsumedFat      float64 `gorm:"not null;default:0" json:"consumedFat"`
	LastResetDate    string  `gorm:"size:10" json:"lastResetDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// InitialBloodSugar returns the baseline reading, or nil before the first reading.
func (p *UserProfile) InitialBloodSugar() *nutrition.Reading {
	if p.InitialRecordedAt == nil {
		return nil
	}
	return &nutrition.Reading{Fbs: p.InitialFbs, Ppbs: p.InitialPpbs, DateRecorded: *p.InitialRecordedAt}
}

// BodyMetrics returns the metrics used by the calorie estimator and whether all are set.
func (p *UserProfile) BodyMetrics() (nutrition.BodyMetrics, bool) {
	m := nutrition.BodyMetrics{
		HeightCm:      p.HeightCm,
		WeightKg:      p.WeightKg,
		Age:           p.Age,
		Gender:        p.Gender,
		ActivityLevel: nutrition.ActivityLevel(p.ActivityLevel),
	}
	complete := p.HeightCm > 0 && p.WeightKg > 0 && p.Age > 0 && p.Gender != "" && p.ActivityLevel != ""
	return m, complete
}

// MedicalRecordComplete reports whether the body metrics and the diabetes
// type are all set, which is what marks a profile as filled in.
func (p *UserProfile) MedicalRecordComplete() bool {
	_, complete := p.BodyMetrics()
	return complete && p.DiabetesType != ""
}

// ResetDailyLedger clears the consumption accumulators for a new calendar day.
func (p *UserProfile) ResetDailyLedger(today string) {
	p.ConsumedCalories = 0
	p.ConsumedCarbs = 0
	p.ConsumedProtein = 0
	p.ConsumedFat = 0
	p.MealsLoggedToday = 0
	p.LastResetDate = today
}

// ProfileView is the JSON shape of a profile with the nested baseline reading
// and the derived BMI.
type ProfileView struct {
	*UserProfile
	InitialBloodSugar *nutrition.Reading `json:"initialBloodSugar"`
	BMI               float64            `json:"bmi,omitempty"`
	BMICategory       string             `json:"bmiCategory,omitempty"`
}

// View wraps the profile for serialization.
func (p *UserProfile) View() ProfileView {
	v := ProfileView{UserProfile: p, InitialBloodSugar: p.InitialBloodSugar()}
	if bmi := nutrition.BMI(p.HeightCm, p.WeightKg); bmi > 0 {
		v.BMI = bmi
		v.BMICategory = nutrition.BMICategory(bmi)
	}
	return v
}
