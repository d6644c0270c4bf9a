package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/nutrition"
	"github.com/glycofit/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatp(v float64) *float64 { return &v }

func completeMetrics() *types.UpdateProfileRequest {
	return &types.UpdateProfileRequest{
		HeightCm:      floatp(160),
		WeightKg:      floatp(60),
		Age:           intp(40),
		Gender:        strp("Female"),
		ActivityLevel: strp("sedentary"),
		DiabetesType:  strp("type2"),
	}
}

func TestCreateProfileDefaults(t *testing.T) {
	f := newFixture(t)

	p := f.createUser(t, "u1", "  Asha ")
	assert.Equal(t, "Asha", p.DisplayName)
	assert.False(t, p.HasProfile)
	assert.Equal(t, 100.0, p.TargetFbs)
	assert.Equal(t, 140.0, p.TargetPpbs)
	assert.Equal(t, DefaultDailyCalories, p.DailyCalories)
	assert.Equal(t, 250.0, p.TargetCarbs)
	assert.Equal(t, 100.0, p.TargetProtein)
	assert.Equal(t, 66.7, p.TargetFat)
	assert.Equal(t, "2024-03-10", p.LastResetDate)
	assert.Nil(t, p.InitialBloodSugar())

	e := f.entry(t, "u1")
	assert.Equal(t, "Asha", e.Name)
	assert.Zero(t, e.TotalPoints)
}

func TestCreateProfileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")
	_, err := f.ledger.LogMeal(ctx, "u1", "rice", 100, "lunch")
	require.NoError(t, err)

	p, err := f.profiles.CreateProfile(ctx, "u1", "Someone Else", "")
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.DisplayName)
	assert.Equal(t, 18, p.TotalPoints)
}

func TestUpdateProfileComputesTargetsWhenComplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")

	partial, err := f.profiles.UpdateProfile(ctx, "u1", &types.UpdateProfileRequest{HeightCm: floatp(160)})
	require.NoError(t, err)
	assert.False(t, partial.HasProfile)
	assert.Equal(t, DefaultDailyCalories, partial.DailyCalories)

	p, err := f.profiles.UpdateProfile(ctx, "u1", completeMetrics())
	require.NoError(t, err)
	assert.True(t, p.HasProfile)
	assert.Equal(t, "female", p.Gender)
	assert.Equal(t, 1408, p.DailyCalories)
	assert.Equal(t, 176.0, p.TargetCarbs)
	assert.Equal(t, 70.4, p.TargetProtein)
	assert.Equal(t, 46.9, p.TargetFat)

	stored := f.profile(t, "u1")
	assert.True(t, stored.HasProfile)
	assert.Equal(t, 1408, stored.DailyCalories)
	assert.Equal(t, "type2", stored.DiabetesType)
	assert.Equal(t, 60.0, stored.WeightKg)
}

func TestUpdateProfileRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")

	tests := []struct {
		name string
		req  *types.UpdateProfileRequest
	}{
		{"age", &types.UpdateProfileRequest{Age: intp(0)}},
		{"height", &types.UpdateProfileRequest{HeightCm: floatp(20)}},
		{"weight", &types.UpdateProfileRequest{WeightKg: floatp(900)}},
		{"gender", &types.UpdateProfileRequest{Gender: strp("robot")}},
		{"activity", &types.UpdateProfileRequest{ActivityLevel: strp("extreme")}},
		{"diabetes type", &types.UpdateProfileRequest{DiabetesType: strp("type9")}},
		{"blank name", &types.UpdateProfileRequest{DisplayName: strp("   ")}},
		{"hba1c", &types.UpdateProfileRequest{Hba1cLevel: floatp(22)}},
		{"medication", &types.UpdateProfileRequest{MedicationStatus: strp("herbal")}},
		{"diet", &types.UpdateProfileRequest{PreferredDietType: strp("carnivore")}},
		{"long allergy", &types.UpdateProfileRequest{Allergies: &[]string{strings.Repeat("x", 101)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.profiles.UpdateProfile(context.Background(), "u1", tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateProfileRequiresDiabetesType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")

	req := completeMetrics()
	req.DiabetesType = nil
	p, err := f.profiles.UpdateProfile(ctx, "u1", req)
	require.NoError(t, err)
	assert.False(t, p.HasProfile)
	assert.Equal(t, 1408, p.DailyCalories, "targets follow the body metrics")
	assert.False(t, f.profile(t, "u1").HasProfile)

	p, err = f.profiles.UpdateProfile(ctx, "u1", &types.UpdateProfileRequest{DiabetesType: strp("Type1")})
	require.NoError(t, err)
	assert.True(t, p.HasProfile)
	assert.True(t, f.profile(t, "u1").HasProfile)
}

func TestUpdateProfileMedicalRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")

	req := completeMetrics()
	req.Hba1cLevel = floatp(7.2)
	req.MedicationStatus = strp("Insulin-And-Oral")
	req.PreferredDietType = strp("low-carb")
	req.HealthConditions = &[]string{" hypertension ", "", "thyroid"}
	req.Allergies = &[]string{"peanuts"}
	p, err := f.profiles.UpdateProfile(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "insulin-and-oral", p.MedicationStatus)

	stored := f.profile(t, "u1")
	assert.Equal(t, 7.2, stored.Hba1cLevel)
	assert.Equal(t, "insulin-and-oral", stored.MedicationStatus)
	assert.Equal(t, "low-carb", stored.PreferredDietType)
	assert.Equal(t, []string{"hypertension", "thyroid"}, []string(stored.HealthConditions))
	assert.Equal(t, []string{"peanuts"}, []string(stored.Allergies))

	view := stored.View()
	assert.Equal(t, 23.4, view.BMI)
	assert.Equal(t, nutrition.Normal, view.BMICategory)

	_, err = f.profiles.UpdateProfile(ctx, "u1", &types.UpdateProfileRequest{Allergies: &[]string{}})
	require.NoError(t, err)
	assert.Empty(t, f.profile(t, "u1").Allergies)
}

func TestProfileViewOmitsBMIWithoutMetrics(t *testing.T) {
	f := newFixture(t)
	p := f.createUser(t, "u1", "Asha")

	view := p.View()
	assert.Zero(t, view.BMI)
	assert.Empty(t, view.BMICategory)
}

func TestUpdateProfileNameSyncsLeaderboard(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")

	_, err := f.profiles.UpdateProfile(context.Background(), "u1", &types.UpdateProfileRequest{DisplayName: strp("Asha K")})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", f.entry(t, "u1").Name)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.profiles.UpdateProfile(context.Background(), "ghost", completeMetrics())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecordBloodSugarSetsBaselineAndTargets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")
	_, err := f.profiles.UpdateProfile(ctx, "u1", completeMetrics())
	require.NoError(t, err)

	res, err := f.profiles.RecordBloodSugar(ctx, "u1", 200, 260)
	require.NoError(t, err)
	assert.Equal(t, 180.0, res.Targets.TargetFbs)
	assert.Equal(t, 234.0, res.Targets.TargetPpbs)
	assert.False(t, res.Targets.IsAtIdealLevel)
	assert.Equal(t, 1197, res.Profile.DailyCalories)

	want := nutrition.AllocateMacros(1197, 200, 260, 180, 234)
	assert.Equal(t, want.Carbs, res.Profile.TargetCarbs)
	assert.Equal(t, want.CarbPercent, res.Profile.CarbPercent)

	stored := f.profile(t, "u1")
	require.NotNil(t, stored.InitialBloodSugar())
	assert.Equal(t, 200.0, stored.InitialBloodSugar().Fbs)
	assert.Equal(t, "2024-03-10", stored.TargetSetDate)
	assert.Equal(t, 180.0, stored.TargetFbs)

	f.clock.Set(f.clock.Now().Add(time.Hour))
	res, err = f.profiles.RecordBloodSugar(ctx, "u1", 150, 200)
	require.NoError(t, err)
	assert.Equal(t, 135.0, res.Targets.TargetFbs)
	assert.Equal(t, 180.0, res.Targets.TargetPpbs)
	assert.Equal(t, 1267, res.Profile.DailyCalories)

	stored = f.profile(t, "u1")
	assert.Equal(t, 200.0, stored.InitialFbs, "baseline is kept")
	assert.Equal(t, 150.0, stored.CurrentFbs)

	history, err := f.profiles.BloodSugarHistory(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 150.0, history[0].Fbs)
	assert.Equal(t, 135.0, history[0].TargetFbs)
	assert.Equal(t, 200.0, history[1].Fbs)
}

func TestRecordBloodSugarWithoutMetricsKeepsCalories(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")

	res, err := f.profiles.RecordBloodSugar(context.Background(), "u1", 95, 130)
	require.NoError(t, err)
	assert.True(t, res.Targets.IsAtIdealLevel)
	assert.Equal(t, 100.0, res.Targets.TargetFbs)
	assert.Equal(t, DefaultDailyCalories, res.Profile.DailyCalories)
}

func TestRecordBloodSugarRejectsOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")

	_, err := f.profiles.RecordBloodSugar(context.Background(), "u1", 10, 140)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.profiles.RecordBloodSugar(context.Background(), "u1", 100, 700)
	assert.ErrorIs(t, err, ErrInvalidInput)

	p := f.profile(t, "u1")
	assert.Nil(t, p.InitialBloodSugar())
}

func TestGetProfileRollsOverLedger(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")
	_, err := f.ledger.LogMeal(ctx, "u1", "rice", 150, "lunch")
	require.NoError(t, err)

	same, err := f.profiles.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 195.0, same.ConsumedCalories)

	f.clock.AddDays(1)
	p, err := f.profiles.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, p.ConsumedCalories)
	assert.Zero(t, p.MealsLoggedToday)
	assert.Equal(t, "2024-03-11", p.LastResetDate)
	assert.Equal(t, 18, p.TotalPoints)

	stored := f.profile(t, "u1")
	assert.Zero(t, stored.ConsumedCalories)
	assert.Equal(t, "2024-03-11", stored.LastResetDate)
}

func TestWritesOnNewDayRollOverLedger(t *testing.T) {
	tests := []struct {
		name  string
		write func(ctx context.Context, f *fixture) (*models.UserProfile, error)
	}{
		{"update profile", func(ctx context.Context, f *fixture) (*models.UserProfile, error) {
			return f.profiles.UpdateProfile(ctx, "u1", &types.UpdateProfileRequest{DisplayName: strp("Asha K")})
		}},
		{"record blood sugar", func(ctx context.Context, f *fixture) (*models.UserProfile, error) {
			res, err := f.profiles.RecordBloodSugar(ctx, "u1", 150, 200)
			if err != nil {
				return nil, err
			}
			return res.Profile, nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			f.createUser(t, "u1", "Asha")
			_, err := f.ledger.LogMeal(ctx, "u1", "rice", 150, "lunch")
			require.NoError(t, err)

			f.clock.AddDays(1)
			p, err := tt.write(ctx, f)
			require.NoError(t, err)
			assert.Zero(t, p.ConsumedCalories)
			assert.Zero(t, p.ConsumedCarbs)
			assert.Zero(t, p.MealsLoggedToday)
			assert.Equal(t, "2024-03-11", p.LastResetDate)
			assert.Equal(t, 18, p.TotalPoints)

			stored := f.profile(t, "u1")
			assert.Zero(t, stored.ConsumedCalories)
			assert.Zero(t, stored.MealsLoggedToday)
			assert.Equal(t, "2024-03-11", stored.LastResetDate)
		})
	}
}

func TestGetDailyProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")
	_, err := f.ledger.LogMeal(ctx, "u1", "rice", 150, "lunch")
	require.NoError(t, err)

	progress, err := f.profiles.GetDailyProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", progress.Date)
	assert.Equal(t, MacroProgress{Consumed: 195, Target: 2000, Remaining: 1805, Percent: 9.8}, progress.Calories)
	assert.Equal(t, 42.0, progress.Carbs.Consumed)
	assert.Equal(t, 16.8, progress.Carbs.Percent)
	assert.Equal(t, 1, progress.MealsLoggedToday)
}

func TestProgressCapsPercent(t *testing.T) {
	mp := progress(300, 200)
	assert.Equal(t, 100.0, mp.Percent)
	assert.Zero(t, mp.Remaining)
	assert.Zero(t, progress(10, 0).Percent)
}

func TestAwardPointsNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "u1", "Asha")

	total, err := f.profiles.AwardPoints(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	total, err = f.profiles.AwardPoints(ctx, "u1", -25)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, f.entry(t, "u1").TotalPoints)

	_, err = f.profiles.AwardPoints(ctx, "ghost", 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
