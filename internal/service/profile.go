package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/glycofit/backend/internal/clock"
	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/nutrition"
	"github.com/glycofit/backend/internal/store"
	"github.com/glycofit/backend/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	DefaultDailyCalories = 2000

	MinBloodSugar = 20.0
	MaxBloodSugar = 600.0

	maxDisplayNameLength = 100
	defaultHistoryLimit  = 30

	MinHba1c = 4.0
	MaxHba1c = 15.0

	maxRecordEntries     = 20
	maxRecordEntryLength = 100
)

var (
	genders = map[string]bool{
		"male": true, "female": true, "other": true, "prefer-not-to-say": true,
	}
	diabetesTypes = map[string]bool{
		"type1": true, "type2": true, "gestational": true, "prediabetes": true, "none": true,
	}
	medicationStatuses = map[string]bool{
		"insulin-only": true, "oral-medication": true, "insulin-and-oral": true, "diet-exercise": true, "none": true,
	}
	dietTypes = map[string]bool{
		"diabetic-friendly": true, "low-carb": true, "mediterranean": true, "vegetarian": true,
		"vegan": true, "keto": true, "balanced": true, "other": true,
	}
)

// BloodSugarResult is the profile after a reading together with the new targets.
type BloodSugarResult struct {
	Profile *models.UserProfile `json:"profile"`
	Targets nutrition.Targets   `json:"targets"`
}

// MacroProgress compares one daily quantity with its target.
type MacroProgress struct {
	Consumed  float64 `json:"consumed"`
	Target    float64 `json:"target"`
	Remaining float64 `json:"remaining"`
	Percent   float64 `json:"percent"`
}

// DailyProgress is today's consumption against the user's targets.
type DailyProgress struct {
	Date             string        `json:"date"`
	Calories         MacroProgress `json:"calories"`
	Carbs            MacroProgress `json:"carbs"`
	Protein          MacroProgress `json:"protein"`
	Fat              MacroProgress `json:"fat"`
	MealsLoggedToday int           `json:"mealsLoggedToday"`
	DailyStreak      int           `json:"dailyStreak"`
	TotalPoints      int           `json:"totalPoints"`
}

// ProfileService owns the user profile document: body metrics, blood sugar
// readings, targets and the daily consumption ledger. Every read or write
// first rolls the ledger over to the clock's current date, and display name
// or point changes are mirrored into the leaderboard entry in the same
// atomic unit.
type ProfileService struct {
	store       store.DocumentStore
	leaderboard *LeaderboardService
	clock       clock.Clock
	log         *zap.Logger
}

// NewProfileService wires the profile service to its document store. The
// leaderboard service receives name changes and the clock decides which day
// the ledger belongs to.
func NewProfileService(st store.DocumentStore, leaderboard *LeaderboardService, c clock.Clock, log *zap.Logger) *ProfileService {
	return &ProfileService{store: st, leaderboard: leaderboard, clock: c, log: log}
}

// CreateProfile creates the profile and leaderboard entry of a new user with
// default targets. It returns the stored profile if one already exists.
func (s *ProfileService) CreateProfile(ctx context.Context, userID, displayName, email string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, invalid("userId", "user id is required")
	}
	displayName = strings.TrimSpace(displayName)
	if utf8.RuneCountInString(displayName) > maxDisplayNameLength {
		return nil, invalid("displayName", "must be at most %d characters", maxDisplayNameLength)
	}

	today := clock.Today(s.clock)
	var profile *models.UserProfile
	created := false
	err := runAtomic(ctx, s.store, func(st store.DocumentStore) error {
		p, err := loadProfile(ctx, st, userID)
		if err == nil {
			profile = p
			return rollover(ctx, st, p, today)
		}
		if !errors.Is(err, ErrUserNotFound) {
			return err
		}

		macros := nutrition.AllocateMacros(DefaultDailyCalories, 0, 0, nutrition.IdealFbs, nutrition.IdealPpbs)
		err = st.Set(ctx, profilesCollection, userID, store.Fields{
			"display_name":    displayName,
			"email":           strings.TrimSpace(email),
			"has_profile":     false,
			"target_fbs":      nutrition.IdealFbs,
			"target_ppbs":     nutrition.IdealPpbs,
			"daily_calories":  DefaultDailyCalories,
			"target_carbs":    macros.Carbs,
			"target_protein":  macros.Protein,
			"target_fat":      macros.Fat,
			"carb_percent":    macros.CarbPercent,
			"protein_percent": macros.ProteinPercent,
			"fat_percent":     macros.FatPercent,
			"last_reset_date": today,
		}, store.SetOptions{})
		if err != nil {
			return storeErr("create profile", err)
		}
		if profile, err = loadProfile(ctx, st, userID); err != nil {
			return err
		}
		created = true
		return s.leaderboard.apply(ctx, st, userID, entryUpdate(profile, true))
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.leaderboard.changed(ctx, userID)
		s.log.Info("profile created", zap.String("user_id", userID))
	}
	return profile, nil
}

// GetProfile returns the profile with the daily ledger rolled over to today.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	p, err := loadProfile(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	if err := rollover(ctx, s.store, p, clock.Today(s.clock)); err != nil {
		return nil, err
	}
	return p, nil
}

type profileChanges struct {
	fields store.Fields
	name   *string
}

func validateUpdate(req *types.UpdateProfileRequest) (profileChanges, error) {
	c := profileChanges{fields: store.Fields{}}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLength {
			return c, invalid("displayName", "must be between 1 and %d characters", maxDisplayNameLength)
		}
		c.fields["display_name"] = name
		c.name = &name
	}
	if req.HeightCm != nil {
		if *req.HeightCm < nutrition.MinHeightCm || *req.HeightCm > nutrition.MaxHeightCm {
			return c, invalid("height", "must be between %.0f and %.0f cm", nutrition.MinHeightCm, nutrition.MaxHeightCm)
		}
		c.fields["height_cm"] = *req.HeightCm
	}
	if req.WeightKg != nil {
		if *req.WeightKg < nutrition.MinWeightKg || *req.WeightKg > nutrition.MaxWeightKg {
			return c, invalid("weight", "must be between %.0f and %.0f kg", nutrition.MinWeightKg, nutrition.MaxWeightKg)
		}
		c.fields["weight_kg"] = *req.WeightKg
	}
	if req.Age != nil {
		if *req.Age < nutrition.MinAgeYears || *req.Age > nutrition.MaxAgeYears {
			return c, invalid("age", "must be between %d and %d", nutrition.MinAgeYears, nutrition.MaxAgeYears)
		}
		c.fields["age"] = *req.Age
	}
	if req.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*req.Gender))
		if !genders[g] {
			return c, invalid("gender", "unknown gender %q", *req.Gender)
		}
		c.fields["gender"] = g
	}
	if req.ActivityLevel != nil {
		level, err := nutrition.ParseActivityLevel(*req.ActivityLevel)
		if err != nil {
			return c, err
		}
		c.fields["activity_level"] = string(level)
	}
	if req.DiabetesType != nil {
		d := strings.ToLower(strings.TrimSpace(*req.DiabetesType))
		if !diabetesTypes[d] {
			return c, invalid("diabetesType", "unknown diabetes type %q", *req.DiabetesType)
		}
		c.fields["diabetes_type"] = d
	}
	if req.Hba1cLevel != nil {
		if *req.Hba1cLevel < MinHba1c || *req.Hba1cLevel > MaxHba1c {
			return c, invalid("hba1cLevel", "must be between %.0f and %.0f%%", MinHba1c, MaxHba1c)
		}
		c.fields["hba1c_level"] = *req.Hba1cLevel
	}
	if req.MedicationStatus != nil {
		m := strings.ToLower(strings.TrimSpace(*req.MedicationStatus))
		if !medicationStatuses[m] {
			return c, invalid("insulinMedicationStatus", "unknown medication status %q", *req.MedicationStatus)
		}
		c.fields["medication_status"] = m
	}
	if req.PreferredDietType != nil {
		d := strings.ToLower(strings.TrimSpace(*req.PreferredDietType))
		if !dietTypes[d] {
			return c, invalid("preferredDietType", "unknown diet type %q", *req.PreferredDietType)
		}
		c.fields["preferred_diet_type"] = d
	}
	if req.HealthConditions != nil {
		list, err := recordEntries("existingHealthConditions", *req.HealthConditions)
		if err != nil {
			return c, err
		}
		c.fields["health_conditions"] = list
	}
	if req.Allergies != nil {
		list, err := recordEntries("allergies", *req.Allergies)
		if err != nil {
			return c, err
		}
		c.fields["allergies"] = list
	}
	return c, nil
}

// recordEntries trims a free-text medical list and drops blank entries.
func recordEntries(field string, entries []string) (datatypes.JSONSlice[string], error) {
	list := make(datatypes.JSONSlice[string], 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if utf8.RuneCountInString(e) > maxRecordEntryLength {
			return nil, invalid(field, "entries must be at most %d characters", maxRecordEntryLength)
		}
		list = append(list, e)
	}
	if len(list) > maxRecordEntries {
		return nil, invalid(field, "at most %d entries are allowed", maxRecordEntries)
	}
	return list, nil
}

// UpdateProfile merges the provided fields into the profile. Once the body
// metrics are complete the calorie, blood sugar and macro targets are recomputed.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	changes, err := validateUpdate(req)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clock)
	var profile *models.UserProfile
	err = runAtomic(ctx, s.store, func(st store.DocumentStore) error {
		p, err := loadProfile(ctx, st, userID)
		if err != nil {
			return err
		}
		if err := rollover(ctx, st, p, today); err != nil {
			return err
		}
		applyChanges(p, changes.fields)

		fields := store.Fields{}
		for k, v := range changes.fields {
			fields[k] = v
		}
		if metrics, complete := p.BodyMetrics(); complete {
			est, err := nutrition.EstimateDailyCalories(metrics, p.CurrentFbs, p.CurrentPpbs)
			if err != nil {
				return err
			}
			targets := nutrition.ComputeProgressiveTargets(p.InitialBloodSugar(), p.CurrentFbs, p.CurrentPpbs)
			setTargets(p, fields, est.DailyCalories, targets)
		}
		if !p.HasProfile && p.MedicalRecordComplete() {
			p.HasProfile = true
			fields["has_profile"] = true
		}
		if len(fields) == 0 {
			profile = p
			return nil
		}

		if err := st.Set(ctx, profilesCollection, userID, fields, merge); err != nil {
			return storeErr("update profile", err)
		}
		if changes.name != nil {
			if err := s.leaderboard.apply(ctx, st, userID, LeaderboardUpdate{Name: changes.name}); err != nil {
				return err
			}
		}
		profile = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changes.name != nil {
		s.leaderboard.changed(ctx, userID)
	}
	return profile, nil
}

func applyChanges(p *models.UserProfile, fields store.Fields) {
	for k, v := range fields {
		switch k {
		case "display_name":
			p.DisplayName = v.(string)
		case "height_cm":
			p.HeightCm = v.(float64)
		case "weight_kg":
			p.WeightKg = v.(float64)
		case "age":
			p.Age = v.(int)
		case "gender":
			p.Gender = v.(string)
		case "activity_level":
			p.ActivityLevel = v.(string)
		case "diabetes_type":
			p.DiabetesType = v.(string)
		case "hba1c_level":
			p.Hba1cLevel = v.(float64)
		case "medication_status":
			p.MedicationStatus = v.(string)
		case "preferred_diet_type":
			p.PreferredDietType = v.(string)
		case "health_conditions":
			p.HealthConditions = v.(datatypes.JSONSlice[string])
		case "allergies":
			p.Allergies = v.(datatypes.JSONSlice[string])
		}
	}
}

// setTargets stores the calorie budget, blood sugar targets and the macro split derived from them.
func setTargets(p *models.UserProfile, fields store.Fields, dailyCalories int, t nutrition.Targets) {
	macros := nutrition.AllocateMacros(dailyCalories, p.CurrentFbs, p.CurrentPpbs, t.TargetFbs, t.TargetPpbs)

	p.DailyCalories = dailyCalories
	p.TargetFbs = t.TargetFbs
	p.TargetPpbs = t.TargetPpbs
	p.TargetCarbs = macros.Carbs
	p.TargetProtein = macros.Protein
	p.TargetFat = macros.Fat
	p.CarbPercent = macros.CarbPercent
	p.ProteinPercent = macros.ProteinPercent
	p.FatPercent = macros.FatPercent

	fields["daily_calories"] = dailyCalories
	fields["target_fbs"] = t.TargetFbs
	fields["target_ppbs"] = t.TargetPpbs
	fields["target_carbs"] = macros.Carbs
	fields["target_protein"] = macros.Protein
	fields["target_fat"] = macros.Fat
	fields["carb_percent"] = macros.CarbPercent
	fields["protein_percent"] = macros.ProteinPercent
	fields["fat_percent"] = macros.FatPercent
}

// RecordBloodSugar stores a new reading pair, keeps the first one as the
// baseline, and re-anchors the progressive targets on it.
func (s *ProfileService) RecordBloodSugar(ctx context.Context, userID string, fbs, ppbs float64) (*BloodSugarResult, error) {
	if fbs < MinBloodSugar || fbs > MaxBloodSugar {
		return nil, invalid("fbs", "must be between %.0f and %.0f mg/dL", MinBloodSugar, MaxBloodSugar)
	}
	if ppbs < MinBloodSugar || ppbs > MaxBloodSugar {
		return nil, invalid("ppbs", "must be between %.0f and %.0f mg/dL", MinBloodSugar, MaxBloodSugar)
	}

	now := s.clock.Now()
	today := now.Format(clock.DateLayout)
	var result *BloodSugarResult
	err := runAtomic(ctx, s.store, func(st store.DocumentStore) error {
		p, err := loadProfile(ctx, st, userID)
		if err != nil {
			return err
		}
		if err := rollover(ctx, st, p, today); err != nil {
			return err
		}

		fields := store.Fields{
			"current_fbs":     fbs,
			"current_ppbs":    ppbs,
			"target_set_date": today,
		}
		if p.InitialRecordedAt == nil {
			p.InitialFbs, p.InitialPpbs, p.InitialRecordedAt = fbs, ppbs, &now
			fields["initial_fbs"] = fbs
			fields["initial_ppbs"] = ppbs
			fields["initial_recorded_at"] = now
		}
		p.CurrentFbs, p.CurrentPpbs, p.TargetSetDate = fbs, ppbs, today

		calories := p.DailyCalories
		if calories <= 0 {
			calories = DefaultDailyCalories
		}
		if metrics, complete := p.BodyMetrics(); complete {
			est, err := nutrition.EstimateDailyCalories(metrics, fbs, ppbs)
			if err != nil {
				return err
			}
			calories = est.DailyCalories
		}
		targets := nutrition.ComputeProgressiveTargets(p.InitialBloodSugar(), fbs, ppbs)
		setTargets(p, fields, calories, targets)

		if err := st.Set(ctx, profilesCollection, userID, fields, merge); err != nil {
			return storeErr("record blood sugar", err)
		}
		err = st.Set(ctx, readingsCollection, uuid.NewString(), store.Fields{
			"user_id":     userID,
			"fbs":         fbs,
			"ppbs":        ppbs,
			"target_fbs":  targets.TargetFbs,
			"target_ppbs": targets.TargetPpbs,
			"read_date":   today,
			"created_at":  now,
		}, store.SetOptions{})
		if err != nil {
			return storeErr("append blood sugar reading", err)
		}

		result = &BloodSugarResult{Profile: p, Targets: targets}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BloodSugarHistory returns the most recent readings first.
func (s *ProfileService) BloodSugarHistory(ctx context.Context, userID string, limit int) ([]models.BloodSugarReading, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var readings []models.BloodSugarReading
	err := s.store.QueryEqual(ctx, readingsCollection,
		[]store.Filter{store.Eq("user_id", userID)},
		store.QueryOptions{OrderBy: "created_at", Descending: true, Limit: limit},
		&readings,
	)
	if err != nil {
		return nil, storeErr("query blood sugar readings", err)
	}
	return readings, nil
}

// GetDailyProgress compares today's consumption with the profile targets.
func (s *ProfileService) GetDailyProgress(ctx context.Context, userID string) (*DailyProgress, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DailyProgress{
		Date:             p.LastResetDate,
		Calories:         progress(p.ConsumedCalories, float64(p.DailyCalories)),
		Carbs:            progress(p.ConsumedCarbs, p.TargetCarbs),
		Protein:          progress(p.ConsumedProtein, p.TargetProtein),
		Fat:              progress(p.ConsumedFat, p.TargetFat),
		MealsLoggedToday: p.MealsLoggedToday,
		DailyStreak:      p.DailyStreak,
		TotalPoints:      p.TotalPoints,
	}, nil
}

func progress(consumed, target float64) MacroProgress {
	mp := MacroProgress{
		Consumed:  round1(consumed),
		Target:    round1(target),
		Remaining: round1(math.Max(0, target-consumed)),
	}
	if target > 0 {
		mp.Percent = round1(math.Min(100, consumed/target*100))
	}
	return mp
}

// AwardPoints adds points to a user, never letting the totals fall below zero,
// and returns the new total.
func (s *ProfileService) AwardPoints(ctx context.Context, userID string, points int) (int, error) {
	if points == 0 {
		p, err := loadProfile(ctx, s.store, userID)
		if err != nil {
			return 0, err
		}
		return p.TotalPoints, nil
	}

	var total int
	err := runAtomic(ctx, s.store, func(st store.DocumentStore) error {
		p, err := loadProfile(ctx, st, userID)
		if err != nil {
			return err
		}
		p.TotalPoints = max(0, p.TotalPoints+points)
		p.CurrentPoints = max(0, p.CurrentPoints+points)
		err = st.Set(ctx, profilesCollection, userID, store.Fields{
			"total_points":   p.TotalPoints,
			"current_points": p.CurrentPoints,
		}, merge)
		if err != nil {
			return storeErr("award points", err)
		}
		total = p.TotalPoints
		return s.leaderboard.apply(ctx, st, userID, LeaderboardUpdate{TotalPoints: &p.TotalPoints})
	})
	if err != nil {
		return 0, err
	}
	s.leaderboard.changed(ctx, userID)
	return total, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
