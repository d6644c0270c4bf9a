package types

// CreateProfileRequest is sent once after the first sign-in
type CreateProfileRequest struct {
	DisplayName string `json:"displayName" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// UpdateProfileRequest carries the profile fields to change; nil fields are left untouched
type UpdateProfileRequest struct {
	DisplayName   *string  `json:"displayName"`
	HeightCm      *float64 `json:"height"`
	WeightKg      *float64 `json:"weight"`
	Age           *int     `json:"age"`
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activityLevel"`
	DiabetesType  *string  `json:"diabetesType"`

	Hba1cLevel        *float64  `json:"hba1cLevel"`
	MedicationStatus  *string   `json:"insulinMedicationStatus"`
	HealthConditions  *[]string `json:"existingHealthConditions"`
	Allergies         *[]string `json:"allergies"`
	PreferredDietType *string   `json:"preferredDietType"`
}

// BloodSugarRequest records a fasting / post-prandial reading pair in mg/dL
type BloodSugarRequest struct {
	Fbs  float64 `json:"fbs" binding:"required"`
	Ppbs float64 `json:"ppbs" binding:"required"`
}

// LogMealRequest represents the request body for logging a meal
type LogMealRequest struct {
	FoodName string  `json:"foodName" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	MealType string  `json:"mealType"`
}

// CreateThreadRequest represents the request body for starting a forum thread
type CreateThreadRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
}

// CreateReplyRequest represents the request body for replying to a thread
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// ToggleLikeRequest likes or unlikes a thread or reply
type ToggleLikeRequest struct {
	ItemID   string `json:"itemId" binding:"required,uuid"`
	ItemType string `json:"itemType" binding:"required,oneof=thread reply"`
}
