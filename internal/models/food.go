package models

import "time"

// FoodItem is a reference food with nutrients per 100 g.
type FoodItem struct {
	ID       uint    `gorm:"primarykey" json:"-"`
	Name     string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
}

func (FoodItem) TableName() string { return "food_items" }

// FoodLog is the immutable record of one logged meal.
type FoodLog struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       string    `gorm:"type:varchar(128);not null;index:idx_food_logs_user_date" json:"userId"`
	FoodName     string    `gorm:"size:255;not null" json:"foodName"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Calories     float64   `json:"calories"`
	Carbs        float64   `json:"carbs"`
	Protein      float64   `json:"protein"`
	Fat          float64   `json:"fat"`
	Sugar        float64   `json:"sugar"`
	Fiber        float64   `json:"fiber"`
	Sodium       float64   `json:"sodium"`
	MealType     string    `gorm:"size:32" json:"mealType"`
	PointsEarned int       `json:"pointsEarned"`
	LogDate      string    `gorm:"size:10;not null;index:idx_food_logs_user_date" json:"date"`
	CreatedAt    time.Time `json:"timestamp"`
}

func (FoodLog) TableName() string { return "food_logs" }

// BloodSugarReading is one entry of a user's reading history.
type BloodSugarReading struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     string    `gorm:"type:varchar(128);not null;index" json:"userId"`
	Fbs        float64   `json:"fbs"`
	Ppbs       float64   `json:"ppbs"`
	TargetFbs  float64   `json:"targetFbs"`
	TargetPpbs float64   `json:"targetPpbs"`
	ReadDate   string    `gorm:"size:10;not null" json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (BloodSugarReading) TableName() string { return "blood_sugar_readings" }
