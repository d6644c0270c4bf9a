package models

import "time"

// LeaderboardEntry is the denormalized ranking row of a user.
type LeaderboardEntry struct {
	ID            string    `gorm:"type:varchar(128);primarykey" json:"userId"`
	Name          string    `gorm:"size:100" json:"name"`
	TotalPoints   int       `gorm:"not null;default:0;index" json:"totalPoints"`
	CurrentStreak int       `gorm:"not null;default:0" json:"currentStreak"`
	LongestStreak int       `gorm:"not null;default:0" json:"longestStreak"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (LeaderboardEntry) TableName() string { return "leaderboard_entries" }
