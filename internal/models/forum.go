package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Forum item types that can be liked.
const (
	ItemTypeThread = "thread"
	ItemTypeReply  = "reply"
)

type ForumThread struct {
	ID         uuid.UUID                   `gorm:"type:varchar(36);primarykey" json:"id"`
	AuthorID   string                      `gorm:"type:varchar(128);not null;index" json:"authorId"`
	AuthorName string                      `gorm:"size:100" json:"authorName"`
	Title      string                      `gorm:"size:200;not null" json:"title"`
	Content    string                      `gorm:"type:text;not null" json:"content"`
	Category   string                      `gorm:"size:32;not null;index" json:"category"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Likes      int                         `gorm:"not null;default:0" json:"likes"`
	ReplyCount int                         `gorm:"not null;default:0" json:"replyCount"`
	CreatedAt  time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time                   `json:"updatedAt"`
}

func (ForumThread) TableName() string { return "forum_threads" }

func (t *ForumThread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type ForumReply struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ThreadID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"threadId"`
	AuthorID   string    `gorm:"type:varchar(128);not null" json:"authorId"`
	AuthorName string    `gorm:"size:100" json:"authorName"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Likes      int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (ForumReply) TableName() string { return "forum_replies" }

func (r *ForumReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ForumLike records that a user liked a thread or reply.
type ForumLike struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ItemID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_forum_likes_item_user" json:"itemId"`
	ItemType  string    `gorm:"size:16;not null" json:"itemType"`
	UserID    string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_forum_likes_item_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ForumLike) TableName() string { return "forum_likes" }

func (l *ForumLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// AllModels lists every table owned by the application, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&UserProfile{},
		&FoodItem{},
		&FoodLog{},
		&BloodSugarReading{},
		&LeaderboardEntry{},
		&ForumThread{},
		&ForumReply{},
		&ForumLike{},
	}
}
