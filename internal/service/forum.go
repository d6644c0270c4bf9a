package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/glycofit/backend/internal/gamification"
	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const (
	CategoryAll = "all"

	minTitleLength   = 5
	minContentLength = 10
	maxTags          = 5

	defaultThreadLimit = 50
	maxThreadLimit     = 100
)

var forumCategories = []string{"progress", "recipes", "support", "questions", "tips", "success", "general"}

// ForumCategory is a selectable thread category.
type ForumCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Categories returns the thread categories in display order.
func Categories() []ForumCategory {
	title := cases.Title(language.English)
	out := make([]ForumCategory, len(forumCategories))
	for i, c := range forumCategories {
		out[i] = ForumCategory{ID: c, Label: title.String(c)}
	}
	return out
}

func validCategory(c string) bool {
	for _, known := range forumCategories {
		if c == known {
			return true
		}
	}
	return false
}

// PointsAwarder credits or debits gamification points.
type PointsAwarder interface {
	AwardPoints(ctx context.Context, userID string, points int) (int, error)
}

// ThreadDetail is a thread with its replies, oldest first.
type ThreadDetail struct {
	Thread  models.ForumThread  `json:"thread"`
	Replies []models.ForumReply `json:"replies"`
}

// LikeResult is the state of an item after a like toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ForumService manages community threads, replies and likes.
type ForumService struct {
	db     *gorm.DB
	points PointsAwarder
	log    *zap.Logger
}

func NewForumService(db *gorm.DB, points PointsAwarder, log *zap.Logger) *ForumService {
	return &ForumService{db: db, points: points, log: log}
}

func (s *ForumService) authorName(ctx context.Context, userID string) (string, error) {
	var p models.UserProfile
	err := s.db.WithContext(ctx).Select("id", "display_name").Where("id = ?", userID).Take(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return "", storeErr("load author", err)
	}
	return p.DisplayName, nil
}

func (s *ForumService) award(ctx context.Context, userID string, points int) {
	if s.points == nil {
		return
	}
	if _, err := s.points.AwardPoints(ctx, userID, points); err != nil {
		s.log.Warn("failed to award forum points",
			zap.String("user_id", userID), zap.Int("points", points), zap.Error(err))
	}
}

// CreateThread starts a thread and credits its author.
func (s *ForumService) CreateThread(ctx context.Context, userID string, req *types.CreateThreadRequest) (*models.ForumThread, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	category := strings.ToLower(strings.TrimSpace(req.Category))
	if utf8.RuneCountInString(title) < minTitleLength {
		return nil, invalid("title", "must be at least %d characters", minTitleLength)
	}
	if utf8.RuneCountInString(content) < minContentLength {
		return nil, invalid("content", "must be at least %d characters", minContentLength)
	}
	if !validCategory(category) {
		return nil, invalid("category", "unknown category %q", req.Category)
	}
	tags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > maxTags {
		return nil, invalid("tags", "at most %d tags are allowed", maxTags)
	}

	name, err := s.authorName(ctx, userID)
	if err != nil {
		return nil, err
	}
	thread := &models.ForumThread{
		AuthorID:   userID,
		AuthorName: name,
		Title:      title,
		Content:    content,
		Category:   category,
		Tags:       tags,
	}
	if err := s.db.WithContext(ctx).Create(thread).Error; err != nil {
		return nil, storeErr("create thread", err)
	}

	s.award(ctx, userID, gamification.ThreadPoints)
	return thread, nil
}

// ListThreads returns threads newest first, optionally restricted to a category.
func (s *ForumService) ListThreads(ctx context.Context, category string, limit int) ([]models.ForumThread, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	q := s.db.WithContext(ctx).Model(&models.ForumThread{})
	if category != "" && category != CategoryAll {
		if !validCategory(category) {
			return nil, invalid("category", "unknown category %q", category)
		}
		q = q.Where("category = ?", category)
	}

	var threads []models.ForumThread
	if err := q.Order("created_at DESC").Limit(threadLimit(limit)).Find(&threads).Error; err != nil {
		return nil, storeErr("list threads", err)
	}
	return threads, nil
}

// SearchThreads matches term case-insensitively anywhere in title or content.
func (s *ForumService) SearchThreads(ctx context.Context, term string, limit int) ([]models.ForumThread, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListThreads(ctx, CategoryAll, limit)
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	var threads []models.ForumThread
	err := s.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("created_at DESC").
		Limit(threadLimit(limit)).
		Find(&threads).Error
	if err != nil {
		return nil, storeErr("search threads", err)
	}
	return threads, nil
}

func threadLimit(limit int) int {
	if limit <= 0 {
		return defaultThreadLimit
	}
	return min(limit, maxThreadLimit)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetThread returns a thread and its replies.
func (s *ForumService) GetThread(ctx context.Context, id uuid.UUID) (*ThreadDetail, error) {
	var detail ThreadDetail
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&detail.Thread).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, storeErr("load thread", err)
	}
	err := s.db.WithContext(ctx).
		Where("thread_id = ?", id).
		Order("created_at ASC").
		Find(&detail.Replies).Error
	if err != nil {
		return nil, storeErr("load replies", err)
	}
	return &detail, nil
}

// Reply adds a reply to a thread and credits its author.
func (s *ForumService) Reply(ctx context.Context, userID string, threadID uuid.UUID, content string) (*models.ForumReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "reply must not be empty")
	}
	name, err := s.authorName(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply := &models.ForumReply{
		ThreadID:   threadID,
		AuthorID:   userID,
		AuthorName: name,
		Content:    content,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ForumThread{}).
			Where("id = ?", threadID).
			UpdateColumn("reply_count", gorm.Expr("reply_count + ?", 1))
		if res.Error != nil {
			return storeErr("update reply count", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrThreadNotFound
		}
		if err := tx.Create(reply).Error; err != nil {
			return storeErr("create reply", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.award(ctx, userID, gamification.ReplyPoints)
	return reply, nil
}

// ToggleLike likes an item for the user, or removes the like if it exists.
// The item's author gains points for a like and loses them when it is withdrawn.
func (s *ForumService) ToggleLike(ctx context.Context, userID string, itemID uuid.UUID, itemType string) (*LikeResult, error) {
	var item interface{}
	switch itemType {
	case models.ItemTypeThread:
		item = &models.ForumThread{}
	case models.ItemTypeReply:
		item = &models.ForumReply{}
	default:
		return nil, invalid("itemType", "unknown item type %q", itemType)
	}

	var (
		result   LikeResult
		authorID string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", itemID).Take(item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return storeErr("load forum item", err)
		}

		var like models.ForumLike
		err := tx.Where("item_id = ? AND user_id = ?", itemID, userID).Take(&like).Error
		delta := 1
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return storeErr("remove like", err)
			}
			delta = -1
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.ForumLike{ItemID: itemID, ItemType: itemType, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return storeErr("add like", err)
			}
			result.Liked = true
		default:
			return storeErr("load like", err)
		}

		if err := tx.Model(item).UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error; err != nil {
			return storeErr("update likes", err)
		}
		if err := tx.Where("id = ?", itemID).Take(item).Error; err != nil {
			return storeErr("reload forum item", err)
		}
		switch v := item.(type) {
		case *models.ForumThread:
			result.Likes, authorID = v.Likes, v.AuthorID
		case *models.ForumReply:
			result.Likes, authorID = v.Likes, v.AuthorID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if authorID != userID {
		points := gamification.LikeReceivedPoints
		if !result.Liked {
			points = -points
		}
		s.award(ctx, authorID, points)
	}
	return &result, nil
}
