package services

import (
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CommentItem is a comment with its author's name resolved.
type CommentItem struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	AuthorName string    `json:"author_name"`
	ParentID   *uint     `json:"parent_id,omitempty"`
}

// List returns the project's comments in posting order.
func (s *CommentService) List(projectID uint) ([]CommentItem, error) {
	var items []CommentItem
	err := s.db.Model(&models.Comment{}).
		Select("comments.id, comments.content, comments.timestamp, users.name AS author_name, comments.parent_id").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.project_id = ?", projectID).
		Order("comments.timestamp ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []CommentItem{}
	}
	return items, nil
}

type AddCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// Add posts a comment to the project's discussion thread.
func (s *CommentService) Add(user *models.User, projectID uint, req *AddCommentRequest) (*models.Comment, error) {
	comment := models.Comment{
		ProjectID: projectID,
		UserID:    user.ID,
		Content:   req.Content,
		ParentID:  req.ParentID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
