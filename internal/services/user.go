package services

import (
	"errors"
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

// UserService covers the admin-facing user directory.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserItem is a directory row with per-user aggregates.
type UserItem struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	ProjectsCount int       `json:"projects_count"`
	AverageRating *float64  `json:"average_rating"`
}

// List returns every user with membership and rating aggregates.
func (s *UserService) List() ([]UserItem, error) {
	var items []UserItem
	err := s.db.Model(&models.User{}).
		Select("users.id, users.name, users.email, users.role, users.created_at, COUNT(DISTINCT project_members.project_id) AS projects_count, AVG(ratings.rating) AS average_rating").
		Joins("LEFT JOIN project_members ON project_members.user_id = users.id").
		Joins("LEFT JOIN ratings ON ratings.specialist_id = users.id").
		Group("users.id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []UserItem{}
	}
	return items, nil
}

// Delete removes a user and every row referencing them, dependents first so
// a partial failure rolls back to a consistent state.
func (s *UserService) Delete(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("user not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assigned_to = ?", userID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("specialist_id = ? OR manager_id = ?", userID, userID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
