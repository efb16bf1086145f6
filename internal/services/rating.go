package services

import (
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// RatingItem is a rating with both participants' names resolved.
type RatingItem struct {
	ID             uint      `json:"id"`
	SpecialistID   uint      `json:"specialist_id"`
	SpecialistName string    `json:"specialist_name"`
	Rating         float64   `json:"rating"`
	Comment        string    `json:"comment"`
	ManagerName    string    `json:"manager_name"`
	Timestamp      time.Time `json:"timestamp"`
	Type           string    `json:"type"`
}

// List returns the project's ratings. Specialists only see their own;
// managers and admins see everyone's.
func (s *RatingService) List(user *models.User, projectID uint) ([]RatingItem, error) {
	query := s.db.Model(&models.Rating{}).
		Select("ratings.id, ratings.specialist_id, specialists.name AS specialist_name, ratings.rating, ratings.comment, managers.name AS manager_name, ratings.timestamp, ratings.type").
		Joins("JOIN users AS specialists ON specialists.id = ratings.specialist_id").
		Joins("JOIN users AS managers ON managers.id = ratings.manager_id").
		Where("ratings.project_id = ?", projectID)

	if user.Role == models.RoleSpecialist {
		query = query.Where("ratings.specialist_id = ?", user.ID)
	}

	var items []RatingItem
	if err := query.Scan(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = []RatingItem{}
	}
	return items, nil
}

type AddRatingRequest struct {
	SpecialistID uint     `json:"specialist_id" binding:"required"`
	Rating       *float64 `json:"rating" binding:"required"`
	Comment      string   `json:"comment"`
	Type         string   `json:"type"`
}

// Add records a rating, replacing any previous rating of the same type for
// the (project, specialist) pair. The upsert keys on the logical identity,
// so re-rating edits in place instead of stacking rows.
func (s *RatingService) Add(user *models.User, projectID uint, req *AddRatingRequest) error {
	if user.Role != models.RoleManager {
		return response.NewForbidden("only managers can add ratings")
	}

	value := *req.Rating
	if value < 0 || value > 100 {
		return response.NewBadRequest("rating must be between 0 and 100")
	}

	ratingType := req.Type
	if ratingType == "" {
		ratingType = models.RatingFinal
	}
	if ratingType != models.RatingInterim && ratingType != models.RatingFinal {
		return response.NewBadRequest("invalid rating type")
	}

	var count int64
	s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ? AND role = ?", projectID, req.SpecialistID, string(models.RoleSpecialist)).
		Count(&count)
	if count == 0 {
		return response.NewBadRequest("specialist is not a member of this project")
	}

	rating := models.Rating{
		ProjectID:    projectID,
		SpecialistID: req.SpecialistID,
		Rating:       value,
		Comment:      req.Comment,
		ManagerID:    user.ID,
		Type:         ratingType,
		Timestamp:    time.Now(),
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}, {Name: "specialist_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rating", "comment", "manager_id", "timestamp",
		}),
	}).Create(&rating).Error
}
