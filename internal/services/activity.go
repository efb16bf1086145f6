package services

import (
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ActivityService appends to and reads the user activity log. Writes are a
// pure sink: a failed append is logged and never fails the caller.
type ActivityService struct {
	db      *gorm.DB
	sweeper *cron.Cron
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Log appends one activity entry. Errors are swallowed; nothing downstream
// depends on the log being complete.
func (s *ActivityService) Log(userID uint, projectID *uint, actionType, details string) {
	entry := models.ActivityLog{
		UserID:        userID,
		ProjectID:     projectID,
		ActionType:    actionType,
		ActionDetails: details,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Error().Err(err).Str("action", actionType).Msg("failed to log activity")
	}
}

// ActivityItem is a log entry joined with the acting user's name.
type ActivityItem struct {
	ID            uint      `json:"id"`
	UserName      string    `json:"user_name"`
	ActionType    string    `json:"action_type"`
	ActionDetails string    `json:"action_details"`
	Timestamp     time.Time `json:"timestamp"`
}

// ListByProject returns the latest entries for a project, newest first.
func (s *ActivityService) ListByProject(projectID uint, limit int) ([]ActivityItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var items []ActivityItem
	err := s.db.Model(&models.ActivityLog{}).
		Select("user_activity.id, users.name AS user_name, user_activity.action_type, user_activity.action_details, user_activity.timestamp").
		Joins("JOIN users ON users.id = user_activity.user_id").
		Where("user_activity.project_id = ?", projectID).
		Order("user_activity.timestamp DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ActivityItem{}
	}
	return items, nil
}

// CleanupOld deletes entries older than retentionDays and returns how many
// rows were removed. retentionDays <= 0 disables cleanup.
func (s *ActivityService) CleanupOld(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("timestamp < ?", cutoff).Delete(&models.ActivityLog{})
	return result.RowsAffected, result.Error
}

// StartRetentionSweeper runs CleanupOld once a day. It touches only the
// activity log; notifications expire logically and are never deleted here.
func (s *ActivityService) StartRetentionSweeper(retentionDays int) {
	if retentionDays <= 0 {
		logger.Infof("activity retention sweeper disabled")
		return
	}

	s.sweeper = cron.New()
	_, err := s.sweeper.AddFunc("@daily", func() {
		deleted, err := s.CleanupOld(retentionDays)
		if err != nil {
			logger.Error().Err(err).Msg("activity retention sweep failed")
			return
		}
		if deleted > 0 {
			logger.Infof("activity retention sweep removed %d entries older than %d days", deleted, retentionDays)
		}
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to schedule activity retention sweeper")
		return
	}
	s.sweeper.Start()
}

// StopRetentionSweeper stops the scheduler if it was started.
func (s *ActivityService) StopRetentionSweeper() {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
}
