package services

import (
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/logger"
	"github.com/nazarshv/teamtrack/backend/pkg/metrics"
	"gorm.io/gorm"
)

// DefaultExpiryDays is how long a notification stays active before it is
// excluded from unread counts and listings.
const DefaultExpiryDays = 30

// DefaultListLimit caps how many notifications a single listing returns.
const DefaultListLimit = 50

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// CreateNotificationParams describes one notification to insert.
type CreateNotificationParams struct {
	UserID     uint
	ProjectID  *uint
	Type       string
	Message    string
	Priority   string // defaults to normal
	ExpiryDays int    // defaults to DefaultExpiryDays
}

// Create inserts a single notification and returns any storage error.
// Callers on a domain write path should use Deliver instead, which applies
// the suppressed-failure contract.
func (s *NotificationService) Create(p CreateNotificationParams) error {
	if p.Priority == "" {
		p.Priority = models.NotifyNormal
	}
	if p.ExpiryDays == 0 {
		p.ExpiryDays = DefaultExpiryDays
	}
	expiry := time.Now().AddDate(0, 0, p.ExpiryDays)

	n := models.Notification{
		UserID:     p.UserID,
		ProjectID:  p.ProjectID,
		Type:       p.Type,
		Message:    p.Message,
		Priority:   p.Priority,
		ExpiryDate: &expiry,
	}
	if err := s.db.Create(&n).Error; err != nil {
		return err
	}
	metrics.NotificationsCreated.Inc()
	return nil
}

// Delivery records the outcome of a notification fan-out. Failures are
// logged and counted but never surfaced to the triggering operation.
type Delivery struct {
	Attempted int
	Failed    int
}

// Delivered reports how many notifications were actually created.
func (d Delivery) Delivered() int {
	return d.Attempted - d.Failed
}

// Deliver creates one notification, swallowing any failure. The triggering
// operation must still succeed when notification storage misbehaves.
func (s *NotificationService) Deliver(p CreateNotificationParams) Delivery {
	d := Delivery{Attempted: 1}
	if err := s.Create(p); err != nil {
		d.Failed++
		metrics.NotificationsSuppressed.Inc()
		logger.Error().Err(err).
			Uint("user_id", p.UserID).
			Str("type", p.Type).
			Msg("notification delivery failed")
	}
	return d
}

// DeliverAll fans one message out to every recipient in the set.
func (s *NotificationService) DeliverAll(userIDs []uint, p CreateNotificationParams) Delivery {
	var d Delivery
	for _, id := range userIDs {
		p.UserID = id
		r := s.Deliver(p)
		d.Attempted += r.Attempted
		d.Failed += r.Failed
	}
	return d
}

// NotificationItem is a notification joined with its project name.
type NotificationItem struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	ProjectID   *uint     `json:"project_id"`
	ProjectName *string   `json:"project_name"`
	CreatedAt   time.Time `json:"created_at"`
	IsRead      bool      `json:"is_read"`
	Priority    string    `json:"priority"`
}

// ListActive returns the user's unexpired notifications, newest first.
// Read notifications are included; expired ones are not.
func (s *NotificationService) ListActive(userID uint, limit int) ([]NotificationItem, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	var items []NotificationItem
	err := s.db.Model(&models.Notification{}).
		Select("notifications.id, notifications.type, notifications.message, notifications.project_id, projects.name AS project_name, notifications.created_at, notifications.is_read, notifications.priority").
		Joins("LEFT JOIN projects ON projects.id = notifications.project_id").
		Where("notifications.user_id = ?", userID).
		Where("notifications.expiry_date IS NULL OR notifications.expiry_date > ?", time.Now()).
		Order("notifications.created_at DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []NotificationItem{}
	}
	return items, nil
}

// UnreadCount returns the number of active (unread, unexpired) notifications.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Where("expiry_date IS NULL OR expiry_date > ?", time.Now()).
		Count(&count).Error
	return count, err
}

// MarkRead sets is_read for each id owned by the user. Ids owned by someone
// else or not present are silently skipped; re-marking is a no-op.
func (s *NotificationService) MarkRead(userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Model(&models.Notification{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Update("is_read", true).Error
}
