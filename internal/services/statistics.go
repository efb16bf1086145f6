package services

import (
	"errors"
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type StatisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

// ProjectStatistics aggregates a project's headline numbers, its recent
// completion trend and a per-specialist breakdown.
type ProjectStatistics struct {
	BasicInfo         ProjectBasicInfo   `json:"basic_info"`
	ProgressHistory   []ProgressPoint    `json:"progress_history"`
	MembersStatistics []MemberStatistics `json:"members_statistics"`
}

type ProjectBasicInfo struct {
	MembersCount   int      `json:"members_count"`
	TotalTasks     int      `json:"total_tasks"`
	CompletedTasks int      `json:"completed_tasks"`
	AverageRating  *float64 `json:"average_rating"`
}

type ProgressPoint struct {
	Date           string  `json:"date"`
	CompletionRate float64 `json:"completion_rate"`
}

type MemberStatistics struct {
	Name           string   `json:"name"`
	AssignedTasks  int      `json:"assigned_tasks"`
	CompletedTasks int      `json:"completed_tasks"`
	CurrentRating  *float64 `json:"current_rating"`
}

// ForProject computes the statistics view for one project.
func (s *StatisticsService) ForProject(projectID uint) (*ProjectStatistics, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	stats := &ProjectStatistics{
		ProgressHistory:   []ProgressPoint{},
		MembersStatistics: []MemberStatistics{},
	}

	var membersCount int64
	if err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Count(&membersCount).Error; err != nil {
		return nil, err
	}
	stats.BasicInfo.MembersCount = int(membersCount)

	var totalTasks, completedTasks int64
	if err := s.db.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Count(&totalTasks).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, models.TaskCompleted).
		Count(&completedTasks).Error; err != nil {
		return nil, err
	}
	stats.BasicInfo.TotalTasks = int(totalTasks)
	stats.BasicInfo.CompletedTasks = int(completedTasks)

	var avg *float64
	if err := s.db.Model(&models.Rating{}).
		Where("project_id = ?", projectID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	stats.BasicInfo.AverageRating = avg

	// Daily completion rate over the last 30 days of task creation.
	cutoff := time.Now().AddDate(0, 0, -30)
	err := s.db.Model(&models.Task{}).
		Select("DATE(created_at) AS date, COUNT(CASE WHEN status = ? THEN 1 END) * 100.0 / COUNT(*) AS completion_rate", models.TaskCompleted).
		Where("project_id = ? AND created_at >= ?", projectID, cutoff).
		Group("DATE(created_at)").
		Order("date").
		Scan(&stats.ProgressHistory).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.ProjectMember{}).
		Select("users.name, COUNT(DISTINCT tasks.id) AS assigned_tasks, COUNT(DISTINCT CASE WHEN tasks.status = ? THEN tasks.id END) AS completed_tasks, ratings.rating AS current_rating", models.TaskCompleted).
		Joins("JOIN users ON users.id = project_members.user_id").
		Joins("LEFT JOIN tasks ON tasks.assigned_to = users.id AND tasks.project_id = project_members.project_id").
		Joins("LEFT JOIN ratings ON ratings.specialist_id = users.id AND ratings.project_id = project_members.project_id").
		Where("project_members.project_id = ? AND project_members.role = ?", projectID, string(models.RoleSpecialist)).
		Group("users.id, users.name, ratings.rating").
		Scan(&stats.MembersStatistics).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// UserStatistics aggregates one user's workload across all their projects.
type UserStatistics struct {
	Overview       UserOverview        `json:"overview"`
	ActiveProjects []UserActiveProject `json:"active_projects"`
	RecentActivity []UserActivityEntry `json:"recent_activity"`
}

type UserOverview struct {
	TotalProjects  int      `json:"total_projects"`
	TotalTasks     int      `json:"total_tasks"`
	CompletedTasks int      `json:"completed_tasks"`
	AverageRating  *float64 `json:"average_rating"`
}

type UserActiveProject struct {
	Name           string   `json:"name"`
	Deadline       string   `json:"deadline"`
	TasksCount     int      `json:"tasks_count"`
	CompletedTasks int      `json:"completed_tasks"`
	Rating         *float64 `json:"rating"`
}

type UserActivityEntry struct {
	ActionType    string    `json:"action_type"`
	ActionDetails string    `json:"action_details"`
	Timestamp     time.Time `json:"timestamp"`
}

// ForUser computes the statistics view for one user. Users may view their
// own; managers and admins may view anyone's.
func (s *StatisticsService) ForUser(viewer *models.User, userID uint) (*UserStatistics, error) {
	if viewer.ID != userID && viewer.Role == models.RoleSpecialist {
		return nil, response.NewForbidden("insufficient permissions")
	}

	stats := &UserStatistics{
		ActiveProjects: []UserActiveProject{},
		RecentActivity: []UserActivityEntry{},
	}

	var totalProjects, totalTasks, completedTasks int64
	if err := s.db.Model(&models.ProjectMember{}).
		Where("user_id = ?", userID).
		Count(&totalProjects).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Task{}).
		Where("assigned_to = ?", userID).
		Count(&totalTasks).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Task{}).
		Where("assigned_to = ? AND status = ?", userID, models.TaskCompleted).
		Count(&completedTasks).Error; err != nil {
		return nil, err
	}
	stats.Overview.TotalProjects = int(totalProjects)
	stats.Overview.TotalTasks = int(totalTasks)
	stats.Overview.CompletedTasks = int(completedTasks)

	var avg *float64
	if err := s.db.Model(&models.Rating{}).
		Where("specialist_id = ?", userID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	stats.Overview.AverageRating = avg

	err := s.db.Model(&models.ProjectMember{}).
		Select("projects.name, projects.deadline, COUNT(tasks.id) AS tasks_count, COUNT(CASE WHEN tasks.status = ? THEN 1 END) AS completed_tasks, ratings.rating", models.TaskCompleted).
		Joins("JOIN projects ON projects.id = project_members.project_id").
		Joins("LEFT JOIN tasks ON tasks.project_id = projects.id AND tasks.assigned_to = project_members.user_id").
		Joins("LEFT JOIN ratings ON ratings.project_id = projects.id AND ratings.specialist_id = project_members.user_id").
		Where("project_members.user_id = ? AND projects.status = ?", userID, models.ProjectActive).
		Group("projects.id, projects.name, projects.deadline, ratings.rating").
		Scan(&stats.ActiveProjects).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.ActivityLog{}).
		Select("action_type, action_details, timestamp").
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(10).
		Scan(&stats.RecentActivity).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
