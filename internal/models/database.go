package models

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/nazarshv/teamtrack/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

// sqliteDSN appends a short busy timeout so brief lock contention on write
// paths does not surface as an error.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)"
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Project{},
		&ProjectMember{},
		&Task{},
		&CalendarEvent{},
		&Notification{},
		&Comment{},
		&ProjectFile{},
		&Rating{},
		&ActivityLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
