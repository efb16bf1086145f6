package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Upload   UploadConfig   `yaml:"upload"`
	Activity ActivityConfig `yaml:"activity"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

type UploadConfig struct {
	Dir string `yaml:"dir"`
}

type ActivityConfig struct {
	RetentionDays int `yaml:"retention_days"` // 0 disables the sweeper
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "project_management.db",
		},
		JWT: JWTConfig{
			Secret:     "teamtrack-secret-key-change-in-production",
			ExpireHour: 24,
		},
		Upload: UploadConfig{
			Dir: "files",
		},
		Activity: ActivityConfig{
			RetentionDays: 90,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		c.Upload.Dir = dir
	}
	if days := os.Getenv("ACTIVITY_RETENTION_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil {
			c.Activity.RetentionDays = n
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
