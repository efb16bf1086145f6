package services

import (
	"errors"
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/config"
	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/internal/utils"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new user. The role is fixed at registration.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, response.NewBadRequest("invalid role")
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("user with this email already exists")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login authenticates a user and issues a signed session token.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Model(&user).Update("last_login", now)

	return &LoginResponse{Token: token, User: &user}, nil
}

// Refresh issues a fresh token for an already-authenticated user. The client
// calls this proactively when its token is within a few minutes of expiry.
func (s *AuthService) Refresh(user *models.User) (string, error) {
	return utils.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtConfig.ExpireHour)
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists creates a default admin user if none exists.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)

	if count == 0 {
		hashed, err := utils.HashPassword("admin")
		if err != nil {
			return err
		}

		admin := models.User{
			Name:     "Administrator",
			Email:    "admin@teamtrack.local",
			Password: hashed,
			Role:     models.RoleAdmin,
		}
		return s.db.Create(&admin).Error
	}

	return nil
}
