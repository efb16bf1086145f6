package services

import (
	"testing"

	"github.com/nazarshv/teamtrack/backend/internal/config"
	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/internal/utils"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	utils.SetJWTSecret("test-secret")
	return NewAuthService(db, &config.JWTConfig{Secret: "test-secret", ExpireHour: 1})
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(&RegisterRequest{
		Name:     "Olena",
		Email:    "olena@example.com",
		Password: "secret123",
		Role:     "specialist",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleSpecialist {
		t.Errorf("role = %q, want specialist", user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plaintext")
	}

	resp, err := svc.Login(&LoginRequest{Email: "olena@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}

	claims, err := utils.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != "specialist" {
		t.Errorf("claims = %+v, want user %d specialist", claims, user.ID)
	}

	var stored models.User
	db.First(&stored, user.ID)
	if stored.LastLogin == nil {
		t.Error("last login not recorded")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	req := &RegisterRequest{Name: "A", Email: "dup@example.com", Password: "secret123", Role: "manager"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(req)
	assertHTTPStatus(t, err, 409)
}

func TestRegisterInvalidRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123", Role: "superuser"})
	assertHTTPStatus(t, err, 400)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register(&RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123", Role: "admin"}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(&LoginRequest{Email: "a@example.com", Password: "wrong"})
	assertHTTPStatus(t, err, 401)

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assertHTTPStatus(t, err, 401)
}

func TestCreateAdminIfNotExistsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	if err := svc.CreateAdminIfNotExists(); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := svc.CreateAdminIfNotExists(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count != 1 {
		t.Errorf("got %d admin users, want 1", count)
	}
}

func TestRefreshIssuesValidToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	user := createTestUser(t, db, "A", "a@example.com", models.RoleManager)

	token, err := svc.Refresh(user)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		t.Fatalf("refreshed token does not parse: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims user = %d, want %d", claims.UserID, user.ID)
	}
}
