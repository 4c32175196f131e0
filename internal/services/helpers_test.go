package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/config"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/database"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/session"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  24 * time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{
		Username:    username,
		Password:    "x",
		FirstName:   "Test",
		LastName:    "User",
		Email:       username + "@example.com",
		PhoneNumber: "+1 555 0100",
		Age:         30,
		Role:        models.RoleUser,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createModel(t *testing.T, db *gorm.DB, category models.Category, name string) models.Model {
	t.Helper()
	m := models.Model{
		Category:  category,
		Name:      name,
		ImageURL:  fmt.Sprintf("https://img.example.com/%s.jpg", name),
		Available: true,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("create model: %v", err)
	}
	return m
}

func userSession(u models.User) *session.Session {
	return &session.Session{UserID: u.ID, Username: u.Username, Role: models.RoleUser}
}

func adminSession() *session.Session {
	return &session.Session{Username: "root", Role: models.RoleSuperAdmin, IsAdmin: true}
}
