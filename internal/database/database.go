package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/config"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "host", cfg.DBHost, "db", cfg.DBName)
	return nil
}

// Migrate runs AutoMigrate for every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Model{},
		&models.Favorite{},
		&models.Booking{},
		&models.SystemLog{},
	)
}

// EnsureInitialAdmin creates a superadmin from configuration when the
// admin table is empty. It is a no-op once any admin exists.
func EnsureInitialAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		slog.Warn("no admin account exists and ADMIN_USERNAME/ADMIN_PASSWORD are not set")
		return nil
	}
	if len(cfg.AdminPassword) < 6 {
		return errors.New("ADMIN_PASSWORD must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	email := cfg.AdminEmail
	if email == "" {
		email = cfg.AdminUsername + "@localhost"
	}

	admin := models.AdminUser{
		Username: cfg.AdminUsername,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create initial admin: %w", err)
	}

	slog.Info("initial admin created", "username", admin.Username)
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
