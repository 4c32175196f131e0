package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/config"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxUsernameLen = 30
	maxNameLen     = 50
	maxEmailLen    = 100
	maxPhoneLen    = 20
	minPasswordLen = 6
	maxPasswordLen = 128
	minAge         = 18
	maxAge         = 120
)

var (
	usernameDisallowed = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern       = regexp.MustCompile(`^[0-9\s+\-()]+$`)
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg, now: time.Now}
}

// sanitizeUsername rejects usernames containing characters outside
// [A-Za-z0-9_.-] instead of silently stripping them.
func sanitizeUsername(username string) (string, error) {
	cleaned := usernameDisallowed.ReplaceAllString(username, "")
	if cleaned != username || cleaned == "" {
		return "", validationf("Username may only contain letters, numbers, '_', '.' and '-'")
	}
	return cleaned, nil
}

func validateRegistration(req *dto.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if req.Username == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" ||
		req.Email == "" || req.PhoneNumber == "" || req.Age == 0 {
		return validationf("All fields are required")
	}

	switch {
	case len(req.Username) > maxUsernameLen:
		return validationf("Username must be at most %d characters", maxUsernameLen)
	case len(req.FirstName) > maxNameLen || len(req.LastName) > maxNameLen:
		return validationf("Names must be at most %d characters", maxNameLen)
	case len(req.Email) > maxEmailLen:
		return validationf("Email must be at most %d characters", maxEmailLen)
	case len(req.PhoneNumber) > maxPhoneLen:
		return validationf("Phone number must be at most %d characters", maxPhoneLen)
	case len(req.Password) > maxPasswordLen:
		return validationf("Password must be at most %d characters", maxPasswordLen)
	}

	if len(req.Password) < minPasswordLen {
		return validationf("Password must be at least %d characters", minPasswordLen)
	}
	if req.Age < minAge || req.Age > maxAge {
		return validationf("Age must be between %d and %d", minAge, maxAge)
	}
	if !emailPattern.MatchString(req.Email) {
		return validationf("Invalid email address")
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		return validationf("Invalid phone number")
	}
	if _, err := sanitizeUsername(req.Username); err != nil {
		return err
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, &DuplicateFieldError{Field: "username"}
	}
	if err := db.Model(&models.User{}).Where("LOWER(email) = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, &DuplicateFieldError{Field: "email"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:    req.Username,
		Password:    string(hash),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Role:        models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "action", "auth.register", "user_id", user.ID.String())
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username, err := checkLoginInput(req)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     models.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "action", "auth.login", "user_id", user.ID.String())
	return &dto.LoginResponse{Success: true, Token: token, User: ToUserResponse(&user)}, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username, err := checkLoginInput(req)
	if err != nil {
		return nil, err
	}

	var admin models.AdminUser
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(jwt.MapClaims{
		"sub":      admin.ID.String(),
		"username": admin.Username,
		"role":     admin.Role,
		"is_admin": true,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("admin logged in", "action", "auth.admin_login", "user_id", admin.ID.String())
	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		User: dto.UserResponse{
			ID:        admin.ID,
			Username:  admin.Username,
			Email:     admin.Email,
			Role:      admin.Role,
			CreatedAt: admin.CreatedAt,
		},
	}, nil
}

// ParseToken verifies a token signed by this service and returns its claims.
func (s *AuthService) ParseToken(tokenString string, opts ...jwt.ParserOption) (jwt.MapClaims, error) {
	opts = append([]jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}, opts...)
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	now := s.now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.cfg.JWTExpiry).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func checkLoginInput(req *dto.LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", validationf("Username and password are required")
	}
	return sanitizeUsername(req.Username)
}

func ToUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Age:         u.Age,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}
