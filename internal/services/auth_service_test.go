package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func validRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:    "jane.doe",
		Password:    "secret1",
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		PhoneNumber: "+1 (555) 010-0100",
		Age:         25,
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	cases := map[string]func(r *dto.RegisterRequest){
		"missing username":    func(r *dto.RegisterRequest) { r.Username = "" },
		"missing phone":       func(r *dto.RegisterRequest) { r.PhoneNumber = "  " },
		"missing age":         func(r *dto.RegisterRequest) { r.Age = 0 },
		"bad email":           func(r *dto.RegisterRequest) { r.Email = "jane.example.com" },
		"email with space":    func(r *dto.RegisterRequest) { r.Email = "ja ne@example.com" },
		"under age":           func(r *dto.RegisterRequest) { r.Age = 17 },
		"over age":            func(r *dto.RegisterRequest) { r.Age = 121 },
		"short password":      func(r *dto.RegisterRequest) { r.Password = "12345" },
		"long password":       func(r *dto.RegisterRequest) { r.Password = string(make([]byte, 129)) },
		"bad phone":           func(r *dto.RegisterRequest) { r.PhoneNumber = "555-CALL-NOW" },
		"bad username chars":  func(r *dto.RegisterRequest) { r.Username = "jane doe" },
		"username too long":   func(r *dto.RegisterRequest) { r.Username = "abcdefghijabcdefghijabcdefghijk" },
		"first name too long": func(r *dto.RegisterRequest) { r.FirstName = string(make([]byte, 51)) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewAuthService(db, testConfig())

			req := validRegistration()
			mutate(&req)
			_, err := svc.Register(context.Background(), &req)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			var count int64
			db.Model(&models.User{}).Count(&count)
			if count != 0 {
				t.Fatalf("expected no user to be created, got %d", count)
			}
		})
	}
}

func TestRegisterBoundaryAges(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	for i, age := range []int{18, 120} {
		req := validRegistration()
		req.Username = []string{"young", "old"}[i]
		req.Email = req.Username + "@example.com"
		req.Age = age
		if _, err := svc.Register(context.Background(), &req); err != nil {
			t.Fatalf("age %d should be accepted: %v", age, err)
		}
	}
}

func TestRegisterDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	ctx := context.Background()

	first := validRegistration()
	user, err := svc.Register(ctx, &first)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")); err != nil {
		t.Fatal("password was not stored as a bcrypt hash of the input")
	}

	dupUser := validRegistration()
	dupUser.Email = "other@example.com"
	_, err = svc.Register(ctx, &dupUser)
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) || dup.Field != "username" {
		t.Fatalf("expected duplicate username, got %v", err)
	}

	dupEmail := validRegistration()
	dupEmail.Username = "someone_else"
	dupEmail.Email = "JANE@Example.com"
	_, err = svc.Register(ctx, &dupEmail)
	if !errors.As(err, &dup) || dup.Field != "email" {
		t.Fatalf("expected duplicate email, got %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one user, got %d", count)
	}
}

func TestLoginIssuesTokenValidFor24Hours(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	ctx := context.Background()

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	req := validRegistration()
	user, err := svc.Register(ctx, &req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "jane.doe", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.ID != user.ID {
		t.Fatalf("response user mismatch: %v vs %v", resp.User.ID, user.ID)
	}

	at := func(d time.Duration) jwt.ParserOption {
		return jwt.WithTimeFunc(func() time.Time { return issuedAt.Add(d) })
	}

	claims, err := svc.ParseToken(resp.Token, at(23*time.Hour))
	if err != nil {
		t.Fatalf("token should be valid after 23h: %v", err)
	}
	if claims["sub"] != user.ID.String() {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if _, isAdmin := claims["is_admin"]; isAdmin {
		t.Fatal("user token must not carry is_admin")
	}

	if _, err := svc.ParseToken(resp.Token, at(25*time.Hour)); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token after 25h, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	ctx := context.Background()

	req := validRegistration()
	if _, err := svc.Register(ctx, &req); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, &dto.LoginRequest{Username: "jane.doe", Password: "nope123"})
	_, unknownUser := svc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "secret1"})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v and %v", wrongPassword, unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatal("failure messages must be identical")
	}
}

func TestLoginRejectsUnsanitaryUsername(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())

	for _, username := range []string{"jane doe", "jane$", "' OR 1=1 --", "jäne"} {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: username, Password: "secret1"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected ValidationError, got %v", username, err)
		}
	}
}

func TestAdminLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	admin := models.AdminUser{Username: "ops", Email: "ops@example.com", Password: string(hash), Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}

	resp, err := svc.AdminLogin(ctx, &dto.LoginRequest{Username: "ops", Password: "adminpass"})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	claims, err := svc.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims["is_admin"] != true || claims["role"] != models.RoleAdmin {
		t.Fatalf("unexpected admin claims: %v", claims)
	}

	// end-user credentials never authenticate against the admin table
	req := validRegistration()
	svc.Register(ctx, &req)
	if _, err := svc.AdminLogin(ctx, &dto.LoginRequest{Username: "jane.doe", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "x", "exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := forged.SignedString([]byte("other-secret"))
	if _, err := svc.ParseToken(signed); err == nil {
		t.Fatal("expected signature error")
	}
}
