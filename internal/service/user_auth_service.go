package service

import (
	"strings"
	"time"
	"unicode"

	"github.com/2063ti/flugede-gadgets-store/internal/config"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserClaims is the JWT payload for customer and admin tokens.
type UserClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// UserAuthService handles registration, login and token issuing. Customer
// and admin tokens are signed with separate secrets.
type UserAuthService struct {
	userRepo  repository.UserRepository
	userJWT   config.JWTConfig
	adminJWT  config.JWTConfig
	pwdPolicy config.PasswordPolicyConfig
}

// NewUserAuthService creates the auth service.
func NewUserAuthService(userRepo repository.UserRepository, userJWT, adminJWT config.JWTConfig, pwdPolicy config.PasswordPolicyConfig) *UserAuthService {
	return &UserAuthService{
		userRepo:  userRepo,
		userJWT:   userJWT,
		adminJWT:  adminJWT,
		pwdPolicy: pwdPolicy,
	}
}

// RegisterInput is the typed registration command.
type RegisterInput struct {
	Email    string
	Name     string
	Phone    string
	Password string
}

// Register creates a customer account and returns it with a fresh token.
func (s *UserAuthService) Register(input RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.checkPasswordPolicy(input.Password); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user, false)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks credentials and returns the user with a customer token.
func (s *UserAuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.authenticate(email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user, false)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// AdminLogin checks credentials and the admin flag, returning an admin token.
func (s *UserAuthService) AdminLogin(email, password string) (*models.User, string, error) {
	user, err := s.authenticate(email, password)
	if err != nil {
		return nil, "", err
	}
	if !user.IsAdmin {
		return nil, "", ErrNotAdmin
	}
	token, err := s.issueToken(user, true)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserAuthService) authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	_ = s.userRepo.UpdateFields(user.ID, map[string]interface{}{"last_login_at": now})
	user.LastLoginAt = &now
	return user, nil
}

// GetProfile returns the user record.
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile edits name and phone.
func (s *UserAuthService) UpdateProfile(userID uint, name, phone string) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(name)
	user.Phone = strings.TrimSpace(phone)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the old password and installs the new one.
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := s.checkPasswordPolicy(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateFields(userID, map[string]interface{}{"password_hash": string(hash)})
}

// ParseUserToken validates a customer token.
func (s *UserAuthService) ParseUserToken(tokenString string) (*UserClaims, error) {
	return parseToken(tokenString, s.userJWT.SecretKey)
}

// ParseAdminToken validates an admin token.
func (s *UserAuthService) ParseAdminToken(tokenString string) (*UserClaims, error) {
	claims, err := parseToken(tokenString, s.adminJWT.SecretKey)
	if err != nil {
		return nil, err
	}
	if !claims.IsAdmin {
		return nil, ErrNotAdmin
	}
	return claims, nil
}

func (s *UserAuthService) issueToken(user *models.User, admin bool) (string, error) {
	cfg := s.userJWT
	if admin {
		cfg = s.adminJWT
	}
	expireHours := cfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	claims := UserClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: admin && user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

func parseToken(tokenString, secret string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *UserAuthService) checkPasswordPolicy(password string) error {
	minLength := s.pwdPolicy.MinLength
	if minLength <= 0 {
		minLength = 8
	}
	if len(password) < minLength {
		return ErrPasswordTooWeak
	}
	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if s.pwdPolicy.RequireUpper && !hasUpper {
		return ErrPasswordTooWeak
	}
	if s.pwdPolicy.RequireLower && !hasLower {
		return ErrPasswordTooWeak
	}
	if s.pwdPolicy.RequireNumber && !hasNumber {
		return ErrPasswordTooWeak
	}
	return nil
}
