package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/config"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/pkg/jwt"
	"washlab-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// verification codes expire 10 minutes after issue
const codeTTL = 10 * time.Minute

// CodeSender delivers verification codes. Satisfied by pkg/mailer.
type CodeSender interface {
	SendVerificationCode(to, code string) error
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	mailer   CodeSender
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, mailer CodeSender, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user in the pending-verification state and emails
// a 6-digit code. Mail delivery failure does not fail registration; the
// caller can request a resend.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	if !password.Validate(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	role := input.Role
	if role == "" {
		role = string(domain.RoleOperator)
	}
	if !domain.IsValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailInUse
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(codeTTL)

	user := &models.User{
		FirstName:               input.FirstName,
		LastName:                input.LastName,
		Email:                   input.Email,
		Password:                hashedPassword,
		Role:                    role,
		IsVerified:              false,
		VerificationCode:        code,
		VerificationCodeExpires: &expires,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationCode(user.Email, code); err != nil {
		log.Printf("⚠️ Verification email failed for %s: %v", user.Email, err)
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Email, user.Role)
	return user.ToResponse(), nil
}

// RegisterAsAdmin creates a user on behalf of a super admin. The account
// comes pre-verified and no code is mailed; the same duplicate-email and
// role checks apply.
func (s *AuthService) RegisterAsAdmin(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	if !password.Validate(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	role := input.Role
	if role == "" {
		role = string(domain.RoleOperator)
	}
	if !domain.IsValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailInUse
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Password:   hashedPassword,
		Role:       role,
		IsVerified: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User created by admin: %s (role: %s)", user.Email, user.Role)
	return user.ToResponse(), nil
}

// VerifyEmail checks the emailed code and marks the account verified. The
// code is single-use: a successful check clears it.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !user.HasCode() || user.VerificationCode != code {
		return nil, domain.ErrInvalidCode
	}
	if time.Now().After(*user.VerificationCodeExpires) {
		return nil, domain.ErrInvalidCode
	}

	user.IsVerified = true
	user.VerificationCode = ""
	user.VerificationCodeExpires = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Email verified: %s", user.Email)
	return user.ToResponse(), nil
}

// ResendCode issues a fresh code for an unverified account, replacing any
// previous one.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.IsVerified {
		return domain.ErrInvalidInput
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(codeTTL)

	user.VerificationCode = code
	user.VerificationCodeExpires = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(user.Email, code); err != nil {
		log.Printf("⚠️ Verification email failed for %s: %v", user.Email, err)
	}

	return nil
}

// Login authenticates a user and returns a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.JWT.TTLMinutes) * time.Minute
	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, ttl)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// generateCode returns a zero-padded 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
