package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"folio/internal/auth"
	apperrors "folio/internal/errors"
	"folio/internal/model"
	"folio/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login, lockout bookkeeping and
// account lifecycle.
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateDetails(ctx context.Context, userID uuid.UUID, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (*model.User, string, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface

	maxAttempts int
	lockWindow  time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	maxAttempts int,
	lockWindow time.Duration,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		maxAttempts: maxAttempts,
		lockWindow:  lockWindow,
	}
}

// Register creates a user plus a default profile and returns a session token.
func (s *authService) Register(ctx context.Context, email, password, role string) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	profile := defaultProfile(user)
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, "", fmt.Errorf("create default profile: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and maintains the failed-attempt counter.
// A locked account rejects even the correct password until the window
// elapses.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if user.LockedAt(now) {
		return nil, "", apperrors.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordFailedAttempt(ctx, user, now)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if user.LoginAttempts > 0 || user.LockUntil != nil {
		user.LoginAttempts = 0
		user.LockUntil = nil
		if err := s.userRepo.Update(ctx, user); err != nil {
			logger.Warn().Err(err).Str("email", email).Msg("login attempt reset failed")
		}
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// recordFailedAttempt bumps the counter and arms the lock once the
// threshold is crossed. An expired lock restarts the count at one.
func (s *authService) recordFailedAttempt(ctx context.Context, user *model.User, now time.Time) {
	if user.LockUntil != nil && !user.LockUntil.After(now) {
		user.LoginAttempts = 1
		user.LockUntil = nil
	} else {
		user.LoginAttempts++
	}

	if user.LoginAttempts >= s.maxAttempts && user.LockUntil == nil {
		until := now.Add(s.lockWindow)
		user.LockUntil = &until
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("login attempt bookkeeping failed")
	}
}

// GetUser returns the user for the given id.
func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateDetails changes the account email after a uniqueness check.
func (s *authService) UpdateDetails(ctx context.Context, userID uuid.UUID, email string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if email != "" && email != user.Email {
		other, err := s.userRepo.FindByEmail(ctx, email)
		if err == nil && other != nil && other.ID != user.ID {
			return nil, apperrors.ErrEmailTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = email
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	return user, nil
}

// UpdatePassword requires the current password and re-signs a fresh token.
func (s *authService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (*model.User, string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("update user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Logout blacklists the token until its natural expiry.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.ErrTokenInvalid
	}
	ttl := s.jwtService.Expiry()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.tokenStore.BlacklistToken(ctx, claims.ID, ttl)
}

// DeleteAccount removes the profile first, then the user. The two steps
// are sequential; a crash in between can orphan the user without a
// profile, which is accepted.
func (s *authService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// defaultProfile seeds the placeholder CV created alongside registration.
func defaultProfile(user *model.User) *model.Profile {
	return &model.Profile{
		UserID: user.ID,
		PersonalInfo: model.PersonalInfo{
			FirstName: "First Name",
			LastName:  "Last Name",
			Title:     "Professional Title",
			Email:     user.Email,
			Bio:       "Tell us about yourself...",
		},
		Settings: model.Settings{
			IsPublic:     true,
			ShowEmail:    true,
			ShowPhone:    false,
			AllowContact: true,
		},
	}
}
