package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/models"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
	"gorm.io/gorm"
)

// UserStore is the persistence surface the auth and admin services need.
// *store.UserStore satisfies it; tests use fakes.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch *store.ProfileUpdate) (*models.User, error)
	Ban(ctx context.Context, id uuid.UUID, reason string) error
	Unban(ctx context.Context, id uuid.UUID) error
	VerifyEmail(ctx context.Context, id uuid.UUID) error
	IncrementReviewCount(ctx context.Context, id uuid.UUID) error
	UpdateTrustScore(ctx context.Context, id uuid.UUID, score float64) error
}

type AuthService struct {
	users  UserStore
	tokens *utils.TokenService
}

func NewAuthService(users UserStore, tokens *utils.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Role     string `json:"role" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	User         *models.UserProfile `json:"user"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	if strength := utils.ValidatePasswordStrength(req.Password); !strength.Valid {
		return nil, &WeakPasswordError{Violations: strength.Errors}
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !utils.IsValidSignupRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        utils.SanitizeString(req.Email),
		PasswordHash: hash,
		FullName:     utils.SanitizeString(req.FullName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index on email is the backstop against a concurrent
		// registration racing past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.IsBanned {
		reason := ""
		if user.BanReason != nil {
			reason = *user.BanReason
		}
		return nil, &AccountBannedError{Reason: reason}
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	ok, err := utils.ComparePassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	pair, err := s.tokens.IssueTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	profile, err := s.users.GetPublicProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         profile,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair, re-checking
// that the account is still usable.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, utils.ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}

	if user.IsBanned || !user.IsActive {
		return nil, ErrAccountInactive
	}

	pair, err := s.tokens.IssueTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	profile, err := s.users.GetPublicProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch *store.ProfileUpdate) (*models.UserProfile, error) {
	user, err := s.users.UpdateProfile(ctx, userID, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}
