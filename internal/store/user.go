package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/models"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

// GetPublicProfile returns the user without sensitive fields, or ErrNotFound.
func (s *UserStore) GetPublicProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// ProfileUpdate is the allow-list for profile patches. Nil fields stay
// untouched.
type ProfileUpdate struct {
	FullName        *string `json:"full_name,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Location        *string `json:"location,omitempty"`
	Website         *string `json:"website,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

func (p *ProfileUpdate) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.FullName != nil {
		updates["full_name"] = *p.FullName
	}
	if p.Bio != nil {
		updates["bio"] = *p.Bio
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Website != nil {
		updates["website"] = *p.Website
	}
	if p.ProfileImageURL != nil {
		updates["profile_image_url"] = *p.ProfileImageURL
	}
	return updates
}

func (s *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, patch *ProfileUpdate) (*models.User, error) {
	updates := patch.columns()
	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindByID(ctx, id)
}

func (s *UserStore) Ban(ctx context.Context, id uuid.UUID, reason string) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_banned":  true,
			"ban_reason": reason,
			"banned_at":  time.Now(),
		}).Error
}

func (s *UserStore) Unban(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_banned":  false,
			"ban_reason": nil,
			"banned_at":  nil,
		}).Error
}

func (s *UserStore) VerifyEmail(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("email_verified", true).Error
}

// IncrementReviewCount bumps total_reviews in a single statement so it stays
// correct under concurrent requests.
func (s *UserStore) IncrementReviewCount(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("total_reviews", gorm.Expr("total_reviews + 1")).Error
}

func (s *UserStore) UpdateTrustScore(ctx context.Context, id uuid.UUID, score float64) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("trust_score", score).Error
}
