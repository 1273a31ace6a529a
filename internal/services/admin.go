package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
)

// AdminService covers the moderation-side user operations. Review moderation
// lives on ReviewService.Moderate.
type AdminService struct {
	users UserStore
}

func NewAdminService(users UserStore) *AdminService {
	return &AdminService{users: users}
}

func (s *AdminService) BanUser(ctx context.Context, userID uuid.UUID, reason string) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	return s.users.Ban(ctx, userID, reason)
}

func (s *AdminService) UnbanUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	return s.users.Unban(ctx, userID)
}

func (s *AdminService) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	return s.users.VerifyEmail(ctx, userID)
}

func (s *AdminService) UpdateTrustScore(ctx context.Context, userID uuid.UUID, score float64) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	return s.users.UpdateTrustScore(ctx, userID, score)
}

func (s *AdminService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
