package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/models"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserStore) GetPublicProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	u, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Profile(), nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id uuid.UUID, patch *store.ProfileUpdate) (*models.User, error) {
	u, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Location != nil {
		u.Location = *patch.Location
	}
	if patch.Website != nil {
		u.Website = *patch.Website
	}
	if patch.ProfileImageURL != nil {
		u.ProfileImageURL = *patch.ProfileImageURL
	}
	return u, nil
}

func (f *fakeUserStore) Ban(_ context.Context, id uuid.UUID, reason string) error {
	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.IsBanned = true
		u.BanReason = &reason
		u.BannedAt = &now
	}
	return nil
}

func (f *fakeUserStore) Unban(_ context.Context, id uuid.UUID) error {
	if u, ok := f.users[id]; ok {
		u.IsBanned = false
		u.BanReason = nil
		u.BannedAt = nil
	}
	return nil
}

func (f *fakeUserStore) VerifyEmail(_ context.Context, id uuid.UUID) error {
	if u, ok := f.users[id]; ok {
		u.EmailVerified = true
	}
	return nil
}

func (f *fakeUserStore) IncrementReviewCount(_ context.Context, id uuid.UUID) error {
	if u, ok := f.users[id]; ok {
		u.TotalReviews++
	}
	return nil
}

func (f *fakeUserStore) UpdateTrustScore(_ context.Context, id uuid.UUID, score float64) error {
	if u, ok := f.users[id]; ok {
		u.TrustScore = score
	}
	return nil
}

type voteKey struct {
	reviewID uuid.UUID
	userID   uuid.UUID
}

type fakeReviewStore struct {
	reviews map[uuid.UUID]*models.Review
	votes   map[voteKey]bool
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{
		reviews: map[uuid.UUID]*models.Review{},
		votes:   map[voteKey]bool{},
	}
}

func (f *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	for _, r := range f.reviews {
		if r.UserID == review.UserID && r.CompanyID == review.CompanyID {
			return store.ErrDuplicateReview
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.Status == "" {
		review.Status = models.ReviewStatusPublished
	}
	review.CreatedAt = time.Now()
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewStore) FindByID(_ context.Context, id uuid.UUID) (*models.Review, error) {
	if r, ok := f.reviews[id]; ok {
		return r, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeReviewStore) Update(_ context.Context, id, userID uuid.UUID, patch *store.ReviewUpdate) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok || r.UserID != userID {
		return nil, store.ErrNotFound
	}
	if patch.Rating != nil {
		r.Rating = *patch.Rating
	}
	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Content != nil {
		r.Content = *patch.Content
	}
	if patch.Pros != nil {
		r.Pros = patch.Pros
	}
	if patch.Cons != nil {
		r.Cons = patch.Cons
	}
	r.Edited = true
	now := time.Now()
	r.EditedAt = &now
	return r, nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r, ok := f.reviews[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	delete(f.reviews, id)
	return true, nil
}

func (f *fakeReviewStore) FindByUser(_ context.Context, userID uuid.UUID, page store.Page) ([]models.Review, int64, error) {
	var all []models.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			all = append(all, *r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, page), int64(len(all)), nil
}

func (f *fakeReviewStore) FindByCompany(_ context.Context, companyID uuid.UUID, page store.Page, sortBy string) ([]models.Review, int64, float64, error) {
	var all []models.Review
	var sum float64
	for _, r := range f.reviews {
		if r.CompanyID == companyID && r.Status == models.ReviewStatusPublished {
			all = append(all, *r)
			sum += float64(r.Rating)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		switch sortBy {
		case store.SortHelpful:
			if a.HelpfulCount != b.HelpfulCount {
				return a.HelpfulCount > b.HelpfulCount
			}
		case store.SortRating:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	avg := 0.0
	if len(all) > 0 {
		avg = sum / float64(len(all))
	}
	return paginate(all, page), int64(len(all)), avg, nil
}

func paginate(reviews []models.Review, page store.Page) []models.Review {
	if page.Offset >= len(reviews) {
		return nil
	}
	end := page.Offset + page.Limit
	if end > len(reviews) {
		end = len(reviews)
	}
	return reviews[page.Offset:end]
}

func (f *fakeReviewStore) VoteHelpful(_ context.Context, reviewID, userID uuid.UUID, isHelpful bool) error {
	r, ok := f.reviews[reviewID]
	if !ok {
		return store.ErrNotFound
	}
	f.votes[voteKey{reviewID, userID}] = isHelpful

	helpful, notHelpful := 0, 0
	for k, v := range f.votes {
		if k.reviewID != reviewID {
			continue
		}
		if v {
			helpful++
		} else {
			notHelpful++
		}
	}
	r.HelpfulCount = helpful
	r.NotHelpfulCount = notHelpful
	return nil
}

func (f *fakeReviewStore) CanUserReviewCompany(_ context.Context, userID, companyID uuid.UUID) (bool, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.CompanyID == companyID {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeReviewStore) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	r, ok := f.reviews[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeReviewStore) Statistics(_ context.Context, companyID uuid.UUID) (*store.ReviewStatistics, error) {
	stats := &store.ReviewStatistics{
		RatingDistribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	var sum float64
	for _, r := range f.reviews {
		if r.CompanyID == companyID && r.Status == models.ReviewStatusPublished {
			stats.Total++
			stats.RatingDistribution[r.Rating]++
			sum += float64(r.Rating)
		}
	}
	if stats.Total > 0 {
		stats.AverageRating = sum / float64(stats.Total)
	}
	return stats, nil
}

type fakeCache struct {
	entries map[string][]byte
	hits    int
	misses  int
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) GetObject(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := f.entries[key]
	if !ok {
		f.misses++
		return false, nil
	}
	f.hits++
	return true, json.Unmarshal(data, dest)
}

func (f *fakeCache) SetObject(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.entries, k)
		f.deletes = append(f.deletes, k)
	}
	return nil
}
