package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/api/middleware"
	"github.com/okothvientrevor/ALOVAZE/internal/models"
	"github.com/okothvientrevor/ALOVAZE/internal/services"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memUserStore struct {
	users map[uuid.UUID]*models.User
}

func (m *memUserStore) add(user *models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return user
}

func (m *memUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.add(user)
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	if err == store.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *memUserStore) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	if u, ok := m.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (m *memUserStore) GetPublicProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	u, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Profile(), nil
}

func (m *memUserStore) UpdateProfile(ctx context.Context, id uuid.UUID, patch *store.ProfileUpdate) (*models.User, error) {
	u, err := m.FindByID(ctx, id)
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

func (m *memUserStore) Ban(_ context.Context, id uuid.UUID, reason string) error {
	if u, ok := m.users[id]; ok {
		now := time.Now()
		u.IsBanned = true
		u.BanReason = &reason
		u.BannedAt = &now
	}
	return nil
}

func (m *memUserStore) Unban(_ context.Context, id uuid.UUID) error {
	if u, ok := m.users[id]; ok {
		u.IsBanned = false
		u.BanReason = nil
		u.BannedAt = nil
	}
	return nil
}

func (m *memUserStore) VerifyEmail(_ context.Context, id uuid.UUID) error {
	if u, ok := m.users[id]; ok {
		u.EmailVerified = true
	}
	return nil
}

func (m *memUserStore) IncrementReviewCount(_ context.Context, id uuid.UUID) error {
	if u, ok := m.users[id]; ok {
		u.TotalReviews++
	}
	return nil
}

func (m *memUserStore) UpdateTrustScore(_ context.Context, id uuid.UUID, score float64) error {
	if u, ok := m.users[id]; ok {
		u.TrustScore = score
	}
	return nil
}

type memVoteKey struct {
	reviewID uuid.UUID
	userID   uuid.UUID
}

type memReviewStore struct {
	reviews map[uuid.UUID]*models.Review
	votes   map[memVoteKey]bool
}

func (m *memReviewStore) Create(_ context.Context, review *models.Review) error {
	for _, r := range m.reviews {
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
	m.reviews[review.ID] = review
	return nil
}

func (m *memReviewStore) FindByID(_ context.Context, id uuid.UUID) (*models.Review, error) {
	if r, ok := m.reviews[id]; ok {
		return r, nil
	}
	return nil, store.ErrNotFound
}

func (m *memReviewStore) Update(_ context.Context, id, userID uuid.UUID, patch *store.ReviewUpdate) (*models.Review, error) {
	r, ok := m.reviews[id]
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
	r.Edited = true
	now := time.Now()
	r.EditedAt = &now
	return r, nil
}

func (m *memReviewStore) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r, ok := m.reviews[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	delete(m.reviews, id)
	return true, nil
}

func (m *memReviewStore) FindByUser(_ context.Context, userID uuid.UUID, page store.Page) ([]models.Review, int64, error) {
	var all []models.Review
	for _, r := range m.reviews {
		if r.UserID == userID {
			all = append(all, *r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return memPaginate(all, page), int64(len(all)), nil
}

func (m *memReviewStore) FindByCompany(_ context.Context, companyID uuid.UUID, page store.Page, _ string) ([]models.Review, int64, float64, error) {
	var all []models.Review
	var sum float64
	for _, r := range m.reviews {
		if r.CompanyID == companyID && r.Status == models.ReviewStatusPublished {
			all = append(all, *r)
			sum += float64(r.Rating)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	avg := 0.0
	if len(all) > 0 {
		avg = sum / float64(len(all))
	}
	return memPaginate(all, page), int64(len(all)), avg, nil
}

func memPaginate(reviews []models.Review, page store.Page) []models.Review {
	if page.Offset >= len(reviews) {
		return nil
	}
	end := page.Offset + page.Limit
	if end > len(reviews) {
		end = len(reviews)
	}
	return reviews[page.Offset:end]
}

func (m *memReviewStore) VoteHelpful(_ context.Context, reviewID, userID uuid.UUID, isHelpful bool) error {
	r, ok := m.reviews[reviewID]
	if !ok {
		return store.ErrNotFound
	}
	m.votes[memVoteKey{reviewID, userID}] = isHelpful

	helpful, notHelpful := 0, 0
	for k, v := range m.votes {
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

func (m *memReviewStore) CanUserReviewCompany(_ context.Context, userID, companyID uuid.UUID) (bool, error) {
	for _, r := range m.reviews {
		if r.UserID == userID && r.CompanyID == companyID {
			return false, nil
		}
	}
	return true, nil
}

func (m *memReviewStore) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	r, ok := m.reviews[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Status = status
	return nil
}

func (m *memReviewStore) Statistics(_ context.Context, companyID uuid.UUID) (*store.ReviewStatistics, error) {
	stats := &store.ReviewStatistics{
		RatingDistribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	var sum float64
	for _, r := range m.reviews {
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

type memCompanyStore struct {
	companies []models.Company
}

func (m *memCompanyStore) ListAll(_ context.Context) ([]models.Company, error) {
	return m.companies, nil
}

// testEnv wires the full route tree over in-memory stores.
type testEnv struct {
	router    *gin.Engine
	tokens    *utils.TokenService
	users     *memUserStore
	reviews   *memReviewStore
	companies *memCompanyStore
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		tokens:    utils.NewTokenService("test-access", "test-refresh", 15*time.Minute, 7*24*time.Hour),
		users:     &memUserStore{users: map[uuid.UUID]*models.User{}},
		reviews:   &memReviewStore{reviews: map[uuid.UUID]*models.Review{}, votes: map[memVoteKey]bool{}},
		companies: &memCompanyStore{},
	}

	authService := services.NewAuthService(env.users, env.tokens)
	reviewService := services.NewReviewService(env.reviews, env.users, nil, time.Minute)
	companyService := services.NewCompanyService(env.companies)
	adminService := services.NewAdminService(env.users)

	authHandler := NewAuthHandler(authService)
	reviewHandler := NewReviewHandler(reviewService)
	companyHandler := NewCompanyHandler(companyService)
	adminHandler := NewAdminHandler(adminService, reviewService)

	router := gin.New()
	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/profile", middleware.AuthMiddleware(env.tokens), authHandler.GetProfile)
	auth.PUT("/profile", middleware.AuthMiddleware(env.tokens), authHandler.UpdateProfile)
	auth.POST("/logout", middleware.AuthMiddleware(env.tokens), authHandler.Logout)

	reviews := api.Group("/reviews")
	reviews.POST("", middleware.AuthMiddleware(env.tokens), reviewHandler.Create)
	reviews.GET("/:reviewId", reviewHandler.GetByID)
	reviews.PUT("/:reviewId", middleware.AuthMiddleware(env.tokens), reviewHandler.Update)
	reviews.DELETE("/:reviewId", middleware.AuthMiddleware(env.tokens), reviewHandler.Delete)
	reviews.GET("/user/:userId", reviewHandler.GetByUser)
	reviews.GET("/company/:companyId", reviewHandler.GetByCompany)
	reviews.GET("/company/:companyId/statistics", reviewHandler.GetStatistics)
	reviews.POST("/:reviewId/vote", middleware.AuthMiddleware(env.tokens), reviewHandler.Vote)

	api.GET("/companies", companyHandler.GetAll)

	admin := api.Group("/admin",
		middleware.AuthMiddleware(env.tokens),
		middleware.RequireRoles(models.RoleAdmin, models.RoleModerator))
	admin.POST("/users/:userId/ban", adminHandler.BanUser)
	admin.POST("/users/:userId/unban", adminHandler.UnbanUser)
	admin.POST("/users/:userId/verify-email", adminHandler.VerifyEmail)
	admin.PUT("/users/:userId/trust-score", adminHandler.UpdateTrustScore)
	admin.POST("/reviews/:reviewId/moderate", adminHandler.ModerateReview)

	env.router = router
	return env
}

// seedUser creates a user directly in the store and returns an access token.
func (env *testEnv) seedUser(t *testing.T, role string) (*models.User, string) {
	t.Helper()
	user := env.users.add(&models.User{
		Email:    uuid.NewString() + "@x.com",
		FullName: "Seeded User",
		Role:     role,
		IsActive: true,
	})
	token, err := env.tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) seedReview(t *testing.T, userID, companyID uuid.UUID, rating int) *models.Review {
	t.Helper()
	review := &models.Review{
		UserID:     userID,
		CompanyID:  companyID,
		Rating:     rating,
		Title:      "A seeded review",
		Content:    "Seeded content long enough to look like a real review body for listing tests.",
		ReviewType: models.ReviewTypeCustomer,
	}
	require.NoError(t, env.reviews.Create(context.Background(), review))
	return review
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return data
}
