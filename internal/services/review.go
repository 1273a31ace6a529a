package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/models"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
	"github.com/okothvientrevor/ALOVAZE/pkg/logger"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ReviewStore is the persistence surface of the review lifecycle.
// *store.ReviewStore satisfies it; tests use fakes.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Update(ctx context.Context, id, userID uuid.UUID, patch *store.ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	FindByUser(ctx context.Context, userID uuid.UUID, page store.Page) ([]models.Review, int64, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, page store.Page, sortBy string) ([]models.Review, int64, float64, error)
	VoteHelpful(ctx context.Context, reviewID, userID uuid.UUID, isHelpful bool) error
	CanUserReviewCompany(ctx context.Context, userID, companyID uuid.UUID) (bool, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Statistics(ctx context.Context, companyID uuid.UUID) (*store.ReviewStatistics, error)
}

// ReviewCounter is the one user-store operation the lifecycle needs.
type ReviewCounter interface {
	IncrementReviewCount(ctx context.Context, id uuid.UUID) error
}

// StatsCache is satisfied by *cache.Client.
type StatsCache interface {
	GetObject(ctx context.Context, key string, dest interface{}) (bool, error)
	SetObject(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type ReviewService struct {
	reviews  ReviewStore
	users    ReviewCounter
	cache    StatsCache
	cacheTTL time.Duration
}

func NewReviewService(reviews ReviewStore, users ReviewCounter, statsCache StatsCache, cacheTTL time.Duration) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		users:    users,
		cache:    statsCache,
		cacheTTL: cacheTTL,
	}
}

type CreateReviewRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Title     string    `json:"title" binding:"required,min=10,max=200"`
	Content   string    `json:"content" binding:"required,min=50,max=5000"`
	Pros      *string   `json:"pros,omitempty" binding:"omitempty,max=1000"`
	Cons      *string   `json:"cons,omitempty" binding:"omitempty,max=1000"`

	ExperienceDate *time.Time `json:"experience_date,omitempty"`

	ReviewType       string  `json:"review_type,omitempty" binding:"omitempty,oneof=customer employee business"`
	EmploymentStatus *string `json:"employment_status,omitempty" binding:"omitempty,oneof=current former contract intern"`
	JobTitle         *string `json:"job_title,omitempty" binding:"omitempty,max=255"`

	WorkLifeBalanceRating     *int `json:"work_life_balance_rating,omitempty" binding:"omitempty,min=1,max=5"`
	CompensationRating        *int `json:"compensation_rating,omitempty" binding:"omitempty,min=1,max=5"`
	CultureRating             *int `json:"culture_rating,omitempty" binding:"omitempty,min=1,max=5"`
	ManagementRating          *int `json:"management_rating,omitempty" binding:"omitempty,min=1,max=5"`
	CareerOpportunitiesRating *int `json:"career_opportunities_rating,omitempty" binding:"omitempty,min=1,max=5"`
}

// ReviewResponse is a review joined with the display fields of its author and
// company.
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CompanyID uuid.UUID `json:"company_id"`

	Rating  int     `json:"rating"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Pros    *string `json:"pros,omitempty"`
	Cons    *string `json:"cons,omitempty"`

	ReviewType       string  `json:"review_type"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	JobTitle         *string `json:"job_title,omitempty"`

	WorkLifeBalanceRating     *int `json:"work_life_balance_rating,omitempty"`
	CompensationRating        *int `json:"compensation_rating,omitempty"`
	CultureRating             *int `json:"culture_rating,omitempty"`
	ManagementRating          *int `json:"management_rating,omitempty"`
	CareerOpportunitiesRating *int `json:"career_opportunities_rating,omitempty"`

	Status          string     `json:"status"`
	HelpfulCount    int        `json:"helpful_count"`
	NotHelpfulCount int        `json:"not_helpful_count"`
	Edited          bool       `json:"edited"`
	EditedAt        *time.Time `json:"edited_at,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	UserName           string `json:"user_name,omitempty"`
	UserImage          string `json:"user_image,omitempty"`
	IsVerifiedReviewer bool   `json:"is_verified_reviewer"`
	CompanyName        string `json:"company_name,omitempty"`
	CompanyLogo        string `json:"company_logo,omitempty"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

type ReviewListResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Pagination Pagination       `json:"pagination"`
}

type CompanyReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
	Pagination    Pagination       `json:"pagination"`
}

// NormalizePage clamps limit/offset to sane bounds.
func NormalizePage(limit, offset int) store.Page {
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return store.Page{Limit: limit, Offset: offset}
}

func toReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		CompanyID: r.CompanyID,

		Rating:  r.Rating,
		Title:   r.Title,
		Content: r.Content,
		Pros:    r.Pros,
		Cons:    r.Cons,

		ReviewType:       r.ReviewType,
		EmploymentStatus: r.EmploymentStatus,
		JobTitle:         r.JobTitle,

		WorkLifeBalanceRating:     r.WorkLifeBalanceRating,
		CompensationRating:        r.CompensationRating,
		CultureRating:             r.CultureRating,
		ManagementRating:          r.ManagementRating,
		CareerOpportunitiesRating: r.CareerOpportunitiesRating,

		Status:          r.Status,
		HelpfulCount:    r.HelpfulCount,
		NotHelpfulCount: r.NotHelpfulCount,
		Edited:          r.Edited,
		EditedAt:        r.EditedAt,
		PublishedAt:     r.PublishedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.User.ID != uuid.Nil {
		resp.UserName = r.User.FullName
		resp.UserImage = r.User.ProfileImageURL
		resp.IsVerifiedReviewer = r.User.IsVerifiedReviewer
	}
	if r.Company.ID != uuid.Nil {
		resp.CompanyName = r.Company.Name
		resp.CompanyLogo = r.Company.LogoURL
	}

	return resp
}

func toReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out
}

func statsKey(companyID uuid.UUID) string {
	return "stats:company:" + companyID.String()
}

// Create persists a new review for the caller. The pre-check gives a clean
// conflict before the write; the unique index catches the race the pre-check
// cannot.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	canReview, err := s.reviews.CanUserReviewCompany(ctx, userID, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if !canReview {
		return nil, store.ErrDuplicateReview
	}

	reviewType := req.ReviewType
	if reviewType == "" {
		reviewType = models.ReviewTypeCustomer
	}

	review := &models.Review{
		UserID:    userID,
		CompanyID: req.CompanyID,
		Rating:    req.Rating,
		Title:     utils.SanitizeString(req.Title),
		Content:   utils.SanitizeString(req.Content),
		Pros:      req.Pros,
		Cons:      req.Cons,

		ExperienceDate: req.ExperienceDate,

		ReviewType:       reviewType,
		EmploymentStatus: req.EmploymentStatus,
		JobTitle:         req.JobTitle,

		WorkLifeBalanceRating:     req.WorkLifeBalanceRating,
		CompensationRating:        req.CompensationRating,
		CultureRating:             req.CultureRating,
		ManagementRating:          req.ManagementRating,
		CareerOpportunitiesRating: req.CareerOpportunitiesRating,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.users.IncrementReviewCount(ctx, userID); err != nil {
		return nil, err
	}

	full, err := s.reviews.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, req.CompanyID)

	resp := toReviewResponse(full)
	return &resp, nil
}

func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) Update(ctx context.Context, id, userID uuid.UUID, patch *store.ReviewUpdate) (*ReviewResponse, error) {
	review, err := s.reviews.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, review.CompanyID)

	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	// Fetch first so a successful delete can invalidate the company's cached
	// statistics. An ownership mismatch falls through to the scoped delete
	// and reports the same not-found outcome as a missing row.
	review, err := s.reviews.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	deleted, err := s.reviews.Delete(ctx, id, userID)
	if err != nil || !deleted {
		return deleted, err
	}

	s.invalidateStats(ctx, review.CompanyID)
	return true, nil
}

func (s *ReviewService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) (*ReviewListResponse, error) {
	page := NormalizePage(limit, offset)
	reviews, total, err := s.reviews.FindByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	return &ReviewListResponse{
		Reviews: toReviewResponses(reviews),
		Pagination: Pagination{
			Total:   total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: int64(page.Offset+page.Limit) < total,
		},
	}, nil
}

func (s *ReviewService) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int, sortBy string) (*CompanyReviewsResponse, error) {
	page := NormalizePage(limit, offset)
	reviews, total, averageRating, err := s.reviews.FindByCompany(ctx, companyID, page, sortBy)
	if err != nil {
		return nil, err
	}

	return &CompanyReviewsResponse{
		Reviews:       toReviewResponses(reviews),
		AverageRating: averageRating,
		Pagination: Pagination{
			Total:   total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: int64(page.Offset+page.Limit) < total,
		},
	}, nil
}

func (s *ReviewService) Vote(ctx context.Context, reviewID, userID uuid.UUID, isHelpful bool) error {
	return s.reviews.VoteHelpful(ctx, reviewID, userID, isHelpful)
}

func (s *ReviewService) Statistics(ctx context.Context, companyID uuid.UUID) (*store.ReviewStatistics, error) {
	key := statsKey(companyID)
	if s.cache != nil {
		var cached store.ReviewStatistics
		hit, err := s.cache.GetObject(ctx, key, &cached)
		if err != nil {
			logger.Warn("stats cache read failed: ", err)
		} else if hit {
			return &cached, nil
		}
	}

	stats, err := s.reviews.Statistics(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetObject(ctx, key, stats, s.cacheTTL); err != nil {
			logger.Warn("stats cache write failed: ", err)
		}
	}

	return stats, nil
}

// Moderate applies a moderation action to a review.
func (s *ReviewService) Moderate(ctx context.Context, reviewID uuid.UUID, action string) error {
	var status string
	switch action {
	case "approve":
		status = models.ReviewStatusPublished
	case "flag":
		status = models.ReviewStatusFlagged
	case "remove":
		status = models.ReviewStatusRemoved
	default:
		return ErrInvalidModeration
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviews.SetStatus(ctx, reviewID, status); err != nil {
		return err
	}

	s.invalidateStats(ctx, review.CompanyID)
	return nil
}

func (s *ReviewService) invalidateStats(ctx context.Context, companyID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsKey(companyID)); err != nil {
		logger.Warn("stats cache invalidation failed: ", err)
	}
}
