package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort orders accepted by FindByCompany.
const (
	SortRecent  = "recent"
	SortHelpful = "helpful"
	SortRating  = "rating"
)

type ReviewStore struct {
	db *gorm.DB
}

func NewReviewStore(db *gorm.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Create inserts a review. The composite unique index on (user_id, company_id)
// is the authoritative guard for the one-review-per-company invariant; the
// pre-insert check in the lifecycle service only exists for a friendlier
// error before the write.
func (s *ReviewStore) Create(ctx context.Context, review *models.Review) error {
	err := s.db.WithContext(ctx).Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReview
	}
	return err
}

func (s *ReviewStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Company").
		Where("id = ?", id).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ReviewUpdate is the allow-list for review patches.
type ReviewUpdate struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Title   *string `json:"title,omitempty" binding:"omitempty,min=10,max=200"`
	Content *string `json:"content,omitempty" binding:"omitempty,min=50,max=5000"`
	Pros    *string `json:"pros,omitempty" binding:"omitempty,max=1000"`
	Cons    *string `json:"cons,omitempty" binding:"omitempty,max=1000"`
}

func (p *ReviewUpdate) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Rating != nil {
		updates["rating"] = *p.Rating
	}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Content != nil {
		updates["content"] = *p.Content
	}
	if p.Pros != nil {
		updates["pros"] = *p.Pros
	}
	if p.Cons != nil {
		updates["cons"] = *p.Cons
	}
	return updates
}

// Update patches a review scoped to both id and owner. A wrong id and a wrong
// owner produce the same ErrNotFound.
func (s *ReviewStore) Update(ctx context.Context, id, userID uuid.UUID, patch *ReviewUpdate) (*models.Review, error) {
	updates := patch.columns()
	updates["edited"] = true
	updates["edited_at"] = time.Now()

	result := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.FindByID(ctx, id)
}

// Delete removes a review scoped to its owner. Returns false when no row
// matched, whatever the reason.
func (s *ReviewStore) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Review{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByUser lists a user's reviews regardless of status: the own-profile
// view shows pending and flagged entries too.
func (s *ReviewStore) FindByUser(ctx context.Context, userID uuid.UUID, page Page) ([]models.Review, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err = s.db.WithContext(ctx).
		Preload("Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func orderClause(sortBy string) string {
	switch sortBy {
	case SortHelpful:
		return "helpful_count DESC, created_at DESC"
	case SortRating:
		return "rating DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// FindByCompany lists published reviews for a company. total is the count of
// all published reviews so callers can compute hasMore across pages.
func (s *ReviewStore) FindByCompany(ctx context.Context, companyID uuid.UUID, page Page, sortBy string) ([]models.Review, int64, float64, error) {
	var stats struct {
		Total     int64
		AvgRating float64
	}
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS total, COALESCE(AVG(rating), 0) AS avg_rating").
		Where("company_id = ? AND status = ?", companyID, models.ReviewStatusPublished).
		Scan(&stats).Error
	if err != nil {
		return nil, 0, 0, err
	}

	var reviews []models.Review
	err = s.db.WithContext(ctx).
		Preload("User").
		Where("company_id = ? AND status = ?", companyID, models.ReviewStatusPublished).
		Order(orderClause(sortBy)).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, 0, err
	}

	return reviews, stats.Total, stats.AvgRating, nil
}

// VoteHelpful upserts the caller's vote and recounts both vote counters from
// the vote rows inside one transaction. Counters are recomputed, never
// incremented, so they self-heal from any prior inconsistency.
func (s *ReviewStore) VoteHelpful(ctx context.Context, reviewID, userID uuid.UUID, isHelpful bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vote := models.ReviewVote{
			ReviewID:  reviewID,
			UserID:    userID,
			IsHelpful: isHelpful,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_helpful": isHelpful,
				"updated_at": time.Now(),
			}),
		}).Create(&vote).Error
		// A vote for a nonexistent review trips the review_id foreign key.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE reviews SET
				helpful_count = (SELECT COUNT(*) FROM review_votes WHERE review_id = ? AND is_helpful = TRUE),
				not_helpful_count = (SELECT COUNT(*) FROM review_votes WHERE review_id = ? AND is_helpful = FALSE)
			WHERE id = ?`,
			reviewID, reviewID, reviewID).Error
	})
}

// CanUserReviewCompany reports whether the pair has no review yet, regardless
// of status.
func (s *ReviewStore) CanUserReviewCompany(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// SetStatus moves a review through the moderation state machine.
func (s *ReviewStore) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == models.ReviewStatusPublished {
		updates["published_at"] = time.Now()
	}

	result := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type ReviewStatistics struct {
	Total              int64         `json:"total"`
	AverageRating      float64       `json:"averageRating"`
	RatingDistribution map[int]int64 `json:"ratingDistribution"`
}

// Statistics aggregates published reviews only. The distribution buckets
// always sum to Total.
func (s *ReviewStore) Statistics(ctx context.Context, companyID uuid.UUID) (*ReviewStatistics, error) {
	var row struct {
		Total     int64
		AvgRating float64
		FiveStar  int64
		FourStar  int64
		ThreeStar int64
		TwoStar   int64
		OneStar   int64
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(AVG(rating), 0) AS avg_rating,
			COUNT(CASE WHEN rating = 5 THEN 1 END) AS five_star,
			COUNT(CASE WHEN rating = 4 THEN 1 END) AS four_star,
			COUNT(CASE WHEN rating = 3 THEN 1 END) AS three_star,
			COUNT(CASE WHEN rating = 2 THEN 1 END) AS two_star,
			COUNT(CASE WHEN rating = 1 THEN 1 END) AS one_star
		FROM reviews
		WHERE company_id = ? AND status = ?`,
		companyID, models.ReviewStatusPublished).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &ReviewStatistics{
		Total:         row.Total,
		AverageRating: row.AvgRating,
		RatingDistribution: map[int]int64{
			5: row.FiveStar,
			4: row.FourStar,
			3: row.ThreeStar,
			2: row.TwoStar,
			1: row.OneStar,
		},
	}, nil
}
