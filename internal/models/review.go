package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review statuses. Only published reviews count toward public statistics.
const (
	ReviewStatusDraft     = "draft"
	ReviewStatusPending   = "pending"
	ReviewStatusPublished = "published"
	ReviewStatusFlagged   = "flagged"
	ReviewStatusRemoved   = "removed"
)

const (
	ReviewTypeCustomer = "customer"
	ReviewTypeEmployee = "employee"
	ReviewTypeBusiness = "business"
)

type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_company"`
	CompanyID uuid.UUID `json:"company_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_company"`

	Rating  int     `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Title   string  `json:"title" gorm:"not null"`
	Content string  `json:"content" gorm:"not null"`
	Pros    *string `json:"pros,omitempty"`
	Cons    *string `json:"cons,omitempty"`

	ExperienceDate *time.Time `json:"experience_date,omitempty"`

	ReviewType       string  `json:"review_type" gorm:"default:customer"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	JobTitle         *string `json:"job_title,omitempty"`

	WorkLifeBalanceRating     *int `json:"work_life_balance_rating,omitempty"`
	CompensationRating        *int `json:"compensation_rating,omitempty"`
	CultureRating             *int `json:"culture_rating,omitempty"`
	ManagementRating          *int `json:"management_rating,omitempty"`
	CareerOpportunitiesRating *int `json:"career_opportunities_rating,omitempty"`

	Status string `json:"status" gorm:"default:published;index"`

	HelpfulCount    int `json:"helpful_count" gorm:"default:0"`
	NotHelpfulCount int `json:"not_helpful_count" gorm:"default:0"`

	Edited      bool       `json:"edited" gorm:"default:false"`
	EditedAt    *time.Time `json:"edited_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User    User         `json:"-"`
	Company Company      `json:"-"`
	Votes   []ReviewVote `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReviewStatusPublished
	}
	if r.Status == ReviewStatusPublished && r.PublishedAt == nil {
		now := time.Now()
		r.PublishedAt = &now
	}
	return nil
}

// ReviewVote relates a voter to a review. At most one row exists per
// (review_id, user_id); a repeat vote overwrites the previous value.
type ReviewVote struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ReviewID  uuid.UUID `json:"review_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_votes_review_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_votes_review_user"`
	IsHelpful bool      `json:"is_helpful"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *ReviewVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (ReviewVote) TableName() string {
	return "review_votes"
}
