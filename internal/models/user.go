package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser          = "user"
	RoleBusinessOwner = "business_owner"
	RoleAdmin         = "admin"
	RoleModerator     = "moderator"
)

type User struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string    `json:"-" gorm:"not null"`
	FullName        string    `json:"full_name"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	Website         string    `json:"website"`
	ProfileImageURL string    `json:"profile_image_url"`
	Role            string    `json:"role" gorm:"default:user"`

	TotalReviews         int     `json:"total_reviews" gorm:"default:0"`
	HelpfulVotesReceived int     `json:"helpful_votes_received" gorm:"default:0"`
	TrustScore           float64 `json:"trust_score" gorm:"default:0"`

	IsActive  bool       `json:"is_active" gorm:"default:true"`
	IsBanned  bool       `json:"is_banned" gorm:"default:false"`
	BanReason *string    `json:"ban_reason,omitempty"`
	BannedAt  *time.Time `json:"banned_at,omitempty"`

	EmailVerified      bool `json:"email_verified" gorm:"default:false"`
	IsVerifiedReviewer bool `json:"is_verified_reviewer" gorm:"default:false"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Reviews []Review     `json:"-" gorm:"foreignKey:UserID"`
	Votes   []ReviewVote `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile is the public projection of a user. The password hash never
// leaves the store in this shape.
type UserProfile struct {
	ID                   uuid.UUID `json:"id"`
	Email                string    `json:"email"`
	FullName             string    `json:"full_name"`
	ProfileImageURL      string    `json:"profile_image_url"`
	Role                 string    `json:"role"`
	Bio                  string    `json:"bio"`
	Location             string    `json:"location"`
	Website              string    `json:"website"`
	EmailVerified        bool      `json:"email_verified"`
	IsVerifiedReviewer   bool      `json:"is_verified_reviewer"`
	TotalReviews         int       `json:"total_reviews"`
	HelpfulVotesReceived int       `json:"helpful_votes_received"`
	TrustScore           float64   `json:"trust_score"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:                   u.ID,
		Email:                u.Email,
		FullName:             u.FullName,
		ProfileImageURL:      u.ProfileImageURL,
		Role:                 u.Role,
		Bio:                  u.Bio,
		Location:             u.Location,
		Website:              u.Website,
		EmailVerified:        u.EmailVerified,
		IsVerifiedReviewer:   u.IsVerifiedReviewer,
		TotalReviews:         u.TotalReviews,
		HelpfulVotesReceived: u.HelpfulVotesReceived,
		TrustScore:           u.TrustScore,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
