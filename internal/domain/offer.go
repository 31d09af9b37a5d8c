package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer is a job-offer listing. Company and category fields are denormalized
// copies taken at creation time and never re-synchronized.
type Offer struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Slug         string    `json:"slug" gorm:"type:varchar(160);not null;uniqueIndex"`
	Title        string    `json:"title" gorm:"not null"`
	// TitleSearch is strings.ToLower(Title), kept by the repository so
	// substring matching folds non-ASCII case on every store.
	TitleSearch  string    `json:"-" gorm:"not null;default:'';index"`
	Company      string    `json:"company" gorm:"not null"`
	CompanySlug  string    `json:"company_slug" gorm:"not null;index"`
	Location     string    `json:"location" gorm:"index"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Salary       float64   `json:"salary" gorm:"not null;index"`
	CategoryID   uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	CategorySlug string    `json:"category_slug" gorm:"not null;index"`
	Image        string    `json:"image"`

	// IsActive has no column default: a false value must survive Create.
	IsActive bool `json:"is_active" gorm:"not null;index"`

	// FavoritesCount mirrors the number of offer_favorites rows of this offer.
	// Only the favorite repository writes it.
	FavoritesCount int64 `json:"favorites_count" gorm:"not null;default:0"`

	// Favorited is the per-user view, set only when a viewer is known.
	Favorited bool `json:"favorited" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comments []OfferComment `json:"comments,omitempty" gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

func (Offer) TableName() string {
	return "offers"
}

func (o *Offer) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OfferFavorite is one member of an offer's favorites set.
// The composite primary key keeps the set free of duplicates.
type OfferFavorite struct {
	OfferID   uuid.UUID `json:"offer_id" gorm:"type:uuid;primaryKey"`
	UserID    int64     `json:"user_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (OfferFavorite) TableName() string {
	return "offer_favorites"
}

// OfferComment is kept in creation order under its offer.
type OfferComment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OfferID   uuid.UUID `json:"offer_id" gorm:"type:uuid;not null;index"`
	UserID    int64     `json:"user_id" gorm:"not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (OfferComment) TableName() string {
	return "offer_comments"
}

func (c *OfferComment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
