package domain

import "time"

// User is owned by the identity service; this module only reads it.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	FollowedCompanies []FollowedCompany `json:"-" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// FollowingCompanies returns the slugs of the companies the user follows.
func (u *User) FollowingCompanies() []string {
	slugs := make([]string, 0, len(u.FollowedCompanies))
	for _, fc := range u.FollowedCompanies {
		slugs = append(slugs, fc.CompanySlug)
	}
	return slugs
}

type FollowedCompany struct {
	UserID      int64     `json:"user_id" gorm:"primaryKey"`
	CompanySlug string    `json:"company_slug" gorm:"primaryKey;type:varchar(160)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (FollowedCompany) TableName() string {
	return "user_followed_companies"
}
