package offer

import "strings"

type CreateOfferInput struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Company      string  `json:"company" validate:"required,max=160"`
	CategorySlug string  `json:"category_slug" validate:"required,max=120"`
	Location     string  `json:"location" validate:"max=160"`
	Description  string  `json:"description"`
	Requirements string  `json:"requirements"`
	Salary       float64 `json:"salary" validate:"gte=0"`
	Image        string  `json:"image" validate:"omitempty,max=500"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active"`
}

func (in *CreateOfferInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.CategorySlug = strings.TrimSpace(in.CategorySlug)
	in.Location = strings.TrimSpace(in.Location)
	in.Image = strings.TrimSpace(in.Image)
}

// UpdateOfferInput is a partial update: nil leaves a field unchanged.
type UpdateOfferInput struct {
	Title        *string  `json:"title" validate:"omitnil,min=1,max=200"`
	Location     *string  `json:"location" validate:"omitnil,max=160"`
	Description  *string  `json:"description"`
	Requirements *string  `json:"requirements"`
	Salary       *float64 `json:"salary" validate:"omitnil,gte=0"`
	Image        *string  `json:"image" validate:"omitnil,max=500"`
	IsActive     *bool    `json:"is_active"`
}

func (in *UpdateOfferInput) normalize() {
	for _, p := range []*string{in.Title, in.Location, in.Image} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

// changes lists the columns to write, keyed by column name.
func (in UpdateOfferInput) changes() map[string]any {
	out := make(map[string]any)
	if in.Title != nil {
		out["title"] = *in.Title
	}
	if in.Location != nil {
		out["location"] = *in.Location
	}
	if in.Description != nil {
		out["description"] = *in.Description
	}
	if in.Requirements != nil {
		out["requirements"] = *in.Requirements
	}
	if in.Salary != nil {
		out["salary"] = *in.Salary
	}
	if in.Image != nil {
		out["image"] = *in.Image
	}
	if in.IsActive != nil {
		out["is_active"] = *in.IsActive
	}
	return out
}

// OfferFilters holds raw listing parameters as they arrive from a query
// string. Empty values are ignored.
type OfferFilters struct {
	Title      string `form:"title" binding:"max=200"`
	SearchTerm string `form:"searchTerm" binding:"max=200"`
	Location   string `form:"location" binding:"max=200"`
	Category   string `form:"category" binding:"max=160"`
	Company    string `form:"company" binding:"max=160"`
	SalaryMin  string `form:"salaryMin" binding:"max=32"`
	SalaryMax  string `form:"salaryMax" binding:"max=32"`
}

type FavoriteCountResponse struct {
	Slug           string `json:"slug"`
	FavoritesCount int64  `json:"favorites_count"`
}
