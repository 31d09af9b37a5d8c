package offer

import (
	"fmt"

	"offerboard/internal/domain"
)

var (
	ErrCategoryNotFound   = fmt.Errorf("category %w", domain.ErrNotFound)
	ErrEnterpriseNotFound = fmt.Errorf("enterprise %w", domain.ErrNotFound)
	ErrNoLocations        = fmt.Errorf("locations %w", domain.ErrNotFound)
)
