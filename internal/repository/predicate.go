package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"offerboard/internal/domain"
)

// offerColumns is the only path from a domain.Field to SQL.
var offerColumns = map[domain.Field]string{
	domain.FieldTitle:        "offers.title",
	domain.FieldLocation:     "offers.location",
	domain.FieldCategorySlug: "offers.category_slug",
	domain.FieldCompanySlug:  "offers.company_slug",
	domain.FieldSalary:       "offers.salary",
	domain.FieldIsActive:     "offers.is_active",
}

// searchColumns hold lowercased copies used by OpContains.
var searchColumns = map[domain.Field]string{
	domain.FieldTitle: "offers.title_search",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func applyPredicate(q *gorm.DB, p domain.Predicate) (*gorm.DB, error) {
	for _, c := range p.Constraints {
		col, ok := offerColumns[c.Field]
		if !ok {
			return nil, domain.NewValidationError(string(c.Field), "unsupported filter field")
		}

		switch c.Op {
		case domain.OpEq:
			q = q.Where(col+" = ?", c.Value)
		case domain.OpGte:
			q = q.Where(col+" >= ?", c.Value)
		case domain.OpLte:
			q = q.Where(col+" <= ?", c.Value)
		case domain.OpIn:
			q = q.Where(col+" IN ?", c.Value)
		case domain.OpContains:
			s, ok := c.Value.(string)
			if !ok {
				return nil, domain.NewValidationError(string(c.Field), "substring filter needs a string")
			}
			searchCol, ok := searchColumns[c.Field]
			if !ok {
				return nil, domain.NewValidationError(string(c.Field), "substring filter not supported")
			}
			q = q.Where(searchCol+` LIKE ? ESCAPE '\'`, containsPattern(s))
		default:
			return nil, domain.NewValidationError(string(c.Field), fmt.Sprintf("unsupported operator %q", c.Op))
		}
	}
	return q, nil
}

// containsPattern makes user text a literal, lowercased LIKE operand.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func applySort(q *gorm.DB, s domain.SortOrder) *gorm.DB {
	switch s {
	case domain.SortNewest:
		return q.Order("offers.created_at DESC")
	case domain.SortOldest:
		return q.Order("offers.created_at ASC")
	case domain.SortSalaryAsc:
		return q.Order("offers.salary ASC")
	case domain.SortSalaryDesc:
		return q.Order("offers.salary DESC")
	case domain.SortPopular:
		return q.Order("offers.favorites_count DESC").Order("offers.created_at DESC")
	default:
		return q
	}
}
