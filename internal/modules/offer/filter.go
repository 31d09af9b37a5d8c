package offer

import (
	"math"
	"strconv"
	"strings"

	"offerboard/internal/domain"
)

// BuildPredicate turns listing parameters into a predicate over active offers.
// Title and SearchTerm both match the title as a case-insensitive literal
// substring; every other filter is exact.
func BuildPredicate(f OfferFilters) (domain.Predicate, error) {
	var cs []domain.Constraint

	for _, term := range []string{f.Title, f.SearchTerm} {
		if t := strings.TrimSpace(term); t != "" {
			cs = append(cs, domain.Constraint{Field: domain.FieldTitle, Op: domain.OpContains, Value: t})
		}
	}
	if v := strings.TrimSpace(f.Location); v != "" {
		cs = append(cs, domain.Constraint{Field: domain.FieldLocation, Op: domain.OpEq, Value: v})
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		cs = append(cs, domain.Constraint{Field: domain.FieldCategorySlug, Op: domain.OpEq, Value: v})
	}
	if v := strings.TrimSpace(f.Company); v != "" {
		cs = append(cs, domain.Constraint{Field: domain.FieldCompanySlug, Op: domain.OpEq, Value: v})
	}

	verr := &domain.ValidationError{Fields: map[string]string{}}
	lo, hasLo := parseSalary(verr, "salaryMin", f.SalaryMin)
	hi, hasHi := parseSalary(verr, "salaryMax", f.SalaryMax)
	if hasLo && hasHi && lo > hi {
		verr.Fields["salaryMin"] = "must not exceed salaryMax"
	}
	if len(verr.Fields) > 0 {
		return domain.Predicate{}, verr
	}
	if hasLo {
		cs = append(cs, domain.Constraint{Field: domain.FieldSalary, Op: domain.OpGte, Value: lo})
	}
	if hasHi {
		cs = append(cs, domain.Constraint{Field: domain.FieldSalary, Op: domain.OpLte, Value: hi})
	}

	return domain.ActiveOnly().And(cs...), nil
}

func parseSalary(verr *domain.ValidationError, field, raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		verr.Fields[field] = "must be a number"
		return 0, false
	}
	return v, true
}
