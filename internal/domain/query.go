package domain

import "fmt"

// Field names a filterable offer attribute. The set is closed; store adapters
// map each value to a column through a whitelist.
type Field string

const (
	FieldTitle        Field = "title"
	FieldLocation     Field = "location"
	FieldCategorySlug Field = "category_slug"
	FieldCompanySlug  Field = "company_slug"
	FieldSalary       Field = "salary"
	FieldIsActive     Field = "is_active"
)

type Op string

const (
	OpEq       Op = "eq"
	OpContains Op = "contains" // case-insensitive literal substring
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpIn       Op = "in"
)

type Constraint struct {
	Field Field
	Op    Op
	Value any
}

// Predicate is the AND of its constraints.
type Predicate struct {
	Constraints []Constraint
}

// ActiveOnly is the base of every read predicate.
func ActiveOnly() Predicate {
	return Predicate{Constraints: []Constraint{{Field: FieldIsActive, Op: OpEq, Value: true}}}
}

// And returns a new predicate; the receiver is left untouched.
func (p Predicate) And(cs ...Constraint) Predicate {
	out := make([]Constraint, 0, len(p.Constraints)+len(cs))
	out = append(out, p.Constraints...)
	out = append(out, cs...)
	return Predicate{Constraints: out}
}

type SortOrder string

const (
	SortDefault    SortOrder = ""
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortSalaryAsc  SortOrder = "salary_asc"
	SortSalaryDesc SortOrder = "salary_desc"
	SortPopular    SortOrder = "popular"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch so := SortOrder(s); so {
	case SortDefault, SortNewest, SortOldest, SortSalaryAsc, SortSalaryDesc, SortPopular:
		return so, nil
	default:
		return SortDefault, NewValidationError("sort", fmt.Sprintf("unknown sort order %q", s))
	}
}

type PageRequest struct {
	Limit  int
	Offset int
	Sort   SortOrder
}

// OfferPage is one bounded slice of a listing. TotalCount counts every match,
// not just Items.
type OfferPage struct {
	Items      []Offer `json:"offers"`
	TotalCount int64   `json:"count"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}
