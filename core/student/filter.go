package student

import "github.com/trezcool/shule/core"

var comparators = map[string]core.Comparator[Student]{
	"id":              func(a, b Student) int { return core.CompareInts(a.ID, b.ID) },
	"name":            func(a, b Student) int { return core.CompareStrings(a.FullName(), b.FullName()) },
	"first_name":      func(a, b Student) int { return core.CompareStrings(a.FirstName, b.FirstName) },
	"last_name":       func(a, b Student) int { return core.CompareStrings(a.LastName, b.LastName) },
	"email":           func(a, b Student) int { return core.CompareStrings(a.Email, b.Email) },
	"grade":           func(a, b Student) int { return core.CompareStrings(a.Grade, b.Grade) },
	"status":          func(a, b Student) int { return core.CompareStrings(a.Status, b.Status) },
	"enrollment_date": func(a, b Student) int { return core.CompareStrings(a.EnrollmentDate, b.EnrollmentDate) },
}

// Filter applies the AND of the QueryFilter fields, keeping the input order.
// Search does a case-insensitive match on the full name or the email.
func Filter(students []Student, filter QueryFilter) []Student {
	filter.Clean()
	return core.FilterSlice(students, func(s Student) bool {
		if !core.ContainsFold(filter.Search, s.FullName(), s.Email) {
			return false
		}
		if core.IsFilterSet(filter.Status) && s.Status != filter.Status {
			return false
		}
		if core.IsFilterSet(filter.Grade) && s.Grade != filter.Grade {
			return false
		}
		return true
	})
}

// Sort orders students in place; unknown ordering fields are ignored.
func Sort(students []Student, orderings []core.Ordering) {
	core.SortBy(students, orderings, comparators)
}
