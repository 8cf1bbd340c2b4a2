package teacher

import "github.com/trezcool/shule/core"

var comparators = map[string]core.Comparator[Teacher]{
	"id":         func(a, b Teacher) int { return core.CompareInts(a.ID, b.ID) },
	"name":       func(a, b Teacher) int { return core.CompareStrings(a.FullName(), b.FullName()) },
	"email":      func(a, b Teacher) int { return core.CompareStrings(a.Email, b.Email) },
	"department": func(a, b Teacher) int { return core.CompareStrings(a.Department, b.Department) },
	"status":     func(a, b Teacher) int { return core.CompareStrings(a.Status, b.Status) },
	"hire_date":  func(a, b Teacher) int { return core.CompareStrings(a.HireDate, b.HireDate) },
}

// Filter applies the AND of the QueryFilter fields, keeping the input order.
// Search does a case-insensitive match on the full name, the email or the department.
func Filter(teachers []Teacher, filter QueryFilter) []Teacher {
	filter.Clean()
	return core.FilterSlice(teachers, func(t Teacher) bool {
		if !core.ContainsFold(filter.Search, t.FullName(), t.Email, t.Department) {
			return false
		}
		if core.IsFilterSet(filter.Department) && t.Department != filter.Department {
			return false
		}
		if core.IsFilterSet(filter.Status) && t.Status != filter.Status {
			return false
		}
		return true
	})
}

func Sort(teachers []Teacher, orderings []core.Ordering) {
	core.SortBy(teachers, orderings, comparators)
}

// Departments returns the distinct departments in first-seen order.
func Departments(teachers []Teacher) []string {
	depts := make([]string, 0, len(teachers))
	for _, t := range teachers {
		depts = append(depts, t.Department)
	}
	return core.DistinctStrings(depts)
}
