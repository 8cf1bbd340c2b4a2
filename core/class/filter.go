package class

import "github.com/trezcool/shule/core"

var comparators = map[string]core.Comparator[Class]{
	"id":       func(a, b Class) int { return core.CompareInts(a.ID, b.ID) },
	"name":     func(a, b Class) int { return core.CompareStrings(a.Name, b.Name) },
	"subject":  func(a, b Class) int { return core.CompareStrings(a.Subject, b.Subject) },
	"room":     func(a, b Class) int { return core.CompareStrings(a.Room, b.Room) },
	"capacity": func(a, b Class) int { return core.CompareInts(a.Capacity, b.Capacity) },
	"enrolled": func(a, b Class) int { return core.CompareInts(a.EnrolledCount(), b.EnrolledCount()) },
}

// Filter applies the AND of the QueryFilter fields, keeping the input order.
// Search does a case-insensitive match on the name, the subject or the room.
func Filter(classes []Class, filter QueryFilter) []Class {
	filter.Clean()
	return core.FilterSlice(classes, func(c Class) bool {
		if !core.ContainsFold(filter.Search, c.Name, c.Subject, c.Room) {
			return false
		}
		if core.IsFilterSet(filter.Subject) && c.Subject != filter.Subject {
			return false
		}
		return true
	})
}

func Sort(classes []Class, orderings []core.Ordering) {
	core.SortBy(classes, orderings, comparators)
}

// Subjects returns the distinct subjects in first-seen order.
func Subjects(classes []Class) []string {
	subjects := make([]string, 0, len(classes))
	for _, c := range classes {
		subjects = append(subjects, c.Subject)
	}
	return core.DistinctStrings(subjects)
}
