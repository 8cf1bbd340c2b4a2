package core

import (
	"sort"
	"strings"
)

// FilterAll is the categorical filter value meaning "no filter".
const FilterAll = "all"

// IsFilterSet reports whether a categorical filter value actually restricts results.
func IsFilterSet(value string) bool {
	value = CleanString(value)
	return value != "" && !strings.EqualFold(value, FilterAll)
}

// ContainsFold reports whether any of fields contains query, ignoring case.
// The query is not trimmed. A blank query matches everything.
func ContainsFold(query string, fields ...string) bool {
	if CleanString(query) == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, fld := range fields {
		if strings.Contains(strings.ToLower(fld), query) {
			return true
		}
	}
	return false
}

// FilterSlice returns the items satisfying keep, in their original order.
func FilterSlice[T any](items []T, keep func(T) bool) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// DistinctStrings returns the distinct non-blank values in first-seen order.
func DistinctStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if CleanString(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	return distinct
}

type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	if ord.Ascending {
		return ord.Field
	}
	return "-" + ord.Field
}

// Comparator returns a negative number when a sorts before b, a positive one when after and 0 if equal.
type Comparator[T any] func(a, b T) int

// SortBy stable-sorts items in place by the given orderings. Orderings on unknown fields are ignored.
func SortBy[T any](items []T, orderings []Ordering, comparators map[string]Comparator[T]) {
	if len(orderings) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, ord := range orderings {
			cmp, ok := comparators[ord.Field]
			if !ok {
				continue
			}
			c := cmp(items[i], items[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

// CompareStrings compares two strings ignoring case.
func CompareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
