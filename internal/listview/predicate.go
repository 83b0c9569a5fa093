package listview

import "strings"

// Predicate decides whether a record belongs to the filtered set.
// Each predicate fails open: when its input is unset it returns true.
type Predicate[T any] func(item T, q QueryState) bool

// All combines predicates with logical AND. Order does not matter.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T, q QueryState) bool {
		for _, p := range preds {
			if p != nil && !p(item, q) {
				return false
			}
		}
		return true
	}
}

// Search matches the search term as a case-insensitive literal substring
// of the configured fields joined with spaces, so "jean dup" finds
// name="Jean" lastname="Dupont".
func Search[T any](fields ...func(T) string) Predicate[T] {
	return func(item T, q QueryState) bool {
		if q.Search == "" {
			return true
		}
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = f(item)
		}
		return containsFold(strings.Join(parts, " "), strings.ToLower(q.Search))
	}
}

// Equals requires the named filter's value to equal the field (surrounding
// whitespace ignored). Reference fields pass their resolved id.
func Equals[T any](filter string, field func(T) string) Predicate[T] {
	return NormalizedEquals(filter, field, Trim)
}

// NormalizedEquals compares norm(field) with norm(selected value).
func NormalizedEquals[T any](filter string, field func(T) string, norm Normalizer) Predicate[T] {
	return func(item T, q QueryState) bool {
		want := q.Filter(filter)
		if IsAll(want) {
			return true
		}
		return norm(field(item)) == norm(want)
	}
}

// Bool matches a boolean field against "true"/"false" (also accepted:
// "active"/"inactive"). Unrecognised values leave the filter open.
func Bool[T any](filter string, field func(T) bool) Predicate[T] {
	return func(item T, q QueryState) bool {
		switch strings.ToLower(q.Filter(filter)) {
		case "true", "active":
			return field(item)
		case "false", "inactive":
			return !field(item)
		default:
			return true
		}
	}
}

// AnyEqualFold matches when any of the fields equals the selected value
// ignoring case.
func AnyEqualFold[T any](filter string, fields ...func(T) string) Predicate[T] {
	return func(item T, q QueryState) bool {
		want := q.Filter(filter)
		if IsAll(want) {
			return true
		}
		want = strings.TrimSpace(want)
		for _, f := range fields {
			if strings.EqualFold(strings.TrimSpace(f(item)), want) {
				return true
			}
		}
		return false
	}
}

// Contains matches when any value produced by values equals the selected
// value after normalization. Used for multi-valued attributes such as
// recipe ingredients.
func Contains[T any](filter string, values func(T) []string, norm Normalizer) Predicate[T] {
	return func(item T, q QueryState) bool {
		want := q.Filter(filter)
		if IsAll(want) {
			return true
		}
		want = norm(want)
		for _, v := range values(item) {
			if norm(v) == want {
				return true
			}
		}
		return false
	}
}
