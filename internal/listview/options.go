package listview

import (
	"slices"
	"strings"
)

// Normalizer canonicalizes a value before deduplication and comparison.
type Normalizer func(string) string

// Trim removes surrounding whitespace.
func Trim(s string) string { return strings.TrimSpace(s) }

// TrimUpper trims and upper-cases. Used for article sources.
func TrimUpper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// placeholders are values that mean "nothing" in the source data. The UI
// supplies its own "all" entry, so they never appear as options.
var placeholders = map[string]struct{}{
	"":       {},
	"aucune": {},
	"aucun":  {},
	"none":   {},
}

// IsPlaceholder reports whether v is an empty or "none" value.
func IsPlaceholder(v string) bool {
	_, ok := placeholders[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// OptionSource describes how to compute one filter's dropdown entries.
type OptionSource[T any] struct {
	Values    func(T) []string
	Normalize Normalizer
}

// Single adapts a single-valued field to OptionSource.Values.
func Single[T any](field func(T) string) func(T) []string {
	return func(v T) []string { return []string{field(v)} }
}

// DeriveOptions returns the distinct normalized values found in items,
// placeholders excluded, sorted with French collation. Values equal under
// collation but distinct as strings are ordered bytewise so the result does
// not depend on collection order.
func DeriveOptions[T any](items []T, values func(T) []string, norm Normalizer) []string {
	if norm == nil {
		norm = Trim
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range items {
		for _, raw := range values(item) {
			v := norm(raw)
			if IsPlaceholder(v) {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	slices.SortFunc(out, func(a, b string) int {
		if c := CompareStrings(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}
