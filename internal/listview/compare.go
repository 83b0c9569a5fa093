package listview

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
)

// Key orders records by one attribute.
//
// ascending compares two records that both carry the attribute. present
// reports whether a record carries it at all; records without it sort after
// every record with it, whatever the direction.
type Key[T any] struct {
	ascending func(a, b T) int
	present   func(T) bool
}

// Compare returns a negative, zero or positive number. The direction is
// applied once, after the missing-value branch.
func (k Key[T]) Compare(a, b T, dir Direction) int {
	aok, bok := k.has(a), k.has(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	c := k.ascending(a, b)
	if dir == Descending {
		return -c
	}
	return c
}

func (k Key[T]) has(v T) bool {
	return k.present == nil || k.present(v)
}

// StringKey orders by a text field with French base-strength collation.
// Blank values count as missing.
func StringKey[T any](field func(T) string) Key[T] {
	return Key[T]{
		ascending: func(a, b T) int { return CompareStrings(field(a), field(b)) },
		present:   func(v T) bool { return strings.TrimSpace(field(v)) != "" },
	}
}

// BoolKey orders true before false in ascending direction.
func BoolKey[T any](field func(T) bool) Key[T] {
	return Key[T]{
		ascending: func(a, b T) int {
			av, bv := field(a), field(b)
			switch {
			case av == bv:
				return 0
			case av:
				return -1
			default:
				return 1
			}
		},
	}
}

// IntKey orders by an optional integer.
func IntKey[T any](field func(T) (int, bool)) Key[T] {
	return Key[T]{
		ascending: func(a, b T) int {
			av, _ := field(a)
			bv, _ := field(b)
			return cmp.Compare(av, bv)
		},
		present: func(v T) bool {
			_, ok := field(v)
			return ok
		},
	}
}

// FloatKey orders by an optional number.
func FloatKey[T any](field func(T) (float64, bool)) Key[T] {
	return Key[T]{
		ascending: func(a, b T) int {
			av, _ := field(a)
			bv, _ := field(b)
			return cmp.Compare(av, bv)
		},
		present: func(v T) bool {
			_, ok := field(v)
			return ok
		},
	}
}

// TimeKey orders by a timestamp. The zero time counts as missing.
func TimeKey[T any](field func(T) time.Time) Key[T] {
	return Key[T]{
		ascending: func(a, b T) int { return field(a).Compare(field(b)) },
		present:   func(v T) bool { return !field(v).IsZero() },
	}
}

// CountKey orders by a derived count such as the number of likes.
func CountKey[T any](count func(T) int) Key[T] {
	return Key[T]{
		ascending: func(a, b T) int { return cmp.Compare(count(a), count(b)) },
	}
}

// SortTable maps the sort keys a page offers to their comparators.
type SortTable[T any] map[SortKey]Key[T]

// Sort orders items in place by key and direction. The sort is stable:
// records comparing equal keep their relative order. Unknown keys leave
// the order untouched.
func (t SortTable[T]) Sort(items []T, key SortKey, dir Direction) {
	k, ok := t[key]
	if !ok {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		return k.Compare(a, b, dir)
	})
}

// Keys returns the table's keys in lexical order.
func (t SortTable[T]) Keys() []SortKey {
	keys := make([]SortKey, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SplitSort reads "key", "key:asc", "key:desc" or "-key" without checking
// the key.
func SplitSort(s string) (string, Direction, error) {
	name := strings.TrimSpace(s)
	if strings.HasPrefix(name, "-") {
		return name[1:], Descending, nil
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		dir, err := ParseDirection(name[i+1:])
		if err != nil {
			return "", Ascending, err
		}
		return name[:i], dir, nil
	}
	return name, Ascending, nil
}

// Parse reads a sort specification (see SplitSort) and checks the key
// against the table. An empty string yields the zero key, which Sort
// ignores.
func (t SortTable[T]) Parse(s string) (SortKey, Direction, error) {
	name, dir, err := SplitSort(s)
	if err != nil {
		return "", Ascending, domain.NewValidationError("sort", "%v", err)
	}
	if name == "" {
		return "", Ascending, nil
	}

	key := SortKey(name)
	if _, ok := t[key]; !ok {
		return "", Ascending, domain.NewValidationError("sort", "unsupported sort key %q (allowed: %s)", name, joinKeys(t.Keys()))
	}
	return key, dir, nil
}

func joinKeys(keys []SortKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
