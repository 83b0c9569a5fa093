// Package listview derives paginated, filtered and sorted views over an
// in-memory collection and folds mutation results back into it.
//
// Everything in this package is a pure function of its inputs. Nothing is
// cached between calls, so a View may be shared between goroutines.
package listview

import (
	"fmt"
	"maps"
	"strings"
)

// AllValue is the filter and tab sentinel meaning "do not restrict".
const AllValue = "all"

// IsAll reports whether a filter value leaves the filter open.
func IsAll(value string) bool {
	return value == "" || strings.EqualFold(value, AllValue)
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc"/"desc" (any case). Empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort direction %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SortKey names an entry of a SortTable.
type SortKey string

// QueryState is the operator's current selection on one list page.
//
// The With* methods return modified copies. Changing the search term, a
// filter value or the tab sends the state back to page 1; a page number is
// never carried across a change of the filtered set.
type QueryState struct {
	Search    string            `json:"search"`
	Filters   map[string]string `json:"filters"`
	SortKey   SortKey           `json:"sortKey,omitempty"`
	Direction Direction         `json:"direction"`
	Tab       string            `json:"tab,omitempty"`
	Page      int               `json:"page"`
}

// NewQueryState returns the initial state for a page: no search, every
// filter open, page 1.
func NewQueryState(sortKey SortKey, dir Direction, tab string) QueryState {
	return QueryState{
		Filters:   map[string]string{},
		SortKey:   sortKey,
		Direction: dir,
		Tab:       tab,
		Page:      1,
	}
}

// Filter returns the selected value of a filter, AllValue when unset.
func (q QueryState) Filter(name string) string {
	if v, ok := q.Filters[name]; ok && !IsAll(v) {
		return v
	}
	return AllValue
}

// WithSearch sets the free-text term.
func (q QueryState) WithSearch(term string) QueryState {
	if term == q.Search {
		return q
	}
	q.Search = term
	q.Page = 1
	return q
}

// WithFilter selects a value for one filter. IsAll values reopen it.
func (q QueryState) WithFilter(name, value string) QueryState {
	if IsAll(value) {
		value = AllValue
	}
	if q.Filter(name) == value {
		return q
	}
	filters := maps.Clone(q.Filters)
	if filters == nil {
		filters = map[string]string{}
	}
	if value == AllValue {
		delete(filters, name)
	} else {
		filters[name] = value
	}
	q.Filters = filters
	q.Page = 1
	return q
}

// WithTab switches the active tab.
func (q QueryState) WithTab(tab string) QueryState {
	if tab == q.Tab {
		return q
	}
	q.Tab = tab
	q.Page = 1
	return q
}

// WithSort changes the ordering. The page is kept.
func (q QueryState) WithSort(key SortKey, dir Direction) QueryState {
	q.SortKey = key
	q.Direction = dir
	return q
}

// WithPage moves to a page. Values below 1 select page 1.
func (q QueryState) WithPage(page int) QueryState {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// SameSelection reports whether two states select the same filtered set
// (search, filters and tab), ignoring ordering and page.
func (q QueryState) SameSelection(other QueryState) bool {
	if q.Search != other.Search || q.Tab != other.Tab {
		return false
	}
	for name := range q.Filters {
		if q.Filter(name) != other.Filter(name) {
			return false
		}
	}
	for name := range other.Filters {
		if q.Filter(name) != other.Filter(name) {
			return false
		}
	}
	return true
}
