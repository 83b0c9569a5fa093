// Package scheduling enforces the one-advice-per-day rule over the
// scheduling grid.
package scheduling

import (
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
)

// Grid bounds, inclusive.
const (
	FirstDay = config.FirstSlotDay
	LastDay  = config.LastSlotDay
)

// InRange reports whether day lies on the grid.
func InRange(day int) bool {
	return day >= FirstDay && day <= LastDay
}

// Claim is a committed record's scheduling day. A nil Day is unscheduled.
type Claim struct {
	ID  string
	Day *int
}

// Allocator tracks which record owns which day.
type Allocator struct {
	owners map[int]string
	days   map[string]int
}

// NewAllocator indexes the committed claims. If legacy data already holds
// a duplicate, the first claimant keeps the day.
func NewAllocator(claims []Claim) *Allocator {
	a := &Allocator{
		owners: make(map[int]string, len(claims)),
		days:   make(map[string]int, len(claims)),
	}
	for _, c := range claims {
		if c.Day == nil {
			continue
		}
		if _, taken := a.owners[*c.Day]; taken {
			continue
		}
		a.owners[*c.Day] = c.ID
		a.days[c.ID] = *c.Day
	}
	return a
}

// Owner returns the id of the record holding day.
func (a *Allocator) Owner(day int) (string, bool) {
	id, ok := a.owners[day]
	return id, ok
}

// DayOf returns the day committed by id.
func (a *Allocator) DayOf(id string) (int, bool) {
	day, ok := a.days[id]
	return day, ok
}

// Available reports whether id may take day: the day is free or already
// owned by id itself.
func (a *Allocator) Available(day int, id string) bool {
	owner, taken := a.owners[day]
	return !taken || owner == id
}

// Validate is the commit-time check: a set day must lie on the grid and must
// not be owned by a record other than id.
func (a *Allocator) Validate(id string, day *int) error {
	if day == nil {
		return nil
	}
	if !InRange(*day) {
		return domain.NewValidationError("day", "must be between %d and %d", FirstDay, LastDay)
	}
	if !a.Available(*day, id) {
		return domain.NewValidationError("day", "day %d is already assigned to another advice", *day)
	}
	return nil
}

// Commit validates and records id's new day. On rejection the allocator is
// unchanged.
func (a *Allocator) Commit(id string, day *int) error {
	if err := a.Validate(id, day); err != nil {
		return err
	}
	a.Release(id)
	if day != nil {
		a.owners[*day] = id
		a.days[id] = *day
	}
	return nil
}

// Release frees whatever day id holds.
func (a *Allocator) Release(id string) {
	if prev, ok := a.days[id]; ok {
		delete(a.owners, prev)
		delete(a.days, id)
	}
}

// Cell is one button of the day picker.
type Cell struct {
	Day   int    `json:"day"`
	Taken bool   `json:"taken"`           // Owned by another record
	Own   bool   `json:"own"`             // Owned by the record being edited
	Owner string `json:"owner,omitempty"` // Id of the owning record
}

// Grid renders every day of the grid for the record being edited.
// editingID may be empty when creating a record.
func (a *Allocator) Grid(editingID string) []Cell {
	cells := make([]Cell, 0, LastDay-FirstDay+1)
	for day := FirstDay; day <= LastDay; day++ {
		owner, taken := a.owners[day]
		own := taken && editingID != "" && owner == editingID
		cells = append(cells, Cell{
			Day:   day,
			Taken: taken && !own,
			Own:   own,
			Owner: owner,
		})
	}
	return cells
}
