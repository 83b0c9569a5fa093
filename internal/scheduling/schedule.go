package scheduling

import "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"

// State of one record's scheduling while it is being edited.
type State int

const (
	// Unscheduled: no day.
	Unscheduled State = iota
	// Pending: scheduling switched on but no day picked yet. Not committable.
	Pending
	// Scheduled: a day is picked.
	Scheduled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Scheduled:
		return "scheduled"
	default:
		return "unscheduled"
	}
}

// Schedule is the editing state machine for one record's day.
type Schedule struct {
	alloc *Allocator
	id    string
	state State
	day   int
}

// NewSchedule starts editing id. committed is the record's saved day, nil
// for an unscheduled or new record.
func NewSchedule(alloc *Allocator, id string, committed *int) *Schedule {
	s := &Schedule{alloc: alloc, id: id}
	if committed != nil {
		s.state = Scheduled
		s.day = *committed
	}
	return s
}

// State returns the current state.
func (s *Schedule) State() State { return s.state }

// Day returns the picked day, nil unless Scheduled.
func (s *Schedule) Day() *int {
	if s.state != Scheduled {
		return nil
	}
	day := s.day
	return &day
}

// Enable switches scheduling on. A record without a day becomes Pending.
func (s *Schedule) Enable() {
	if s.state == Unscheduled {
		s.state = Pending
	}
}

// Disable switches scheduling off and clears the day.
func (s *Schedule) Disable() {
	s.state = Unscheduled
	s.day = 0
}

// Pick selects a day. It is rejected while scheduling is off, for days off
// the grid and for days owned by another record; on rejection the state is
// unchanged. A record may always reselect its own committed day.
func (s *Schedule) Pick(day int) error {
	if s.state == Unscheduled {
		return domain.NewValidationError("day", "enable scheduling before picking a day")
	}
	if !InRange(day) {
		return domain.NewValidationError("day", "must be between %d and %d", FirstDay, LastDay)
	}
	if !s.alloc.Available(day, s.id) {
		return domain.NewValidationError("day", "day %d is already assigned to another advice", day)
	}
	s.state = Scheduled
	s.day = day
	return nil
}

// Commit returns the day to save. Pending schedules cannot be committed.
// The allocator is re-checked so that paths bypassing Pick are caught.
func (s *Schedule) Commit() (*int, error) {
	switch s.state {
	case Unscheduled:
		return nil, nil
	case Pending:
		return nil, domain.NewValidationError("day", "pick a day or disable scheduling")
	}
	day := s.Day()
	if err := s.alloc.Validate(s.id, day); err != nil {
		return nil, err
	}
	return day, nil
}
