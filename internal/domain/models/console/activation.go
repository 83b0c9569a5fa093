package console

import "time"

// Activation is the activity flag of a schedulable record (article,
// recipe) while it is being edited.
//
// A future ScheduledAt always forces the flag off. Otherwise the flag is the
// suggestion derived from the schedule, unless the operator toggled it after
// the last schedule edit (ManualOverride).
type Activation struct {
	ScheduledAt    *time.Time `json:"scheduledAt"`
	Active         bool       `json:"isActive"`
	ManualOverride bool       `json:"manualOverride"`
}

// IsFuture reports whether at is set and after now.
func IsFuture(at *time.Time, now time.Time) bool {
	return at != nil && at.After(now)
}

// Suggested is the flag derived from the schedule alone: off while the
// schedule is in the future, on once it has passed, unchanged without one.
func (a Activation) Suggested(now time.Time) bool {
	switch {
	case a.ScheduledAt == nil:
		return a.Active
	case a.ScheduledAt.After(now):
		return false
	default:
		return true
	}
}

// WithSchedule records a schedule edit. The suggestion is recomputed and
// any earlier manual toggle is dropped.
func (a Activation) WithSchedule(at *time.Time, now time.Time) Activation {
	a.ScheduledAt = at
	a.ManualOverride = false
	a.Active = a.Suggested(now)
	return a
}

// WithActive records a manual toggle.
func (a Activation) WithActive(active bool) Activation {
	a.Active = active
	a.ManualOverride = true
	return a
}

// Resolve returns the flag to save.
func (a Activation) Resolve(now time.Time) bool {
	if IsFuture(a.ScheduledAt, now) {
		return false
	}
	if a.ManualOverride {
		return a.Active
	}
	return a.Suggested(now)
}
