// Package console holds the records an operator manages from the admin
// console, as the upstream Mamaty API serves them.
package console

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Identity is implemented by every record.
type Identity interface {
	RecordID() string
}

// EffectiveActive reads the legacy activity flag: records created before
// the flag existed carry none and count as active.
func EffectiveActive(flag *bool) bool {
	return flag == nil || *flag
}

// Ref is a reference to another record that the API sends either populated
// (the full object) or unpopulated (the bare id). The tag is decided once,
// when decoding; consumers only call ID or Record.
type Ref[T Identity] struct {
	id       string
	resolved *T
}

// Unresolved references a record by id only.
func Unresolved[T Identity](id string) Ref[T] {
	return Ref[T]{id: id}
}

// Resolved references a populated record.
func Resolved[T Identity](rec T) Ref[T] {
	return Ref[T]{id: rec.RecordID(), resolved: &rec}
}

// ID returns the referenced id in both forms, "" when empty.
func (r Ref[T]) ID() string { return r.id }

// Record returns the populated record, if the reference carries one.
func (r Ref[T]) Record() (T, bool) {
	if r.resolved == nil {
		var zero T
		return zero, false
	}
	return *r.resolved, true
}

// IsResolved reports whether the reference is populated.
func (r Ref[T]) IsResolved() bool { return r.resolved != nil }

// IsZero reports whether the reference is empty.
func (r Ref[T]) IsZero() bool { return r.id == "" && r.resolved == nil }

// MarshalJSON writes the object when populated, the id otherwise.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch {
	case r.resolved != nil:
		return json.Marshal(*r.resolved)
	case r.id != "":
		return json.Marshal(r.id)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a string id or an object.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Ref[T]{}

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		return json.Unmarshal(data, &r.id)
	case data[0] == '{':
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		r.id = rec.RecordID()
		r.resolved = &rec
		return nil
	default:
		return fmt.Errorf("reference must be an id or an object, got %s", data)
	}
}

// RefIDs returns the ids of a list of references.
func RefIDs[T Identity](refs []Ref[T]) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if id := r.ID(); id != "" {
			out = append(out, id)
		}
	}
	return out
}
