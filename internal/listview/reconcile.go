package listview

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Identified is implemented by records with a stable id.
type Identified interface {
	RecordID() string
}

// Prepend returns a new collection with created first. Newest-first is a
// product choice; the active sort is reapplied on the next derivation.
func Prepend[T any](items []T, created T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, created)
	return append(out, items...)
}

// Find returns the record with the given id.
func Find[T Identified](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Replace returns a new collection with the record sharing updated's id
// swapped for updated. ok is false when no record matched.
func Replace[T Identified](items []T, updated T) (out []T, ok bool) {
	id := updated.RecordID()
	out = make([]T, len(items))
	for i, item := range items {
		if !ok && item.RecordID() == id {
			out[i] = updated
			ok = true
			continue
		}
		out[i] = item
	}
	return out, ok
}

// Remove returns a new collection without the record with the given id.
func Remove[T Identified](items []T, id string) (out []T, ok bool) {
	out = make([]T, 0, len(items))
	for _, item := range items {
		if item.RecordID() == id {
			ok = true
			continue
		}
		out = append(out, item)
	}
	return out, ok
}

// Merge shallow-merges a JSON object over prior: top-level fields present
// in patch replace prior's, absent fields are preserved. Servers may answer
// an update with a partial record, so nothing is wiped for being missing.
func Merge[T any](prior T, patch json.RawMessage) (T, error) {
	patch = bytes.TrimSpace(patch)
	if len(patch) == 0 || bytes.Equal(patch, []byte("null")) {
		return prior, nil
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return prior, fmt.Errorf("decode patch: %w", err)
	}

	base, err := json.Marshal(prior)
	if err != nil {
		return prior, fmt.Errorf("encode record: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return prior, fmt.Errorf("decode record: %w", err)
	}

	for k, v := range overlay {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return prior, fmt.Errorf("encode merged record: %w", err)
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return prior, fmt.Errorf("decode merged record: %w", err)
	}
	return out, nil
}

// MergeByID merges patch over the record with the given id and returns the
// new collection and the merged record. The id itself is immutable: a
// patch naming another id is rejected.
func MergeByID[T Identified](items []T, id string, patch json.RawMessage) ([]T, T, error) {
	prior, ok := Find(items, id)
	if !ok {
		var zero T
		return items, zero, fmt.Errorf("record %s not in collection", id)
	}

	merged, err := Merge(prior, patch)
	if err != nil {
		return items, prior, err
	}
	if merged.RecordID() != id {
		return items, prior, fmt.Errorf("patch changes record id %s to %s", id, merged.RecordID())
	}

	out, _ := Replace(items, merged)
	return out, merged, nil
}
