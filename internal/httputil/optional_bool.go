package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
)

// OptionalBool tracks whether a boolean field was sent at all, which a
// plain bool cannot express:
//   - Present=false: field absent from JSON
//   - Present=true, Null=true: field is JSON null
//   - Present=true: Value holds the flag
type OptionalBool struct {
	Present bool
	Null    bool
	Value   bool
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	*o = OptionalBool{Present: true}

	if string(bytes.TrimSpace(data)) == "null" {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return errors.New("must be true or false")
	}
	return nil
}

// Set reports whether a usable value was sent.
func (o OptionalBool) Set() bool { return o.Present && !o.Null }
