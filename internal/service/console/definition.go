// Package console runs the list query engine over the collections an
// operator works on and keeps them in step with the upstream API.
package console

import (
	"encoding/json"
	"errors"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/listview"
)

// Operation names a mutation, as recorded in logs and metrics.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpStatus Operation = "status"
)

// Mutation is a create or update about to be forwarded upstream.
// Admission hooks may rewrite Fields; what remains is the request body.
type Mutation[T any] struct {
	Op     Operation
	ID     string // "" on create
	Prior  *T     // nil on create
	Items  []T    // the collection as it stands
	Fields map[string]json.RawMessage
	Now    time.Time
}

// Has reports whether the body carries the field, null included.
func (m *Mutation[T]) Has(field string) bool {
	_, ok := m.Fields[field]
	return ok
}

// Decode reads the body into dst.
func (m *Mutation[T]) Decode(dst any) error {
	data, err := json.Marshal(m.Fields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return domain.NewValidationError("", "invalid body: %v", err)
	}
	return nil
}

// Set writes a field into the body.
func (m *Mutation[T]) Set(field string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.Fields[field] = data
	return nil
}

// Definition is everything that makes one entity page different from
// another: its query configuration and its write rules.
type Definition[T listview.Identified] struct {
	Entity string
	View   listview.View[T]

	// Filters lists the names accepted as filter.<name> query parameters.
	Filters []string

	// Admit validates and normalizes a create or update body.
	Admit func(m *Mutation[T]) error

	// AdmitStatus validates a status toggle; nil accepts every toggle.
	AdmitStatus func(prior T, active bool, now time.Time) error
}

func (d *Definition[T]) acceptsFilter(name string) bool {
	return slices.Contains(d.Filters, name)
}

// fieldError converts ozzo-validation errors into a *domain.ValidationError
// naming the first failing field in lexical order.
func fieldError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		keys := make([]string, 0, len(errs))
		for k := range errs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if errs[k] != nil {
				return domain.NewValidationError(k, "%s", errs[k].Error())
			}
		}
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	return domain.NewValidationError("", "%s", err.Error())
}
