// Package console declares the collaborators the console pages depend on.
package console

import (
	"context"
	"encoding/json"
)

// Resource fetches and mutates one upstream collection on behalf of an
// operator identified by token.
//
// Update and SetStatus return the server's JSON response as is: it may be a
// partial record and is merged over the local copy by the caller.
type Resource[T any] interface {
	List(ctx context.Context, token string) ([]T, error)
	Create(ctx context.Context, token string, body any) (T, error)
	Update(ctx context.Context, token, id string, body any) (json.RawMessage, error)
	Remove(ctx context.Context, token, id string) error
	SetStatus(ctx context.Context, token, id string, active bool) (json.RawMessage, error)
}

// MutationRecorder observes mutation outcomes.
type MutationRecorder interface {
	RecordMutation(entity, operation string, err error)
}
