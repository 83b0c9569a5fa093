package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/services/console"
)

// Resource implements console.Resource over /api/{name}.
type Resource[T any] struct {
	client *Client
	name   string
}

var _ console.Resource[struct{}] = (*Resource[struct{}])(nil)

// NewResource binds a typed resource to the client.
func NewResource[T any](c *Client, name string) *Resource[T] {
	return &Resource[T]{client: c, name: name}
}

func (r *Resource[T]) collection() string { return "/api/" + r.name }

func (r *Resource[T]) item(id string) string {
	return r.collection() + "/" + url.PathEscape(id)
}

// List fetches the whole collection. The upstream sends either a bare
// array, a {"data": [...]} envelope or an object keyed by the resource name.
func (r *Resource[T]) List(ctx context.Context, token string) ([]T, error) {
	body, err := r.client.do(ctx, http.MethodGet, r.collection(), token, nil)
	if err != nil {
		return nil, err
	}

	body = unwrap(body)
	if len(bytes.TrimSpace(body)) > 0 && bytes.TrimSpace(body)[0] == '{' {
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(body, &keyed); err != nil {
			return nil, fmt.Errorf("failed to parse %s list: %w", r.name, err)
		}
		inner, ok := keyed[r.name]
		if !ok {
			return nil, fmt.Errorf("failed to parse %s list: no %q field", r.name, r.name)
		}
		body = inner
	}

	items := []T{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s list: %w", r.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create posts a new record and decodes the one the server returns.
func (r *Resource[T]) Create(ctx context.Context, token string, body any) (T, error) {
	var created T
	raw, err := r.client.do(ctx, http.MethodPost, r.collection(), token, body)
	if err != nil {
		return created, err
	}
	if err := json.Unmarshal(unwrap(raw), &created); err != nil {
		return created, fmt.Errorf("failed to parse created %s: %w", r.name, err)
	}
	return created, nil
}

// Update sends a PUT and returns the (possibly partial) server response.
func (r *Resource[T]) Update(ctx context.Context, token, id string, body any) (json.RawMessage, error) {
	raw, err := r.client.do(ctx, http.MethodPut, r.item(id), token, body)
	if err != nil {
		return nil, err
	}
	return unwrap(raw), nil
}

// Remove deletes a record.
func (r *Resource[T]) Remove(ctx context.Context, token, id string) error {
	_, err := r.client.do(ctx, http.MethodDelete, r.item(id), token, nil)
	return err
}

// SetStatus toggles the activity flag. The returned JSON always carries
// isActive, even when the server answers with an empty or message-only body.
func (r *Resource[T]) SetStatus(ctx context.Context, token, id string, active bool) (json.RawMessage, error) {
	payload := map[string]bool{"isActive": active}
	raw, err := r.client.do(ctx, http.MethodPatch, r.item(id)+"/status", token, payload)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if trimmed := bytes.TrimSpace(unwrap(raw)); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, fmt.Errorf("failed to parse %s status: %w", r.name, err)
		}
	}
	delete(fields, "message")
	if _, ok := fields["isActive"]; !ok {
		fields["isActive"] = json.RawMessage(fmt.Sprint(active))
	}
	return json.Marshal(fields)
}
