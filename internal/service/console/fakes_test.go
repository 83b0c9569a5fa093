package console

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/catalog"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/listview"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeResource records calls and answers from canned values.
type fakeResource[T listview.Identified] struct {
	mu sync.Mutex

	items     []T
	listCalls int

	created    T
	updateResp json.RawMessage
	statusResp json.RawMessage
	err        error

	calls    []string
	lastBody map[string]json.RawMessage
}

func (f *fakeResource[T]) capture(call string, body any) {
	f.calls = append(f.calls, call)
	f.lastBody = nil
	if fields, ok := body.(map[string]json.RawMessage); ok {
		f.lastBody = fields
	}
}

func (f *fakeResource[T]) List(_ context.Context, _ string) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeResource[T]) Create(_ context.Context, _ string, body any) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.capture("create", body)
	if f.err != nil {
		var zero T
		return zero, f.err
	}
	return f.created, nil
}

func (f *fakeResource[T]) Update(_ context.Context, _, id string, body any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.capture("update "+id, body)
	if f.err != nil {
		return nil, f.err
	}
	return f.updateResp, nil
}

func (f *fakeResource[T]) Remove(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.capture("remove "+id, nil)
	return f.err
}

func (f *fakeResource[T]) SetStatus(_ context.Context, _, id string, _ bool) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.capture("status "+id, nil)
	if f.err != nil {
		return nil, f.err
	}
	return f.statusResp, nil
}

type recordedMutation struct {
	entity, op string
	failed     bool
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recordedMutation
}

func (r *fakeRecorder) RecordMutation(entity, operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, recordedMutation{entity: entity, op: operation, failed: err != nil})
}

func testCatalog(t *testing.T) *catalog.Registry {
	t.Helper()
	cat, err := catalog.NewRegistry()
	require.NoError(t, err)
	return cat
}

func newTestPage[T listview.Identified](t *testing.T, def *Definition[T], res *fakeResource[T], rec *fakeRecorder) *Page[T] {
	t.Helper()
	entry, err := testCatalog(t).Get(def.Entity)
	require.NoError(t, err)

	cfg := PageConfig[T]{
		Definition: def,
		Entry:      entry,
		Resource:   res,
		Operator:   "op-1",
		Logger:     discardLogger(),
		Now:        func() time.Time { return testNow },
	}
	if rec != nil {
		cfg.Recorder = rec
	}
	page, err := NewPage(cfg)
	require.NoError(t, err)
	return page
}

func ptr[V any](v V) *V { return &v }
