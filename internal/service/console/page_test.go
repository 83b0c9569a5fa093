package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	records "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models/console"
)

func categories(n int) []records.Category {
	out := make([]records.Category, n)
	for i := range out {
		out[i] = records.Category{ID: fmt.Sprintf("c%02d", i+1), Title: fmt.Sprintf("Catégorie %02d", i+1)}
	}
	return out
}

func rowIDs[T interface{ RecordID() string }](t *testing.T, rows any) []string {
	t.Helper()
	typed, ok := rows.([]T)
	require.True(t, ok, "rows have type %T", rows)
	ids := make([]string, len(typed))
	for i, r := range typed {
		ids[i] = r.RecordID()
	}
	return ids
}

func TestPage_QueryPaginates(t *testing.T) {
	res := &fakeResource[records.Category]{items: categories(25)}
	page := newTestPage(t, Categories(), res, nil)
	ctx := context.Background()

	listing, err := page.Query(ctx, "tok", QueryRequest{Page: ptr(3)})
	require.NoError(t, err)

	assert.Equal(t, 25, listing.TotalCount)
	assert.Equal(t, 3, listing.Page)
	assert.Equal(t, 3, listing.PageCount)
	assert.Equal(t, []string{"c21", "c22", "c23", "c24", "c25"}, rowIDs[records.Category](t, listing.Rows))

	// Loaded once, reused afterwards
	_, err = page.Query(ctx, "tok", QueryRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.listCalls)

	_, err = page.Query(ctx, "tok", QueryRequest{Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.listCalls)
}

func TestPage_SelectionChangeResetsPage(t *testing.T) {
	page := newTestPage(t, Categories(), &fakeResource[records.Category]{items: categories(25)}, nil)
	ctx := context.Background()

	_, err := page.Query(ctx, "tok", QueryRequest{Page: ptr(2)})
	require.NoError(t, err)

	listing, err := page.Query(ctx, "tok", QueryRequest{Search: ptr("catégorie 1"), Page: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Page, "page is not honored in the request that changes the search")
	assert.Equal(t, 10, listing.TotalCount)

	listing, err = page.Query(ctx, "tok", QueryRequest{Sort: ptr("title:desc")})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, "c19", rowIDs[records.Category](t, listing.Rows)[0])
}

func TestPage_RejectedQueryKeepsState(t *testing.T) {
	page := newTestPage(t, Categories(), &fakeResource[records.Category]{items: categories(25)}, nil)
	ctx := context.Background()

	_, err := page.Query(ctx, "tok", QueryRequest{Page: ptr(2)})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  QueryRequest
	}{
		{name: "unknown sort key", req: QueryRequest{Sort: ptr("likes")}},
		{name: "unknown filter", req: QueryRequest{Filters: map[string]string{"city": "Sfax"}}},
		{name: "tab on a page without tabs", req: QueryRequest{Tab: ptr("rest")}},
		{name: "page size too small", req: QueryRequest{PageSize: ptr(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := page.Query(ctx, "tok", tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			listing, err := page.Query(ctx, "tok", QueryRequest{})
			require.NoError(t, err)
			assert.Equal(t, 2, listing.Page)
		})
	}
}

func TestPage_ResetRestoresDefaults(t *testing.T) {
	page := newTestPage(t, Categories(), &fakeResource[records.Category]{items: categories(25)}, nil)
	ctx := context.Background()

	_, err := page.Query(ctx, "tok", QueryRequest{Search: ptr("02"), Sort: ptr("-title")})
	require.NoError(t, err)

	listing, err := page.Query(ctx, "tok", QueryRequest{Reset: true})
	require.NoError(t, err)
	assert.Equal(t, "", listing.Query.Search)
	assert.Equal(t, 25, listing.TotalCount)
	assert.Equal(t, "c01", rowIDs[records.Category](t, listing.Rows)[0])
}

func TestPage_CreatePrepends(t *testing.T) {
	rec := &fakeRecorder{}
	res := &fakeResource[records.Category]{
		items:   categories(2),
		created: records.Category{ID: "new", Title: "Zzz"},
	}
	page := newTestPage(t, Categories(), res, rec)
	ctx := context.Background()

	created, err := page.Create(ctx, "tok", json.RawMessage(`{"title":"Zzz","_id":"forged"}`))
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.NotContains(t, res.lastBody, "_id")

	items, err := page.Snapshot(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "new", items[0].ID)
	assert.Len(t, items, 3)
	assert.Equal(t, []recordedMutation{{entity: "categories", op: "create"}}, rec.seen)
}

func TestPage_CreateValidation(t *testing.T) {
	res := &fakeResource[records.Category]{items: categories(1)}
	page := newTestPage(t, Categories(), res, nil)

	_, err := page.Create(context.Background(), "tok", json.RawMessage(`{"description":"sans titre"}`))

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr), "got %v", err)
	assert.Equal(t, "title", validationErr.Field)
	assert.Empty(t, res.calls, "nothing forwarded")
}

func TestPage_UpdateMergesPartialResponse(t *testing.T) {
	res := &fakeResource[records.Article]{
		items: []records.Article{{
			ID: "a1", Title: "Old", Source: "X",
			Category: records.Unresolved[records.Category]("c1"),
		}},
		updateResp: json.RawMessage(`{"title":"New"}`),
	}
	page := newTestPage(t, Articles(), res, nil)
	ctx := context.Background()

	updated, err := page.Update(ctx, "tok", "a1", json.RawMessage(`{"title":"New"}`))
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "X", updated.Source)
	assert.Equal(t, "c1", updated.Category.ID())

	items, _ := page.Snapshot(ctx, "tok")
	assert.Equal(t, updated, items[0])
}

func TestPage_UnmergeableResponseReloads(t *testing.T) {
	res := &fakeResource[records.Category]{
		items:      categories(2),
		updateResp: json.RawMessage(`{"_id":"c99","title":"Autre"}`),
	}
	page := newTestPage(t, Categories(), res, nil)
	ctx := context.Background()
	_, err := page.Snapshot(ctx, "tok")
	require.NoError(t, err)

	res.items[0].Title = "Autre"

	updated, err := page.Update(ctx, "tok", "c01", json.RawMessage(`{"title":"Autre"}`))
	require.NoError(t, err)
	assert.Equal(t, "Autre", updated.Title)
	assert.Equal(t, 2, res.listCalls)

	items, _ := page.Snapshot(ctx, "tok")
	assert.Equal(t, "Autre", items[0].Title)
	assert.Len(t, items, 2)
}

func TestPage_UnmergeableResponseGoneUpstream(t *testing.T) {
	res := &fakeResource[records.Category]{
		items:      categories(2),
		statusResp: json.RawMessage(`[]`),
	}
	page := newTestPage(t, Categories(), res, nil)
	ctx := context.Background()
	_, err := page.Snapshot(ctx, "tok")
	require.NoError(t, err)

	res.items = res.items[1:]

	_, err = page.SetStatus(ctx, "tok", "c01", false)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	items, _ := page.Snapshot(ctx, "tok")
	require.Len(t, items, 1)
	assert.Equal(t, "c02", items[0].ID)
}

func TestPage_FailureLeavesCollection(t *testing.T) {
	rec := &fakeRecorder{}
	res := &fakeResource[records.Category]{items: categories(3)}
	page := newTestPage(t, Categories(), res, rec)
	ctx := context.Background()
	before, err := page.Snapshot(ctx, "tok")
	require.NoError(t, err)

	res.err = &domain.ServerError{Status: 500, Message: "db down"}

	_, err = page.Update(ctx, "tok", "c01", json.RawMessage(`{"title":"Autre"}`))
	require.Error(t, err)
	err = page.Delete(ctx, "tok", "c02")
	require.Error(t, err)
	_, err = page.SetStatus(ctx, "tok", "c03", false)
	require.Error(t, err)

	after, _ := page.Snapshot(ctx, "tok")
	assert.Equal(t, before, after)
	require.Len(t, rec.seen, 3)
	for _, m := range rec.seen {
		assert.True(t, m.failed)
	}
}

func TestPage_UnknownRecord(t *testing.T) {
	res := &fakeResource[records.Category]{items: categories(1)}
	page := newTestPage(t, Categories(), res, nil)

	err := page.Delete(context.Background(), "tok", "ghost")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, res.calls)
}

func TestPage_DeleteClampsPage(t *testing.T) {
	page := newTestPage(t, Categories(), &fakeResource[records.Category]{items: categories(11)}, nil)
	ctx := context.Background()

	listing, err := page.Query(ctx, "tok", QueryRequest{Page: ptr(2)})
	require.NoError(t, err)
	require.Equal(t, 2, listing.Page)

	require.NoError(t, page.Delete(ctx, "tok", "c11"))

	listing, err = page.Query(ctx, "tok", QueryRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, 10, listing.TotalCount)
}

func TestPage_SetStatusMerges(t *testing.T) {
	res := &fakeResource[records.Category]{
		items:      categories(1),
		statusResp: json.RawMessage(`{"isActive":false}`),
	}
	page := newTestPage(t, Categories(), res, nil)

	updated, err := page.SetStatus(context.Background(), "tok", "c01", false)
	require.NoError(t, err)
	assert.False(t, updated.Active())
	assert.Equal(t, "Catégorie 01", updated.Title)
}

func TestPage_LoadFailure(t *testing.T) {
	res := &fakeResource[records.Category]{err: &domain.SessionExpiredError{Message: "expired"}}
	page := newTestPage(t, Categories(), res, nil)

	_, err := page.Query(context.Background(), "tok", QueryRequest{})
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))
}
