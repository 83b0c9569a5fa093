package console

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	records "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models/console"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/scheduling"
)

func validationField(t *testing.T, err error) string {
	t.Helper()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "expected a validation error, got %v", err)
	return vErr.Field
}

func sampleAdvices() []records.Advice {
	return []records.Advice{
		{ID: "a1", Title: "Sommeil", Day: ptr(200), Category: records.Unresolved[records.Category]("c1")},
		{ID: "a2", Title: "Repas", MinDay: ptr(100), MaxDay: ptr(150), Category: records.Unresolved[records.Category]("c2")},
		{ID: "a3", Title: "Bain", Day: ptr(190), Category: records.Unresolved[records.Category]("c1")},
	}
}

func TestAdvice_DaySlotIsExclusive(t *testing.T) {
	res := &fakeResource[records.Advice]{
		items:      sampleAdvices(),
		created:    records.Advice{ID: "a4", Title: "Dents", Day: ptr(201)},
		updateResp: json.RawMessage(`{"day":200}`),
	}
	page := newTestPage(t, Advices(), res, nil)
	ctx := context.Background()

	_, err := page.Create(ctx, "tok", json.RawMessage(`{"title":"Dents","category":"c1","day":200}`))
	assert.Equal(t, "day", validationField(t, err))
	assert.Empty(t, res.calls)

	_, err = page.Create(ctx, "tok", json.RawMessage(`{"title":"Dents","category":"c1","day":400}`))
	assert.Equal(t, "day", validationField(t, err))

	_, err = page.Create(ctx, "tok", json.RawMessage(`{"title":"Dents","category":"c1","day":201}`))
	require.NoError(t, err)

	// Keeping its own day is fine
	_, err = page.Update(ctx, "tok", "a1", json.RawMessage(`{"day":200}`))
	require.NoError(t, err)

	_, err = page.Update(ctx, "tok", "a3", json.RawMessage(`{"day":201}`))
	assert.Equal(t, "day", validationField(t, err))
}

func TestAdvice_SchedulingSwitch(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		body      string
		wantField string // rejected before any upstream call
		wantDay   string // forwarded "day"
	}{
		{name: "switched on without a day", id: "a2", body: `{"scheduling":true}`, wantField: "day"},
		{name: "switched on with a free day", id: "a2", body: `{"scheduling":true,"day":210}`, wantDay: "210"},
		{name: "switched off releases the day", id: "a1", body: `{"scheduling":false}`, wantDay: "null"},
		{name: "null day releases the day", id: "a1", body: `{"day":null}`, wantDay: "null"},
		{name: "switched on keeps the saved day", id: "a1", body: `{"scheduling":true}`, wantDay: "200"},
		{name: "day owned by another advice", id: "a1", body: `{"day":190}`, wantField: "day"},
		{name: "day off the grid", id: "a1", body: `{"day":179}`, wantField: "day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &fakeResource[records.Advice]{items: sampleAdvices(), updateResp: json.RawMessage(`{}`)}
			page := newTestPage(t, Advices(), res, nil)

			_, err := page.Update(context.Background(), "tok", tt.id, json.RawMessage(tt.body))
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, validationField(t, err))
				assert.Empty(t, res.calls)
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, res.lastBody, "scheduling")
			assert.JSONEq(t, tt.wantDay, string(res.lastBody["day"]))
		})
	}
}

func TestAdvice_DuplicateDayLeavesCollection(t *testing.T) {
	res := &fakeResource[records.Advice]{items: sampleAdvices()}
	page := newTestPage(t, Advices(), res, nil)
	ctx := context.Background()

	_, err := page.Update(ctx, "tok", "a3", json.RawMessage(`{"day":200}`))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "day", vErr.Field)
	assert.Empty(t, res.calls)

	listing, err := page.Query(ctx, "tok", QueryRequest{Tab: ptr("6-9-months")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a3", "a1"}, rowIDs[records.Advice](t, listing.Rows))
}

func TestAdvice_RangeOrder(t *testing.T) {
	page := newTestPage(t, Advices(), &fakeResource[records.Advice]{items: sampleAdvices()}, nil)

	_, err := page.Update(context.Background(), "tok", "a2", json.RawMessage(`{"minDay":160}`))
	assert.Equal(t, "maxDay", validationField(t, err))
}

func TestAdvice_Tabs(t *testing.T) {
	page := newTestPage(t, Advices(), &fakeResource[records.Advice]{items: sampleAdvices()}, nil)
	ctx := context.Background()

	listing, err := page.Query(ctx, "tok", QueryRequest{})
	require.NoError(t, err)
	assert.Equal(t, TabSixToNineMonths, listing.Query.Tab)
	assert.Equal(t, []string{"a3", "a1"}, rowIDs[records.Advice](t, listing.Rows))
	assert.Equal(t, map[string]int{TabSixToNineMonths: 2, TabRest: 1}, listing.Tabs)

	listing, err = page.Query(ctx, "tok", QueryRequest{Tab: ptr(TabRest)})
	require.NoError(t, err)
	assert.Equal(t, []string{"a2"}, rowIDs[records.Advice](t, listing.Rows))

	listing, err = page.Query(ctx, "tok", QueryRequest{Filters: map[string]string{"category": "c1"}, Tab: ptr("all")})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.TotalCount)
	assert.Equal(t, []string{"c1", "c2"}, listing.Options["category"])
}

func TestAdviceSlots(t *testing.T) {
	page := newTestPage(t, Advices(), &fakeResource[records.Advice]{items: sampleAdvices()}, nil)

	cells, err := AdviceSlots(context.Background(), page, "tok", "a1")
	require.NoError(t, err)
	require.Len(t, cells, scheduling.LastDay-scheduling.FirstDay+1)

	byDay := map[int]scheduling.Cell{}
	for _, c := range cells {
		byDay[c.Day] = c
	}
	assert.True(t, byDay[200].Own)
	assert.False(t, byDay[200].Taken)
	assert.True(t, byDay[190].Taken)
	assert.Equal(t, "a3", byDay[190].Owner)
	assert.False(t, byDay[191].Taken)
}

func TestArticle_Activation(t *testing.T) {
	future := testNow.Add(48 * time.Hour).Format(time.RFC3339)
	past := testNow.Add(-48 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name  string
		body  string
		prior records.Article
		want  *bool // nil: isActive not forwarded
	}{
		{
			name: "future schedule forces inactive",
			body: `{"title":"T","category":"c1","isActive":true,"scheduledAt":"` + future + `"}`,
			want: ptr(false),
		},
		{
			name:  "past schedule suggests active",
			body:  `{"scheduledAt":"` + past + `"}`,
			prior: records.Article{IsActive: ptr(false)},
			want:  ptr(true),
		},
		{
			name: "toggle after schedule edit wins",
			body: `{"scheduledAt":"` + past + `","isActive":false,"manualOverride":true}`,
			want: ptr(false),
		},
		{
			name: "toggle without override follows the schedule",
			body: `{"scheduledAt":"` + past + `","isActive":false}`,
			want: ptr(true),
		},
		{
			name:  "plain toggle",
			body:  `{"isActive":false}`,
			prior: records.Article{IsActive: ptr(true)},
			want:  ptr(false),
		},
		{
			name:  "untouched flag",
			body:  `{"title":"Nouveau"}`,
			prior: records.Article{IsActive: ptr(true)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prior := tt.prior
			prior.ID, prior.Title = "art", "Ancien"
			prior.Category = records.Unresolved[records.Category]("c1")
			res := &fakeResource[records.Article]{
				items:      []records.Article{prior},
				created:    records.Article{ID: "new"},
				updateResp: json.RawMessage(`{}`),
			}
			page := newTestPage(t, Articles(), res, nil)
			ctx := context.Background()

			var err error
			if tt.name == "future schedule forces inactive" {
				_, err = page.Create(ctx, "tok", json.RawMessage(tt.body))
			} else {
				_, err = page.Update(ctx, "tok", "art", json.RawMessage(tt.body))
			}
			require.NoError(t, err)
			assert.NotContains(t, res.lastBody, "manualOverride")

			raw, ok := res.lastBody["isActive"]
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			var got bool
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, *tt.want, got)
		})
	}
}

func TestArticle_StatusRefusedWhileScheduled(t *testing.T) {
	future := testNow.Add(time.Hour)
	res := &fakeResource[records.Article]{
		items: []records.Article{{ID: "art", Title: "T", ScheduledAt: &future, IsActive: ptr(false)}},
	}
	page := newTestPage(t, Articles(), res, nil)
	ctx := context.Background()

	_, err := page.SetStatus(ctx, "tok", "art", true)
	assert.Equal(t, "isActive", validationField(t, err))
	assert.Empty(t, res.calls)

	res.statusResp = json.RawMessage(`{"isActive":false}`)
	_, err = page.SetStatus(ctx, "tok", "art", false)
	require.NoError(t, err)
}

func TestRecipe_Admission(t *testing.T) {
	res := &fakeResource[records.Recipe]{
		items: []records.Recipe{{ID: "r1", Title: "Purée", MinAge: ptr(6), MaxAge: ptr(12)}},
	}
	page := newTestPage(t, Recipes(), res, nil)
	ctx := context.Background()

	_, err := page.Update(ctx, "tok", "r1", json.RawMessage(`{"maxAge":4}`))
	assert.Equal(t, "maxAge", validationField(t, err))

	_, err = page.Update(ctx, "tok", "r1", json.RawMessage(`{"ingredients":[{"name":""}]}`))
	assert.Equal(t, "ingredients", validationField(t, err))

	_, err = page.Update(ctx, "tok", "r1", json.RawMessage(`{"title":""}`))
	assert.Equal(t, "title", validationField(t, err))
	assert.Empty(t, res.calls)
}

func TestPeople_Admission(t *testing.T) {
	ctx := context.Background()

	users := newTestPage(t, Users(), &fakeResource[records.User]{}, nil)
	_, err := users.Create(ctx, "tok", json.RawMessage(`{"name":"Amal","lastname":"Ben Ali","email":"not-an-email"}`))
	assert.Equal(t, "email", validationField(t, err))
	_, err = users.Create(ctx, "tok", json.RawMessage(`{"name":"Amal","lastname":"Ben Ali"}`))
	assert.Equal(t, "email", validationField(t, err), "users need an email")

	doctors := newTestPage(t, Doctors(), &fakeResource[records.Doctor]{created: records.Doctor{ID: "d1"}}, nil)
	_, err = doctors.Create(ctx, "tok", json.RawMessage(`{"name":"Sami","lastname":"Trabelsi","rating":7}`))
	assert.Equal(t, "rating", validationField(t, err))
	_, err = doctors.Create(ctx, "tok", json.RawMessage(`{"name":"Sami","lastname":"Trabelsi","rating":4.5}`))
	require.NoError(t, err, "doctors do not need an email")
	_, err = doctors.Update(ctx, "tok", "d1", json.RawMessage(`{"email":""}`))
	assert.Equal(t, "email", validationField(t, err))

	babies := newTestPage(t, Babies(), &fakeResource[records.Baby]{}, nil)
	tomorrow := testNow.Add(24 * time.Hour).Format(time.RFC3339)
	_, err = babies.Create(ctx, "tok", json.RawMessage(`{"name":"Lina","parent":"u1","birthday":"`+tomorrow+`"}`))
	assert.Equal(t, "birthday", validationField(t, err))

	_, err = babies.Create(ctx, "tok", json.RawMessage(`{"name":"Lina","parent":"u1","birthday":"bientôt"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestBabies_Filters(t *testing.T) {
	parent := records.User{ID: "u1", Name: "Amal", Lastname: "Ben Ali"}
	res := &fakeResource[records.Baby]{items: []records.Baby{
		{ID: "b1", Name: "Lina", Gender: "female", Allergy: "Lait", Parent: records.Resolved(parent)},
		{ID: "b2", Name: "Adam", Gender: "male", Disease: "lait ", Parent: records.Unresolved[records.User]("u2")},
		{ID: "b3", Name: "Yasmine", Gender: "female", Parent: records.Unresolved[records.User]("u1")},
	}}
	page := newTestPage(t, Babies(), res, nil)
	ctx := context.Background()

	listing, err := page.Query(ctx, "tok", QueryRequest{Filters: map[string]string{"health": "LAIT"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b2", "b1"}, rowIDs[records.Baby](t, listing.Rows))

	listing, err = page.Query(ctx, "tok", QueryRequest{Filters: map[string]string{"health": "", "parent": "u1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b3"}, rowIDs[records.Baby](t, listing.Rows))

	listing, err = page.Query(ctx, "tok", QueryRequest{Search: ptr("ben ali"), Filters: map[string]string{"parent": ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, rowIDs[records.Baby](t, listing.Rows))
}
