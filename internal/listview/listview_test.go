package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// item is a minimal record used across the package tests.
type item struct {
	ID       string   `json:"_id"`
	Title    string   `json:"title"`
	City     string   `json:"city,omitempty"`
	Source   string   `json:"source,omitempty"`
	Active   *bool    `json:"isActive,omitempty"`
	Rank     *int     `json:"rank,omitempty"`
	Likes    []string `json:"likes,omitempty"`
	Allergy  string   `json:"allergy,omitempty"`
	Disease  string   `json:"disease,omitempty"`
	Category string   `json:"category,omitempty"`
}

func (i item) RecordID() string { return i.ID }

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func active(i item) bool { return i.Active == nil || *i.Active }

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func testView() *View[item] {
	return &View[item]{
		Search: Search(func(i item) string { return i.Title }),
		Filters: []Predicate[item]{
			Equals("city", func(i item) string { return i.City }),
			Bool("status", active),
			NormalizedEquals("source", func(i item) string { return i.Source }, TrimUpper),
		},
		Sorts: SortTable[item]{
			"title": StringKey(func(i item) string { return i.Title }),
			"rank": IntKey(func(i item) (int, bool) {
				if i.Rank == nil {
					return 0, false
				}
				return *i.Rank, true
			}),
			"likes":  CountKey(func(i item) int { return len(i.Likes) }),
			"active": BoolKey(active),
		},
		Options: map[string]OptionSource[item]{
			"city":   {Values: Single(func(i item) string { return i.City }), Normalize: Trim},
			"source": {Values: Single(func(i item) string { return i.Source }), Normalize: TrimUpper},
		},
		PageSize: 10,
	}
}

func sampleItems() []item {
	return []item{
		{ID: "1", Title: "Bonjour", City: "Tunis", Source: "who", Rank: intPtr(3), Likes: []string{"a"}},
		{ID: "2", Title: "Avion", City: "Sfax", Source: "WHO ", Active: boolPtr(false)},
		{ID: "3", Title: "bobine", City: "Tunis", Source: "unicef", Rank: intPtr(1), Likes: []string{"a", "b"}, Active: boolPtr(true)},
		{ID: "4", Title: "Zèbre", City: " Sousse ", Rank: intPtr(2)},
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	v := testView()
	q := NewQueryState("", Ascending, "").WithSearch("bo")

	got := v.Filter(sampleItems(), q)

	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestSearch_EmptyTermMatchesAll(t *testing.T) {
	v := testView()
	got := v.Filter(sampleItems(), NewQueryState("", Ascending, ""))
	assert.Len(t, got, 4)
}

func TestSearch_ConcatenatedFields(t *testing.T) {
	type user struct{ Name, Lastname, Email string }
	p := Search(
		func(u user) string { return u.Name },
		func(u user) string { return u.Lastname },
		func(u user) string { return u.Email },
	)
	u := user{Name: "Jean", Lastname: "Dupont", Email: "jd@example.com"}

	assert.True(t, p(u, QueryState{Search: "jean dup"}))
	assert.True(t, p(u, QueryState{Search: "EXAMPLE"}))
	assert.False(t, p(u, QueryState{Search: "marie"}))
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{name: "all sentinel", filters: map[string]string{"city": "all"}, want: []string{"1", "2", "3", "4"}},
		{name: "equality", filters: map[string]string{"city": "Tunis"}, want: []string{"1", "3"}},
		{name: "equality trims record value", filters: map[string]string{"city": "Sousse"}, want: []string{"4"}},
		{name: "undefined active counts as active", filters: map[string]string{"status": "true"}, want: []string{"1", "3", "4"}},
		{name: "inactive", filters: map[string]string{"status": "false"}, want: []string{"2"}},
		{name: "unknown boolean value fails open", filters: map[string]string{"status": "maybe"}, want: []string{"1", "2", "3", "4"}},
		{name: "normalized source", filters: map[string]string{"source": "who"}, want: []string{"1", "2"}},
		{name: "combined", filters: map[string]string{"city": "Tunis", "source": "UNICEF"}, want: []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueryState("", Ascending, "")
			for k, val := range tt.filters {
				q = q.WithFilter(k, val)
			}
			assert.Equal(t, tt.want, ids(testView().Filter(sampleItems(), q)))
		})
	}
}

func TestAnyEqualFold(t *testing.T) {
	p := AnyEqualFold("health",
		func(i item) string { return i.Allergy },
		func(i item) string { return i.Disease },
	)
	baby := item{Allergy: "Lactose", Disease: "Asthme"}

	assert.True(t, p(baby, QueryState{Filters: map[string]string{"health": "lactose"}}))
	assert.True(t, p(baby, QueryState{Filters: map[string]string{"health": "ASTHME"}}))
	assert.False(t, p(baby, QueryState{Filters: map[string]string{"health": "gluten"}}))
	assert.True(t, p(baby, QueryState{}))
}

func TestFilterNarrowsMonotonically(t *testing.T) {
	v := testView()
	items := sampleItems()
	base := NewQueryState("", Ascending, "")
	baseTotal := v.Derive(items, base).TotalCount
	require.Equal(t, len(items), baseTotal)

	for _, sel := range []struct{ name, value string }{
		{"city", "Tunis"}, {"city", "Sfax"}, {"status", "false"}, {"source", "WHO"},
	} {
		narrowed := v.Derive(items, base.WithFilter(sel.name, sel.value))
		assert.LessOrEqual(t, narrowed.TotalCount, baseTotal, "%s=%s", sel.name, sel.value)
		assert.LessOrEqual(t, len(narrowed.Rows), len(items))
	}
}

func TestDerive_Idempotent(t *testing.T) {
	v := testView()
	items := sampleItems()
	q := NewQueryState("title", Descending, "").WithSearch("o")

	first := v.Derive(items, q)
	second := v.Derive(items, q)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(items), "input must not be reordered")
}

func TestPaginate(t *testing.T) {
	items := make([]item, 25)
	for i := range items {
		items[i] = item{ID: fmt.Sprint(i + 1), Title: fmt.Sprintf("t%02d", i)}
	}

	tests := []struct {
		name      string
		page      int
		wantRows  int
		wantPage  int
		wantFirst string
	}{
		{name: "first page", page: 1, wantRows: 10, wantPage: 1, wantFirst: "1"},
		{name: "last partial page", page: 3, wantRows: 5, wantPage: 3, wantFirst: "21"},
		{name: "beyond range clamps to last", page: 7, wantRows: 5, wantPage: 3, wantFirst: "21"},
		{name: "zero clamps to first", page: 0, wantRows: 10, wantPage: 1, wantFirst: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, 10)
			assert.Len(t, got.Rows, tt.wantRows)
			assert.Equal(t, 25, got.TotalCount)
			assert.Equal(t, 3, got.PageCount)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantFirst, got.Rows[0].ID)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	got := Paginate([]item{}, 2, 10)

	assert.Empty(t, got.Rows)
	assert.NotNil(t, got.Rows)
	assert.Equal(t, 0, got.TotalCount)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 0, got.PageCount)
}

func TestQueryState_ResetsPage(t *testing.T) {
	q := NewQueryState("title", Ascending, "6-9").WithPage(4)
	require.Equal(t, 4, q.Page)

	assert.Equal(t, 1, q.WithSearch("lait").Page)
	assert.Equal(t, 1, q.WithFilter("city", "Tunis").Page)
	assert.Equal(t, 1, q.WithTab("rest").Page)
	assert.Equal(t, 4, q.WithSort("title", Descending).Page, "sort keeps page")
	assert.Equal(t, 4, q.WithSearch("").Page, "unchanged search keeps page")
	assert.Equal(t, 4, q.WithFilter("city", "all").Page, "unchanged filter keeps page")
}

func TestQueryState_WithFilterDoesNotAlias(t *testing.T) {
	q := NewQueryState("", Ascending, "").WithFilter("city", "Tunis")
	q2 := q.WithFilter("city", "Sfax")

	assert.Equal(t, "Tunis", q.Filter("city"))
	assert.Equal(t, "Sfax", q2.Filter("city"))
	assert.Equal(t, AllValue, q2.WithFilter("city", "").Filter("city"))
}

func TestQueryState_SameSelection(t *testing.T) {
	a := NewQueryState("title", Ascending, "").WithFilter("city", "Tunis")
	b := a.WithSort("likes", Descending).WithPage(3)

	assert.True(t, a.SameSelection(b))
	assert.False(t, a.SameSelection(a.WithSearch("x")))
	assert.False(t, a.SameSelection(a.WithFilter("city", "all")))
}
