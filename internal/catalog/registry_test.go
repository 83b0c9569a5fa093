package catalog

import (
	"errors"
	"testing"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
)

func TestNewRegistry_Embedded(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	want := []string{"advices", "articles", "avatars", "babies", "categories", "doctors", "recipes", "users"}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}

	advices, err := r.Get("advices")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if advices.Tab != "6-9-months" || !advices.HasFilter("category") {
		t.Errorf("unexpected advices entry: %+v", advices)
	}

	users, _ := r.Get("users")
	if users.Tab != "all" {
		t.Errorf("users tab = %q, want all", users.Tab)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, err := r.Get("orders"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "page size too large", yaml: "entities:\n  users:\n    page_size: 500\n    sort: name\n"},
		{name: "missing sort", yaml: "entities:\n  users:\n    page_size: 10\n"},
		{name: "unknown default tab", yaml: "entities:\n  advices:\n    sort: day\n    tab: later\n    tabs: [now]\n"},
		{name: "bad yaml", yaml: "entities: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
