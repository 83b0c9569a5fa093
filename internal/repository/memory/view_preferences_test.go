package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
)

func TestViewPreferences_KeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewViewPreferencesRepository()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Upsert(ctx, &models.ViewPreferences{OperatorID: "op", Entity: "users", PageSize: 10, CreatedAt: first}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	update := &models.ViewPreferences{OperatorID: "op", Entity: "users", PageSize: 25, CreatedAt: first.Add(time.Hour)}
	if err := repo.Upsert(ctx, update); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !update.CreatedAt.Equal(first) {
		t.Errorf("created_at overwritten: %v", update.CreatedAt)
	}

	got, _ := repo.Get(ctx, "op", "users")
	if got == nil || got.PageSize != 25 {
		t.Fatalf("get = %+v", got)
	}

	_ = repo.Upsert(ctx, &models.ViewPreferences{OperatorID: "other", Entity: "advices"})
	list, _ := repo.List(ctx, "op")
	if len(list) != 1 {
		t.Errorf("list leaked other operators: %+v", list)
	}
}
