package console

import (
	"context"

	records "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models/console"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/scheduling"
)

// AdviceSlots returns the day picker grid for the advice being edited
// ("" for a new one): each day in the window with its owner, if any.
func AdviceSlots(ctx context.Context, page *Page[records.Advice], token, editing string) ([]scheduling.Cell, error) {
	items, err := page.Snapshot(ctx, token)
	if err != nil {
		return nil, err
	}
	return scheduling.NewAllocator(adviceClaims(items)).Grid(editing), nil
}
