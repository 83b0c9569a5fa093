package models

import "time"

// ViewPreferences is what an operator saved for one entity list: the page
// size and the sort applied when the list is first opened.
type ViewPreferences struct {
	OperatorID string    `json:"operator_id" db:"operator_id"`
	Entity     string    `json:"entity" db:"entity"`
	PageSize   int       `json:"page_size" db:"page_size"`
	SortKey    string    `json:"sort_key" db:"sort_key"`
	Direction  string    `json:"direction" db:"direction"`
	Tab        string    `json:"tab" db:"tab"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateViewPreferencesRequest is a partial update: nil fields keep their
// saved value.
type UpdateViewPreferencesRequest struct {
	PageSize *int    `json:"page_size"`
	Sort     *string `json:"sort"` // "key", "key:desc" or "-key"
	Tab      *string `json:"tab"`
}
