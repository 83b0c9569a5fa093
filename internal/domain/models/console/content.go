package console

import "time"

// Category groups advices, articles and recipes.
type Category struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

func (c Category) RecordID() string { return c.ID }

// Active applies the legacy default to the activity flag.
func (c Category) Active() bool { return EffectiveActive(c.IsActive) }

// Advice is a short tip shown to parents at a given baby age. It is either
// pinned to a single day (Day) or spans an age range (MinDay..MaxDay).
type Advice struct {
	ID        string        `json:"_id"`
	Title     string        `json:"title"`
	Content   string        `json:"content,omitempty"`
	Category  Ref[Category] `json:"category"`
	Day       *int          `json:"day,omitempty"`
	MinDay    *int          `json:"minDay,omitempty"`
	MaxDay    *int          `json:"maxDay,omitempty"`
	IsActive  *bool         `json:"isActive,omitempty"`
	Viewers   []string      `json:"viewers,omitempty"`
	Likes     []string      `json:"likes,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (a Advice) RecordID() string { return a.ID }

// Active applies the legacy default to the activity flag.
func (a Advice) Active() bool { return EffectiveActive(a.IsActive) }

// StartDay is the day the advice becomes relevant: MinDay, else Day.
func (a Advice) StartDay() (int, bool) {
	switch {
	case a.MinDay != nil:
		return *a.MinDay, true
	case a.Day != nil:
		return *a.Day, true
	default:
		return 0, false
	}
}

// Within reports whether the advice's single day lies in [lo, hi], or its
// whole [MinDay, MaxDay] range does.
func (a Advice) Within(lo, hi int) bool {
	if a.Day != nil {
		return *a.Day >= lo && *a.Day <= hi
	}
	if a.MinDay != nil && a.MaxDay != nil {
		return *a.MinDay >= lo && *a.MaxDay <= hi && *a.MinDay <= *a.MaxDay
	}
	return false
}

// Article is an editorial piece, optionally scheduled for later activation.
type Article struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Content     string        `json:"content,omitempty"`
	Category    Ref[Category] `json:"category"`
	Source      string        `json:"source,omitempty"`
	Image       string        `json:"image,omitempty"`
	IsActive    *bool         `json:"isActive,omitempty"`
	ScheduledAt *time.Time    `json:"scheduledAt,omitempty"`
	Viewers     []string      `json:"viewers,omitempty"`
	Likes       []string      `json:"likes,omitempty"`
	Favorites   []string      `json:"favorites,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (a Article) RecordID() string { return a.ID }

// Active applies the legacy default to the activity flag.
func (a Article) Active() bool { return EffectiveActive(a.IsActive) }

// Ingredient is one line of a recipe.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

// Recipe is a meal suggestion for an age range, optionally scheduled.
type Recipe struct {
	ID              string        `json:"_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Category        Ref[Category] `json:"category"`
	Ingredients     []Ingredient  `json:"ingredients,omitempty"`
	PreparationTime *int          `json:"preparationTime,omitempty"` // Minutes
	MinAge          *int          `json:"minAge,omitempty"`          // Months
	MaxAge          *int          `json:"maxAge,omitempty"`          // Months
	Image           string        `json:"image,omitempty"`
	IsActive        *bool         `json:"isActive,omitempty"`
	ScheduledAt     *time.Time    `json:"scheduledAt,omitempty"`
	Viewers         []string      `json:"viewers,omitempty"`
	Likes           []string      `json:"likes,omitempty"`
	Favorites       []string      `json:"favorites,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

func (r Recipe) RecordID() string { return r.ID }

// Active applies the legacy default to the activity flag.
func (r Recipe) Active() bool { return EffectiveActive(r.IsActive) }

// IngredientNames lists the recipe's ingredient names.
func (r Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}
