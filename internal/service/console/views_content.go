package console

import (
	"strings"
	"time"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	records "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models/console"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/listview"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/scheduling"
)

// Advice tabs
const (
	TabSixToNineMonths = "6-9-months"
	TabRest            = "rest"
)

func categoryTitle(ref records.Ref[records.Category]) string {
	if cat, ok := ref.Record(); ok {
		return cat.Title
	}
	return ""
}

// Categories lists the content categories.
func Categories() *Definition[records.Category] {
	title := func(c records.Category) string { return c.Title }

	return &Definition[records.Category]{
		Entity:  "categories",
		Filters: []string{"status"},
		View: listview.View[records.Category]{
			Search: listview.Search(title, func(c records.Category) string { return c.Description }),
			Filters: []listview.Predicate[records.Category]{
				listview.Bool("status", records.Category.Active),
			},
			Sorts: listview.SortTable[records.Category]{
				"title":  listview.StringKey(title),
				"status": listview.BoolKey(records.Category.Active),
			},
			PageSize: config.DefaultPageSize,
		},
		Admit: admitCategory,
	}
}

// Advices lists the day-based tips, split into the 6 to 9 months window
// and the rest.
func Advices() *Definition[records.Advice] {
	category := func(a records.Advice) string { return a.Category.ID() }

	return &Definition[records.Advice]{
		Entity:  "advices",
		Filters: []string{"category", "status"},
		View: listview.View[records.Advice]{
			Search: listview.Search(
				func(a records.Advice) string { return a.Title },
				func(a records.Advice) string { return a.Content },
				func(a records.Advice) string { return categoryTitle(a.Category) },
			),
			Filters: []listview.Predicate[records.Advice]{
				listview.Equals("category", category),
				listview.Bool("status", records.Advice.Active),
			},
			Tabs: &listview.Tabs[records.Advice]{
				Primary: TabSixToNineMonths,
				Rest:    TabRest,
				InPrimary: func(a records.Advice) bool {
					return a.Within(scheduling.FirstDay, scheduling.LastDay)
				},
			},
			Sorts: listview.SortTable[records.Advice]{
				"day":       listview.IntKey(records.Advice.StartDay),
				"title":     listview.StringKey(func(a records.Advice) string { return a.Title }),
				"viewers":   listview.CountKey(func(a records.Advice) int { return len(a.Viewers) }),
				"likes":     listview.CountKey(func(a records.Advice) int { return len(a.Likes) }),
				"status":    listview.BoolKey(records.Advice.Active),
				"createdAt": listview.TimeKey(func(a records.Advice) time.Time { return a.CreatedAt }),
			},
			Options: map[string]listview.OptionSource[records.Advice]{
				"category": {Values: listview.Single(category), Normalize: listview.Trim},
			},
			PageSize: config.DefaultPageSize,
		},
		Admit: admitAdvice,
	}
}

// Articles lists the editorial content.
func Articles() *Definition[records.Article] {
	category := func(a records.Article) string { return a.Category.ID() }
	source := func(a records.Article) string { return a.Source }

	return &Definition[records.Article]{
		Entity:  "articles",
		Filters: []string{"category", "source", "status"},
		View: listview.View[records.Article]{
			Search: listview.Search(
				func(a records.Article) string { return a.Title },
				func(a records.Article) string { return a.Content },
				source,
			),
			Filters: []listview.Predicate[records.Article]{
				listview.Equals("category", category),
				listview.NormalizedEquals("source", source, listview.TrimUpper),
				listview.Bool("status", records.Article.Active),
			},
			Sorts: listview.SortTable[records.Article]{
				"title":       listview.StringKey(func(a records.Article) string { return a.Title }),
				"source":      listview.StringKey(source),
				"createdAt":   listview.TimeKey(func(a records.Article) time.Time { return a.CreatedAt }),
				"scheduledAt": listview.TimeKey(func(a records.Article) time.Time { return optTime(a.ScheduledAt) }),
				"viewers":     listview.CountKey(func(a records.Article) int { return len(a.Viewers) }),
				"likes":       listview.CountKey(func(a records.Article) int { return len(a.Likes) }),
				"favorites":   listview.CountKey(func(a records.Article) int { return len(a.Favorites) }),
				"status":      listview.BoolKey(records.Article.Active),
			},
			Options: map[string]listview.OptionSource[records.Article]{
				"category": {Values: listview.Single(category), Normalize: listview.Trim},
				"source":   {Values: listview.Single(source), Normalize: listview.TrimUpper},
			},
			PageSize: config.DefaultPageSize,
		},
		Admit: admitArticle,
		AdmitStatus: func(prior records.Article, active bool, now time.Time) error {
			return admitScheduledStatus(prior.ScheduledAt, active, now)
		},
	}
}

// Recipes lists the meal suggestions.
func Recipes() *Definition[records.Recipe] {
	category := func(r records.Recipe) string { return r.Category.ID() }

	return &Definition[records.Recipe]{
		Entity:  "recipes",
		Filters: []string{"category", "ingredient", "status"},
		View: listview.View[records.Recipe]{
			Search: listview.Search(
				func(r records.Recipe) string { return r.Title },
				func(r records.Recipe) string { return r.Description },
				func(r records.Recipe) string { return strings.Join(r.IngredientNames(), " ") },
			),
			Filters: []listview.Predicate[records.Recipe]{
				listview.Equals("category", category),
				listview.Contains("ingredient", records.Recipe.IngredientNames, lowerTrim),
				listview.Bool("status", records.Recipe.Active),
			},
			Sorts: listview.SortTable[records.Recipe]{
				"title":           listview.StringKey(func(r records.Recipe) string { return r.Title }),
				"createdAt":       listview.TimeKey(func(r records.Recipe) time.Time { return r.CreatedAt }),
				"scheduledAt":     listview.TimeKey(func(r records.Recipe) time.Time { return optTime(r.ScheduledAt) }),
				"preparationTime": listview.IntKey(func(r records.Recipe) (int, bool) { return optInt(r.PreparationTime) }),
				"minAge":          listview.IntKey(func(r records.Recipe) (int, bool) { return optInt(r.MinAge) }),
				"viewers":         listview.CountKey(func(r records.Recipe) int { return len(r.Viewers) }),
				"likes":           listview.CountKey(func(r records.Recipe) int { return len(r.Likes) }),
				"favorites":       listview.CountKey(func(r records.Recipe) int { return len(r.Favorites) }),
				"status":          listview.BoolKey(records.Recipe.Active),
			},
			Options: map[string]listview.OptionSource[records.Recipe]{
				"category":   {Values: listview.Single(category), Normalize: listview.Trim},
				"ingredient": {Values: records.Recipe.IngredientNames, Normalize: lowerTrim},
			},
			PageSize: config.DefaultPageSize,
		},
		Admit: admitRecipe,
		AdmitStatus: func(prior records.Recipe, active bool, now time.Time) error {
			return admitScheduledStatus(prior.ScheduledAt, active, now)
		},
	}
}
