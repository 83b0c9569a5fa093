package config

const (
	// DefaultPageSize is used when neither the view catalog nor the operator's
	// preferences name a page size.
	DefaultPageSize = 10

	// MinPageSize and MaxPageSize bound operator-chosen page sizes.
	// Collections are fully materialized in memory, so the upper bound only
	// keeps responses readable.
	MinPageSize = 5
	MaxPageSize = 100

	// MaxTitleLength is the maximum length for advice, article, recipe and
	// category titles.
	MaxTitleLength = 255

	// MaxSearchLength caps free-text search terms accepted from the console.
	MaxSearchLength = 200

	// FirstSlotDay and LastSlotDay bound the advice scheduling grid
	// (baby age in days, roughly 6 to 9 months).
	FirstSlotDay = 180
	LastSlotDay  = 270
)
