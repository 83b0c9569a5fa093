package listview

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A Collator keeps internal buffers and is not safe for concurrent use,
// so comparisons borrow one from a pool.
var collators = sync.Pool{
	New: func() any {
		// Loose ignores case, accents and width: "école" == "Ecole".
		return collate.New(language.French, collate.Loose)
	},
}

// CompareStrings orders two strings with French collation at base
// strength. Strings differing only in case or accents compare equal.
func CompareStrings(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

// containsFold reports whether term occurs in s ignoring case.
// term must already be lower-cased.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}
