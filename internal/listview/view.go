package listview

// VisibleRows is one page of a derived view.
type VisibleRows[T any] struct {
	Rows       []T `json:"rows"`
	TotalCount int `json:"totalCount"` // Filtered count before slicing
	Page       int `json:"page"`       // Effective page after clamping
	PageCount  int `json:"pageCount"`
	PageSize   int `json:"pageSize"`
}

// View is the query configuration of one entity page.
type View[T any] struct {
	// Search is the free-text predicate; nil disables search.
	Search Predicate[T]

	// Filters are AND-composed with Search and the tab predicate.
	Filters []Predicate[T]

	// Tabs, when set, partitions the filtered set.
	Tabs *Tabs[T]

	// Sorts lists the orderings the page offers.
	Sorts SortTable[T]

	// Options feeds the filter dropdowns, keyed by filter name.
	Options map[string]OptionSource[T]

	// PageSize is the default page size when the query does not carry one.
	PageSize int
}

// Predicate returns the full membership test for q, tab included.
func (v *View[T]) Predicate() Predicate[T] {
	preds := make([]Predicate[T], 0, len(v.Filters)+2)
	preds = append(preds, v.Search)
	preds = append(preds, v.Filters...)
	if v.Tabs != nil {
		preds = append(preds, v.Tabs.Predicate())
	}
	return All(preds...)
}

// Filter returns the members of items matching q, in input order.
// items is not modified.
func (v *View[T]) Filter(items []T, q QueryState) []T {
	match := v.Predicate()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// FilterIgnoringTab applies search and filters but not the tab. Tab
// counts are computed over this set.
func (v *View[T]) FilterIgnoringTab(items []T, q QueryState) []T {
	q.Tab = ""
	return v.Filter(items, q)
}

// Derive filters, stable-sorts and slices items for q using the view's
// page size.
func (v *View[T]) Derive(items []T, q QueryState) VisibleRows[T] {
	return v.DeriveSized(items, q, v.PageSize)
}

// DeriveSized is Derive with an explicit page size. The requested page is
// clamped into [1, max(1, PageCount)] and the effective page is returned,
// so a page emptied by a delete falls back to the last non-empty one.
func (v *View[T]) DeriveSized(items []T, q QueryState, pageSize int) VisibleRows[T] {
	filtered := v.Filter(items, q)
	if v.Sorts != nil {
		v.Sorts.Sort(filtered, q.SortKey, q.Direction)
	}
	return Paginate(filtered, q.Page, pageSize)
}

// OptionsFor derives every configured dropdown from items.
func (v *View[T]) OptionsFor(items []T) map[string][]string {
	out := make(map[string][]string, len(v.Options))
	for name, src := range v.Options {
		out[name] = DeriveOptions(items, src.Values, src.Normalize)
	}
	return out
}

// Paginate slices [(page-1)*size, page*size) out of items.
// A non-positive size returns everything on one page.
func Paginate[T any](items []T, page, size int) VisibleRows[T] {
	total := len(items)
	if size <= 0 {
		size = total
	}

	pageCount := 0
	if size > 0 {
		pageCount = (total + size - 1) / size
	}

	if page < 1 {
		page = 1
	}
	if last := max(1, pageCount); page > last {
		page = last
	}

	rows := make([]T, 0, size)
	start := (page - 1) * size
	if start < total {
		end := min(start+size, total)
		rows = append(rows, items[start:end]...)
	}

	return VisibleRows[T]{
		Rows:       rows,
		TotalCount: total,
		Page:       page,
		PageCount:  pageCount,
		PageSize:   size,
	}
}
