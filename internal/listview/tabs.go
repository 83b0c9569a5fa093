package listview

// Tabs splits a filtered set into two mutually exclusive, exhaustive tabs:
// records satisfying InPrimary belong to Primary, every other record to Rest.
type Tabs[T any] struct {
	Primary   string
	Rest      string
	InPrimary func(T) bool
}

// Names returns the tab names in display order.
func (t Tabs[T]) Names() []string {
	return []string{t.Primary, t.Rest}
}

// Valid reports whether name is one of the two tabs or the AllValue sentinel.
func (t Tabs[T]) Valid(name string) bool {
	return IsAll(name) || name == t.Primary || name == t.Rest
}

// Predicate restricts the set to the active tab. An unset or unknown tab
// leaves it open.
func (t Tabs[T]) Predicate() Predicate[T] {
	return func(item T, q QueryState) bool {
		switch q.Tab {
		case t.Primary:
			return t.InPrimary(item)
		case t.Rest:
			return !t.InPrimary(item)
		default:
			return true
		}
	}
}

// Partition returns both tabs' members, each in input order.
func (t Tabs[T]) Partition(items []T) (primary, rest []T) {
	primary = make([]T, 0, len(items))
	rest = make([]T, 0, len(items))
	for _, item := range items {
		if t.InPrimary(item) {
			primary = append(primary, item)
		} else {
			rest = append(rest, item)
		}
	}
	return primary, rest
}

// Counts returns the number of records in each tab.
func (t Tabs[T]) Counts(items []T) map[string]int {
	primary, rest := t.Partition(items)
	return map[string]int{
		t.Primary: len(primary),
		t.Rest:    len(rest),
	}
}
