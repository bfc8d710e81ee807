package model

// SortType selects the timestamp and direction used to order entries.
type SortType string

const (
	SortCreatedAsc   SortType = "created_asc"
	SortCreatedDesc  SortType = "created_desc"
	SortModifiedAsc  SortType = "modified_asc"
	SortModifiedDesc SortType = "modified_desc"
)

// DefaultSort shows the newest entries first.
const DefaultSort = SortCreatedDesc

// ParseSortType maps s to a known SortType. Unknown or empty values fall back
// to DefaultSort.
func ParseSortType(s string) SortType {
	switch st := SortType(s); st {
	case SortCreatedAsc, SortCreatedDesc, SortModifiedAsc, SortModifiedDesc:
		return st
	default:
		return DefaultSort
	}
}

// Column returns the entries column the sort type orders by.
func (s SortType) Column() string {
	switch ParseSortType(string(s)) {
	case SortModifiedAsc, SortModifiedDesc:
		return "modified"
	default:
		return "created"
	}
}

// Descending reports whether newer entries come first.
func (s SortType) Descending() bool {
	switch ParseSortType(string(s)) {
	case SortCreatedAsc, SortModifiedAsc:
		return false
	default:
		return true
	}
}
