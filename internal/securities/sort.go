package securities

import "sort"

// SortKey names a sortable column. Values match the backend's field names.
type SortKey string

const (
	SortByTicker      SortKey = "ticker"
	SortByCompanyName SortKey = "company_name"
	SortBySector      SortKey = "sector"
	SortByIndustry    SortKey = "industry"
	SortByPrice       SortKey = "price"
	SortByLastUpdated SortKey = "last_updated"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortConfig is the active sort column and direction.
type SortConfig struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort is the order the table opens with.
func DefaultSort() SortConfig {
	return SortConfig{Key: SortByTicker, Direction: Ascending}
}

// Click applies the header-click rule: selecting the active column while it
// is ascending flips it to descending; every other prior state (a different
// column, or the same column already descending) starts the selected column
// at ascending.
func (c SortConfig) Click(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Ascending {
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

// Sort returns a copy of list ordered by cfg. The sort is stable, so equal
// values keep their incoming order. Securities missing the sort field come
// after those that have it in BOTH directions; the admin page this client
// fronts orders nulls that way, so it is kept direction-invariant here too.
func Sort(list []Security, cfg SortConfig) []Security {
	out := make([]Security, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j], cfg)
	})
	return out
}

func less(a, b Security, cfg SortConfig) bool {
	switch cfg.Key {
	case SortByCompanyName:
		return lessStringPtr(a.CompanyName, b.CompanyName, cfg.Direction)
	case SortBySector:
		return lessStringPtr(a.Sector, b.Sector, cfg.Direction)
	case SortByIndustry:
		return lessStringPtr(a.Industry, b.Industry, cfg.Direction)
	case SortByPrice:
		return lessFloatPtr(a.Price, b.Price, cfg.Direction)
	case SortByLastUpdated:
		return lessStringPtr(a.LastUpdated, b.LastUpdated, cfg.Direction)
	default:
		return lessString(a.Ticker, b.Ticker, cfg.Direction)
	}
}

func lessStringPtr(a, b *string, dir Direction) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return lessString(*a, *b, dir)
}

func lessString(a, b string, dir Direction) bool {
	if dir == Descending {
		return a > b
	}
	return a < b
}

func lessFloatPtr(a, b *float64, dir Direction) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if dir == Descending {
		return *a > *b
	}
	return *a < *b
}
