package securities

import "strings"

// Filter returns the securities matching term, preserving order. Matching is
// a case-insensitive substring test over ticker, company name, sector and
// industry; absent fields never match. An empty term returns the input.
func Filter(list []Security, term string) []Security {
	term = strings.ToLower(term)
	if term == "" {
		return list
	}
	out := make([]Security, 0, len(list))
	for _, s := range list {
		if s.matches(term) {
			out = append(out, s)
		}
	}
	return out
}

func (s Security) matches(term string) bool {
	if strings.Contains(strings.ToLower(s.Ticker), term) {
		return true
	}
	for _, field := range []*string{s.CompanyName, s.Sector, s.Industry} {
		if field != nil && strings.Contains(strings.ToLower(*field), term) {
			return true
		}
	}
	return false
}
