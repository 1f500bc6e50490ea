// Package securities holds the securities data model and the pure
// filter/sort pipeline that derives the rows the table displays.
package securities

import "time"

// Security is one row from the backend's securities listing. Optional
// columns are pointers; the backend sends null for data it doesn't have.
type Security struct {
	Ticker              string   `json:"ticker"`
	CompanyName         *string  `json:"company_name"`
	Sector              *string  `json:"sector"`
	Industry            *string  `json:"industry"`
	Price               *float64 `json:"price"`
	LastUpdated         *string  `json:"last_updated"`
	TimeAgo             *string  `json:"time_ago"`
	AvailableOnYFinance bool     `json:"available_on_yfinance"`
}

// StaleAfter is how old a price may be before the UI flags it. The backend
// updater uses the same cutoff when picking tickers to refresh.
const StaleAfter = 24 * time.Hour

// Stale reports whether the security's last update is older than StaleAfter.
// Missing or unparsable timestamps are not considered stale.
func (s Security) Stale(now time.Time) bool {
	if s.LastUpdated == nil {
		return false
	}
	t, err := time.Parse(time.RFC3339, *s.LastUpdated)
	if err != nil {
		return false
	}
	return now.Sub(t) > StaleAfter
}
