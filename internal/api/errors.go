package api

// User-facing messages for the three failure classes.
const (
	defaultFetchMessage  = "Failed to fetch securities"
	networkMessage       = "Network error. Please check your connection."
	refreshFailedMessage = "Failed to update prices. Please try again later."
)

// FetchError is a non-2xx response from the securities listing. Message is
// the response body text when the backend sent one.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string { return e.Message }

// NetworkError is a transport-level failure: no response arrived at all.
// The user always sees the fixed connectivity message; the underlying cause
// is kept for logs.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return networkMessage }
func (e *NetworkError) Unwrap() error { return e.Err }

// RefreshError is a failed price update. The user sees the same retry-later
// message regardless of status or cause.
type RefreshError struct {
	Status int
	Err    error
}

func (e *RefreshError) Error() string { return refreshFailedMessage }
func (e *RefreshError) Unwrap() error { return e.Err }
