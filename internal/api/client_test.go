package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securities-admin/internal/securities"
)

func TestListSecurities_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/securities", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		price := 189.30
		resp := map[string][]securities.Security{
			"securities": {
				{Ticker: "AAPL", Price: &price, AvailableOnYFinance: true},
				{Ticker: "PRIV"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	client.SetToken("test-token")

	secs, err := client.ListSecurities()
	require.NoError(t, err)
	require.Len(t, secs, 2)
	assert.Equal(t, "AAPL", secs[0].Ticker)
	require.NotNil(t, secs[0].Price)
	assert.Equal(t, 189.30, *secs[0].Price)
	assert.Nil(t, secs[1].Price)
}

func TestListSecurities_MissingArrayMeansEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	secs, err := client.ListSecurities()
	require.NoError(t, err)
	assert.NotNil(t, secs)
	assert.Empty(t, secs)
}

func TestListSecurities_BodyTextBecomesErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("db down"))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.ListSecurities()
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusInternalServerError, fetchErr.Status)
	assert.Equal(t, "db down", err.Error())
}

func TestListSecurities_EmptyBodyGetsDefaultMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.ListSecurities()
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "Failed to fetch securities", err.Error())
}

func TestListSecurities_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.ListSecurities()
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "Network error. Please check your connection.", err.Error())
	assert.Error(t, errors.Unwrap(err))
}

func TestUpdatePrices_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/market/update-prices", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Price update started for 42 tickers"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	client.SetToken("test-token")

	msg, err := client.UpdatePrices()
	require.NoError(t, err)
	assert.Equal(t, "Price update started for 42 tickers", msg)
}

func TestUpdatePrices_FailureIsGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("worker pool exhausted"))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.UpdatePrices()
	require.Error(t, err)

	var refreshErr *RefreshError
	require.True(t, errors.As(err, &refreshErr))
	assert.Equal(t, http.StatusInternalServerError, refreshErr.Status)
	// The body is never shown to the user on refresh failures.
	assert.Equal(t, "Failed to update prices. Please try again later.", err.Error())
}

func TestUpdatePrices_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.UpdatePrices()
	require.Error(t, err)

	var refreshErr *RefreshError
	require.True(t, errors.As(err, &refreshErr))
}

func TestSetBaseURL_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://localhost:8000/", zerolog.Nop())
	assert.Equal(t, "http://localhost:8000", client.baseURL)

	client.SetBaseURL("http://example.com/api/")
	assert.Equal(t, "http://example.com/api", client.baseURL)
}
