// Package api implements the client for the securities backend. Every
// endpoint requires a bearer token; the session guard in the UI makes sure
// one is set before a request is dispatched.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"securities-admin/internal/securities"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With().Str("component", "api").Logger(),
	}
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) SetToken(token string) {
	c.token = token
}

// Response types

type securitiesResponse struct {
	Securities []securities.Security `json:"securities"`
}

type updateResponse struct {
	Message string `json:"message"`
}

// Internal helpers

func (c *Client) newRequest(method, path string) (*http.Request, error) {
	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return req, nil
}

// Endpoints

// ListSecurities fetches the full securities collection. A non-2xx status
// becomes a *FetchError carrying the response body text; a transport failure
// becomes a *NetworkError. A response without a securities array is an empty
// collection, not an error.
func (c *Client) ListSecurities() ([]securities.Security, error) {
	req, err := c.newRequest(http.MethodGet, "/securities")
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("securities fetch failed before a response")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = defaultFetchMessage
		}
		c.log.Warn().Int("status", resp.StatusCode).Msg("securities fetch rejected")
		return nil, &FetchError{Status: resp.StatusCode, Message: msg}
	}

	var payload securitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error().Err(err).Msg("securities response did not decode")
		return nil, &FetchError{Status: resp.StatusCode, Message: defaultFetchMessage}
	}
	if payload.Securities == nil {
		return []securities.Security{}, nil
	}

	c.log.Debug().Int("count", len(payload.Securities)).Msg("securities fetched")
	return payload.Securities, nil
}

// UpdatePrices asks the backend to refresh prices server-side and returns
// its confirmation message. Every failure mode surfaces as a *RefreshError;
// the acknowledgement dialog shows the same retry-later message for all of
// them.
func (c *Client) UpdatePrices() (string, error) {
	req, err := c.newRequest(http.MethodPost, "/market/update-prices")
	if err != nil {
		return "", &RefreshError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("price update failed before a response")
		return "", &RefreshError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		c.log.Warn().Int("status", resp.StatusCode).Msg("price update rejected")
		return "", &RefreshError{Status: resp.StatusCode}
	}

	var payload updateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &RefreshError{Err: err}
	}

	c.log.Info().Msg("price update triggered")
	return payload.Message, nil
}
