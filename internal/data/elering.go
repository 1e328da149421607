package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"hybrid-dispatch/internal/logging"

	"github.com/rs/zerolog"
)

// SpotPriceClient fetches Nord Pool day-ahead prices from the Elering
// dashboard API. Prices are EUR/MWh per hour.
type SpotPriceClient struct {
	BaseURL string
	Zone    string
	Client  *http.Client

	log zerolog.Logger
}

// NewSpotPriceClient creates a client. If baseURL is empty, it defaults to
// the public Elering dashboard. Zone selects the bidding zone (default "ee").
func NewSpotPriceClient(baseURL, zone string) *SpotPriceClient {
	if baseURL == "" {
		baseURL = "https://dashboard.elering.ee"
	}
	if zone == "" {
		zone = "ee"
	}
	return &SpotPriceClient{
		BaseURL: baseURL,
		Zone:    zone,
		Client:  &http.Client{Timeout: 30 * time.Second},
		log:     logging.New("spot-price"),
	}
}

// SpotPrice is one hourly price point.
type SpotPrice struct {
	Timestamp int64   `json:"timestamp"` // unix seconds, start of hour
	Price     float64 `json:"price"`     // EUR/MWh
}

type spotPriceResponse struct {
	Success bool                   `json:"success"`
	Data    map[string][]SpotPrice `json:"data"`
}

// SpotPriceError represents a failure reported by the price API.
type SpotPriceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *SpotPriceError) Error() string { return e.Message }

// FetchPrices returns hourly prices for the client's zone over
// [start, end). Responses are cached in memory with a short TTL when the
// cache is enabled (see GetCache).
func (c *SpotPriceClient) FetchPrices(start, end time.Time) ([]SpotPrice, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("start and end are required")
	}
	if start.After(end) {
		return nil, fmt.Errorf("start must be before end")
	}

	cache := GetCache()
	cacheKey := cacheKey(c.Zone, start, end)
	if cache != nil {
		if cached, found := cache.Get(cacheKey); found {
			c.log.Debug().Str("zone", c.Zone).Int("points", len(cached)).Msg("cache hit")
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/api/nps/price")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("start", start.UTC().Format("2006-01-02T15:04:05.000Z"))
	q.Set("end", end.UTC().Format("2006-01-02T15:04:05.000Z"))
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	began := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Dur("duration", time.Since(began)).Msg("request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Info().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(began)).
		Str("zone", c.Zone).
		Time("start", start).
		Time("end", end).
		Msg("price request")

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusTooManyRequests:
		return nil, &SpotPriceError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", resp.Header.Get("Retry-After")),
		}
	default:
		return nil, &SpotPriceError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("price API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var parsed spotPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !parsed.Success {
		return nil, &SpotPriceError{StatusCode: resp.StatusCode, Code: "API_ERROR", Message: "price API reported failure"}
	}
	prices, ok := parsed.Data[c.Zone]
	if !ok {
		return nil, &SpotPriceError{
			StatusCode: resp.StatusCode,
			Code:       "UNKNOWN_ZONE",
			Message:    fmt.Sprintf("zone %q not present in response", c.Zone),
		}
	}

	if cache != nil {
		cache.Set(cacheKey, prices)
	}
	return prices, nil
}

// WritePricesCSV writes fetched prices as a two-column CSV usable as the
// price side of a simulation input.
func WritePricesCSV(path string, prices []SpotPrice) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "timestamp,price"); err != nil {
		return err
	}
	for _, p := range prices {
		ts := time.Unix(p.Timestamp, 0).UTC().Format("2006-01-02 15:04:05")
		if _, err := fmt.Fprintf(f, "%s,%s\n", ts, formatPrice(p.Price)); err != nil {
			return err
		}
	}
	return nil
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
