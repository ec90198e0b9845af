package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"cropcast/models"
)

// Client fetches live mandi price records from an Agmarknet-style open
// data API. It is only used to top up the price history at startup, never
// on the request path.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	logger     zerolog.Logger
}

// agmarknetResponse is the data.gov.in resource payload shape.
type agmarknetResponse struct {
	Records []struct {
		State       string `json:"state"`
		Market      string `json:"market"`
		Commodity   string `json:"commodity"`
		ArrivalDate string `json:"arrival_date"`
		ModalPrice  string `json:"modal_price"`
	} `json:"records"`
}

// NewClient creates a mandi price client with rate limiting.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5), // 5 requests per second
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     log.With().Str("component", "mandi_client").Logger(),
	}
}

// LatestPrices returns the most recent price observations for a crop,
// oldest first.
func (c *Client) LatestPrices(ctx context.Context, crop string, limit int) ([]models.PriceObservation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	q := url.Values{}
	q.Set("api-key", c.apiKey)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("filters[commodity]", crop)
	reqURL := c.baseURL + "?" + q.Encode()

	c.logger.Debug().Str("crop", crop).Msg("Fetching mandi prices")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data agmarknetResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing mandi response")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var obs []models.PriceObservation
	for _, rec := range data.Records {
		date, err := time.Parse("02/01/2006", rec.ArrivalDate)
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(rec.ModalPrice, 64)
		if err != nil || price <= 0 {
			continue
		}
		obs = append(obs, models.PriceObservation{
			Crop:   rec.Commodity,
			Market: rec.Market,
			State:  rec.State,
			Date:   date,
			Price:  price,
		})
	}

	// Oldest first for proper feature derivation downstream.
	sort.Slice(obs, func(i, j int) bool {
		return obs[i].Date.Before(obs[j].Date)
	})

	c.logger.Debug().Int("count", len(obs)).Msg("Fetched mandi prices")
	return obs, nil
}
