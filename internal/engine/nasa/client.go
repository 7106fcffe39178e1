package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// Default vendor endpoints. Overridable through Config for tests.
const (
	DefaultBaseURL   = "https://api.nasa.gov"
	DefaultSearchURL = "https://cmr.earthdata.nasa.gov/search/granules.json"

	// Earth imagery endpoints under the api.nasa.gov base
	AssetsEndpoint  = "/planetary/earth/assets"
	ImageryEndpoint = "/planetary/earth/imagery"
)

// Config bundles credentials and endpoint overrides for the vendor client
type Config struct {
	Username string
	Password string
	APIKey   string

	BaseURL    string
	SearchURL  string
	HTTPClient *http.Client
}

// Client talks to the satellite-data vendor. All calls go through a circuit
// breaker so a flapping vendor is short-circuited instead of hammered; every
// failure still resolves to the caller's simulation fallback.
type Client struct {
	apiKey     string
	baseURL    string
	searchURL  string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// basicAuthTransport attaches Earthdata credentials to every request
type basicAuthTransport struct {
	username string
	password string
	next     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return t.next.RoundTrip(req)
}

// NewClient creates a vendor client. When credentials are set they are
// attached as basic auth on the underlying transport.
func NewClient(cfg Config) *Client {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Username != "" && cfg.Password != "" {
		base := client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		client = &http.Client{
			Timeout: client.Timeout,
			Transport: &basicAuthTransport{
				username: cfg.Username,
				password: cfg.Password,
				next:     base,
			},
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	searchURL := cfg.SearchURL
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nasa",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		searchURL:  searchURL,
		httpClient: client,
		circuit:    cb,
	}
}

// HasAPIKey reports whether the optional api.nasa.gov key is configured
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// QueryAssets calls an earth imagery endpoint for the given coordinate and
// date. A nil error means the vendor answered 200; the payload itself is not
// mapped to metrics (documented placeholder).
func (c *Client) QueryAssets(ctx context.Context, endpoint string, lat, lon float64, date string, dim float64) error {
	params := url.Values{}
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("date", date)
	if dim > 0 {
		params.Set("dim", fmt.Sprintf("%.2f", dim))
	}
	params.Set("api_key", c.apiKey)

	resp, err := c.get(ctx, fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nasa: assets query returned status %d", resp.StatusCode)
	}
	return nil
}

// granuleFeed is the subset of the CMR granule search response we inspect
type granuleFeed struct {
	Feed struct {
		Entry []struct {
			ID string `json:"id"`
		} `json:"entry"`
	} `json:"feed"`
}

// SearchGranules runs a dataset search by short name within a bounding box of
// fixed half-width around the coordinate, constrained to one day. It returns
// the number of matching granules.
func (c *Client) SearchGranules(ctx context.Context, shortName string, lat, lon, halfWidth float64, date string) (int, error) {
	params := url.Values{}
	params.Set("short_name", shortName)
	params.Set("bounding_box", fmt.Sprintf("%f,%f,%f,%f",
		lon-halfWidth, lat-halfWidth, lon+halfWidth, lat+halfWidth))
	params.Set("temporal", fmt.Sprintf("%sT00:00:00Z,%sT23:59:59Z", date, date))
	params.Set("page_size", "1")

	resp, err := c.get(ctx, fmt.Sprintf("%s?%s", c.searchURL, params.Encode()))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("nasa: granule search returned status %d", resp.StatusCode)
	}

	var feed granuleFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return 0, fmt.Errorf("nasa: failed to decode granule search response: %w", err)
	}
	return len(feed.Feed.Entry), nil
}

// QueryOpenData fetches a domain-specific open-data URL. A nil error means
// the portal answered 200.
func (c *Client) QueryOpenData(ctx context.Context, rawURL string) error {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nasa: open data query returned status %d", resp.StatusCode)
	}
	return nil
}

// get executes one GET through the circuit breaker. Server errors (5xx) trip
// the breaker; other statuses are returned to the caller for inspection.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("nasa: failed to create request: %w", err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("nasa: server error: status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("nasa: unexpected result type from circuit breaker")
	}
	return resp, nil
}
