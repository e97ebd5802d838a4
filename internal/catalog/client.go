package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"audibleseries/internal/library"
	"audibleseries/internal/logging"
)

const (
	simsPath          = "/1.0/catalog/products/%s/sims"
	responseGroups    = "product_desc,product_attrs"
	similarityType    = "NextInSameSeries"
	defaultTimeout    = 15 * time.Second
	defaultUserAgent  = "audibleseries"
	maxErrorBodyBytes = 512
)

// Product is a single catalog entry returned by the sims endpoint.
type Product struct {
	ASIN        string `json:"asin"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	ReleaseDate string `json:"release_date"`
}

// SimsResponse models the similar products payload.
type SimsResponse struct {
	SimilarProducts []Product `json:"similar_products"`
}

// Lookup finds the catalog's next book after the given one.
type Lookup interface {
	NextInSeries(ctx context.Context, book library.Book) (*library.Book, error)
}

// Client talks to the Audible catalog API.
type Client struct {
	baseURL     string
	accessToken string
	userAgent   string
	httpClient  *http.Client
	logger      *slog.Logger
}

var _ Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithAccessToken sends the token as a bearer credential.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = strings.TrimSpace(token)
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a catalog client rooted at baseURL, e.g. https://api.audible.com.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "catalog")
	return client, nil
}

// NextInSeries returns the book the catalog lists after book, or nil when the
// catalog offers none.
func (c *Client) NextInSeries(ctx context.Context, book library.Book) (*library.Book, error) {
	resp, err := c.Sims(ctx, book.ASIN)
	if err != nil {
		return nil, err
	}
	return NextFromResponse(resp, book.SeriesTitle)
}

// Sims fetches the NextInSameSeries similar products for asin.
func (c *Client) Sims(ctx context.Context, asin string) (*SimsResponse, error) {
	asin = strings.TrimSpace(asin)
	if asin == "" {
		return nil, errors.New("asin must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + fmt.Sprintf(simsPath, url.PathEscape(asin)))
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("response_groups", responseGroups)
	params.Set("similarity_type", similarityType)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog sims request",
		logging.String(logging.FieldASIN, asin),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency))

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{ASIN: asin, StatusCode: resp.StatusCode, Body: readSnippet(resp), Latency: latency}
	}

	var payload SimsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return &payload, nil
}

// NextFromResponse converts the first similar product into a Book for
// seriesTitle. An empty list, or a first entry without an ASIN, yields nil.
func NextFromResponse(resp *SimsResponse, seriesTitle string) (*library.Book, error) {
	if resp == nil || len(resp.SimilarProducts) == 0 {
		return nil, nil
	}
	product := resp.SimilarProducts[0]
	if strings.TrimSpace(product.ASIN) == "" {
		return nil, nil
	}
	book, err := library.FromCatalogEntry(product.ASIN, product.Title, product.ReleaseDate, seriesTitle)
	if err != nil {
		return nil, err
	}
	return &book, nil
}
