// ABOUTME: Diffbot List API client that turns a list page into FeedData
// ABOUTME: Maps upstream error reports, empty results and transport failures to extraction errors

package diffbot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"listfeeds-api/core/domain"
	coreerrors "listfeeds-api/core/errors"
	"listfeeds-api/core/interfaces"
	timeutil "listfeeds-api/pkg/utils/time"
	"listfeeds-api/pkg/utils/urlnorm"
)

// DefaultAPIURL is the List API endpoint
const DefaultAPIURL = "https://api.diffbot.com/v3/list"

// maxResponseSize caps how much of an upstream body is read
const maxResponseSize = 10 << 20

const noContentMessage = "No content found on page"

// Options configures a Client
type Options struct {
	// APIURL overrides DefaultAPIURL
	APIURL string

	// Token is sent with every call and never logged
	Token string

	// MaxRPS throttles calls per second; 0 means unlimited
	MaxRPS float64

	// Logger defaults to a no-op logger
	Logger interfaces.Logger
}

// Client implements interfaces.FeedFetcher against the Diffbot List API
type Client struct {
	http    interfaces.HTTPClient
	apiURL  string
	token   string
	limiter *rate.Limiter
	logger  interfaces.Logger
	now     func() time.Time
}

// NewClient creates a Diffbot client on top of the shared HTTP client
func NewClient(httpClient interfaces.HTTPClient, opts Options) *Client {
	c := &Client{
		http:   httpClient,
		apiURL: opts.APIURL,
		token:  opts.Token,
		logger: opts.Logger,
		now:    time.Now,
	}

	if c.apiURL == "" {
		c.apiURL = DefaultAPIURL
	}
	if c.logger == nil {
		c.logger = nopLogger{}
	}
	if opts.MaxRPS > 0 {
		burst := int(opts.MaxRPS)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.MaxRPS), burst)
	}

	return c
}

// Fetch extracts the list on pageURL. Every failure is an
// *errors.ExtractionError and no partial data is returned.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*domain.FeedData, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.fail(pageURL, fmt.Sprintf("extraction throttled: %v", err), err)
		}
	}

	endpoint, err := c.endpoint(pageURL)
	if err != nil {
		return nil, c.fail(pageURL, fmt.Sprintf("invalid extraction endpoint: %v", err), err)
	}

	start := time.Now()
	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, c.fail(pageURL, fmt.Sprintf("extraction request failed: %v", redact(err, c.token)), err)
	}
	defer resp.Body().Close()

	c.logger.Debug("Extraction response received", map[string]interface{}{
		"url":         pageURL,
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxResponseSize))
	if err != nil {
		return nil, c.fail(pageURL, fmt.Sprintf("failed to read extraction response: %v", err), err)
	}

	var payload listResponse
	decodeErr := json.Unmarshal(body, &payload)

	if decodeErr == nil && payload.Error != "" {
		return nil, c.fail(pageURL, string(payload.Error), nil)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, c.fail(pageURL, fmt.Sprintf("extraction API returned status %d", resp.StatusCode()), nil)
	}

	if decodeErr != nil {
		return nil, c.fail(pageURL, fmt.Sprintf("invalid extraction response: %v", decodeErr), decodeErr)
	}

	if len(payload.Objects) == 0 {
		return nil, c.fail(pageURL, noContentMessage, nil)
	}

	data := payload.Objects[0].toFeedData()
	if data.PageURL == "" {
		data.PageURL = pageURL
	}
	data.FetchedAt = c.now().UTC().Truncate(time.Second)

	c.logger.Info("Extracted list page", map[string]interface{}{
		"url":   pageURL,
		"items": len(data.Items),
	})

	return data, nil
}

// endpoint builds the API URL. The page URL is decoded once so a
// percent-encoded query parameter reaches upstream as a plain URL.
func (c *Client) endpoint(pageURL string) (string, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("token", c.token)
	q.Set("url", urlnorm.Unescape(pageURL))
	q.Set("paging", "false")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) fail(pageURL, message string, cause error) error {
	c.logger.Warn("Extraction failed", map[string]interface{}{
		"url":   pageURL,
		"error": message,
	})
	return &coreerrors.ExtractionError{URL: pageURL, Message: message, Err: cause}
}

// listResponse is the subset of the List API answer we read
type listResponse struct {
	Error   flexString   `json:"error"`
	Objects []listObject `json:"objects"`
}

type listObject struct {
	Title   flexString `json:"title"`
	PageURL flexString `json:"pageUrl"`
	Icon    flexString `json:"icon"`
	RSSURL  flexString `json:"rss_url"`
	Items   []listItem `json:"items"`
}

type listItem struct {
	Title   flexString `json:"title"`
	Link    flexString `json:"link"`
	Summary flexString `json:"summary"`
	Byline  flexString `json:"byline"`
	Author  flexString `json:"author"`
	Date    flexString `json:"date"`
	Image   flexString `json:"image"`
}

func (o listObject) toFeedData() *domain.FeedData {
	data := &domain.FeedData{
		Items:   make([]domain.Item, 0, len(o.Items)),
		Title:   string(o.Title),
		PageURL: string(o.PageURL),
		Icon:    string(o.Icon),
		RSSURL:  string(o.RSSURL),
	}

	for _, it := range o.Items {
		author := string(it.Byline)
		if author == "" {
			author = string(it.Author)
		}

		data.Items = append(data.Items, domain.Item{
			Title:     string(it.Title),
			Link:      string(it.Link),
			Summary:   string(it.Summary),
			Author:    author,
			Published: timeutil.ParseOptional(string(it.Date)),
			Image:     string(it.Image),
		})
	}

	return data
}
