// ABOUTME: Feed handlers for the Huma API
// ABOUTME: Serves generated RSS and Atom documents and a JSON summary of a page's feed

package handlers

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"listfeeds-api/api/dto/responses"
	"listfeeds-api/core/domain"
	"listfeeds-api/core/interfaces"
)

// FeedService interface defines the methods needed from the feed service
type FeedService interface {
	GetFeed(ctx context.Context, rawURL string) (*domain.FeedData, error)
	CacheTTL() time.Duration
}

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService FeedService
	encoder     interfaces.FeedEncoder
	publicURL   string
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService FeedService, encoder interfaces.FeedEncoder, publicURL string) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		encoder:     encoder,
		publicURL:   strings.TrimSuffix(publicURL, "/"),
	}
}

// RegisterRoutes registers all feed-related routes
func (h *FeedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getRSSFeed",
		Method:      http.MethodGet,
		Path:        "/rss",
		Summary:     "Generate an RSS feed for a list page",
		Description: "Extracts the list on the given page and returns it as RSS 2.0",
		Tags:        []string{"Feeds"},
	}, h.feedHandler(interfaces.FormatRSS))

	huma.Register(api, huma.Operation{
		OperationID: "getAtomFeed",
		Method:      http.MethodGet,
		Path:        "/atom",
		Summary:     "Generate an Atom feed for a list page",
		Description: "Extracts the list on the given page and returns it as Atom",
		Tags:        []string{"Feeds"},
	}, h.feedHandler(interfaces.FormatAtom))

	huma.Register(api, huma.Operation{
		OperationID: "getFeedDetail",
		Method:      http.MethodGet,
		Path:        "/feeds",
		Summary:     "Describe the feed generated for a page",
		Description: "Returns the title, links and item count of the feed for the given page",
		Tags:        []string{"Feeds"},
	}, h.GetFeedDetail)
}

// FeedInput defines the input shared by the feed operations
type FeedInput struct {
	URL         string `query:"url" doc:"Page to turn into a feed, optionally percent-encoded" example:"https://example.com/blog"`
	IfNoneMatch string `header:"If-None-Match" doc:"ETag of a previously served document"`
}

// SyndicationOutput carries a rendered feed document
type SyndicationOutput struct {
	Status       int
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	ETag         string `header:"ETag"`
	Body         []byte
}

func (h *FeedHandler) feedHandler(format interfaces.Format) func(context.Context, *FeedInput) (*SyndicationOutput, error) {
	return func(ctx context.Context, input *FeedInput) (*SyndicationOutput, error) {
		return h.GetSyndication(ctx, input, format)
	}
}

// GetSyndication handles GET /rss and GET /atom
func (h *FeedHandler) GetSyndication(ctx context.Context, input *FeedInput, format interfaces.Format) (*SyndicationOutput, error) {
	data, err := h.feedService.GetFeed(ctx, input.URL)
	if err != nil {
		return nil, toHumaError(err)
	}

	body, err := h.encoder.Encode(data, format)
	if err != nil {
		return nil, toHumaError(err)
	}

	sum := md5.Sum(body)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`

	output := &SyndicationOutput{
		Status:       http.StatusOK,
		ContentType:  format.ContentType(),
		CacheControl: fmt.Sprintf("public, max-age=%d", int(h.feedService.CacheTTL().Seconds())),
		ETag:         etag,
		Body:         body,
	}

	if input.IfNoneMatch == etag {
		output.Status = http.StatusNotModified
		output.Body = nil
	}

	return output, nil
}

// FeedDetailOutput defines the output for the GetFeedDetail operation
type FeedDetailOutput struct {
	Body responses.FeedDetailResponse
}

// GetFeedDetail handles GET /feeds
func (h *FeedHandler) GetFeedDetail(ctx context.Context, input *FeedInput) (*FeedDetailOutput, error) {
	data, err := h.feedService.GetFeed(ctx, input.URL)
	if err != nil {
		return nil, toHumaError(err)
	}

	query := url.QueryEscape(data.PageURL)
	return &FeedDetailOutput{
		Body: responses.FeedDetailResponse{
			Title:       data.FeedTitle(),
			Description: data.PageURL,
			Link:        data.PageURL,
			Icon:        data.Icon,
			RSSURL:      data.RSSURL,
			FeedURL:     h.publicURL + "/rss?url=" + query,
			AtomURL:     h.publicURL + "/atom?url=" + query,
			ItemCount:   len(data.PublishableItems()),
		},
	}, nil
}
