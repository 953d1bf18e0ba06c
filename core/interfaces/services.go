// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for the extraction and encoding collaborators

package interfaces

import (
	"context"

	"listfeeds-api/core/domain"
)

// FeedFetcher turns a page URL into list data using an extraction service.
// Every failure is reported as *errors.ExtractionError.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.FeedData, error)
}

// Format selects the syndication format of an encoded feed
type Format string

const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
)

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	if f == FormatAtom {
		return "application/atom+xml"
	}
	return "application/rss+xml"
}

// FeedEncoder renders FeedData as a syndication document
type FeedEncoder interface {
	Encode(data *domain.FeedData, format Format) ([]byte, error)
}
