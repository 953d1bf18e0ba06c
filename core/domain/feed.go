// ABOUTME: FeedData domain model holds what the extraction API returned for one page
// ABOUTME: Stored verbatim in the cache and handed to the feed encoder

package domain

import "time"

// FeedData is the normalized extraction result for a list page. It is treated
// as immutable once the fetcher has built it.
type FeedData struct {
	// Items are kept in the order the extraction API listed them
	Items []Item `json:"items"`

	// Title is the page title reported upstream
	Title string `json:"title"`

	// PageURL is the canonical URL of the page
	PageURL string `json:"pageUrl"`

	// Icon is the page favicon, if any
	Icon string `json:"icon,omitempty"`

	// RSSURL is a native feed the page already advertises, if any
	RSSURL string `json:"rss_url,omitempty"`

	// FetchedAt is when the page was extracted. Rendered feeds use it as
	// their build date so a cached entry always renders the same bytes.
	FetchedAt time.Time `json:"fetchedAt"`
}

// FeedTitle returns the title to publish, falling back to the page URL
func (f *FeedData) FeedTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return f.PageURL
}

// PublishableItems returns the valid items newest first. Extraction lists
// items oldest first, feeds list them newest first.
func (f *FeedData) PublishableItems() []Item {
	items := make([]Item, 0, len(f.Items))
	for i := len(f.Items) - 1; i >= 0; i-- {
		if f.Items[i].IsValid() {
			items = append(items, f.Items[i])
		}
	}
	return items
}
