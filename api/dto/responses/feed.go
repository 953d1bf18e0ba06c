// ABOUTME: Response DTOs for feed-related API endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

// FeedDetailResponse summarizes the feed generated for a page
type FeedDetailResponse struct {
	Title       string `json:"title" doc:"Feed title, the page URL when the page has none"`
	Description string `json:"description" doc:"Feed description"`
	Link        string `json:"link" doc:"Canonical URL of the source page"`
	Icon        string `json:"icon,omitempty" doc:"Page favicon"`
	RSSURL      string `json:"rss_url,omitempty" doc:"Native feed the page already advertises"`
	FeedURL     string `json:"feed_url" doc:"URL of the generated RSS feed"`
	AtomURL     string `json:"atom_url" doc:"URL of the generated Atom feed"`
	ItemCount   int    `json:"item_count" doc:"Number of publishable items"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status       string `json:"status" doc:"Service status" example:"ok"`
	CacheBackend string `json:"cache_backend" doc:"Active cache backend" enum:"redis,memory,sqlite"`
}
