// ABOUTME: Item domain model represents one entry of an extracted list page
// ABOUTME: Provides validation to decide whether the entry can be published

package domain

import "time"

// Item represents an individual entry in FeedData
type Item struct {
	// Title is the item's headline
	Title string `json:"title"`

	// Link is the URL to the full article
	Link string `json:"link"`

	// Summary is the short description shown in readers
	Summary string `json:"summary,omitempty"`

	// Author is the byline, if the page shows one
	Author string `json:"author,omitempty"`

	// Published is when the item was published, if known
	Published *time.Time `json:"date,omitempty"`

	// Image is a thumbnail URL
	Image string `json:"image,omitempty"`
}

// IsValid checks if the item has all fields required for publishing
func (i *Item) IsValid() bool {
	if i.Title == "" {
		return false
	}

	if i.Link == "" {
		return false
	}

	return true
}
