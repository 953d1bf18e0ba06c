// ABOUTME: Renders FeedData as RSS 2.0 or Atom documents using gorilla/feeds
// ABOUTME: Adds the self link readers use to find the generated feed again

package syndication

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"listfeeds-api/core/domain"
	"listfeeds-api/core/interfaces"
)

const (
	atomNamespace    = "http://www.w3.org/2005/Atom"
	contentNamespace = "http://purl.org/rss/1.0/modules/content/"
	imageType        = "image/jpeg"
)

// Encoder implements interfaces.FeedEncoder
type Encoder struct {
	publicURL string
	now       func() time.Time
}

// NewEncoder creates an encoder whose self links point at publicURL
func NewEncoder(publicURL string) *Encoder {
	return &Encoder{
		publicURL: strings.TrimSuffix(publicURL, "/"),
		now:       time.Now,
	}
}

// WithClock replaces the clock used when FeedData carries no fetch time
func (e *Encoder) WithClock(now func() time.Time) *Encoder {
	e.now = now
	return e
}

// Encode renders data in the given format. Items are emitted newest first
// and items without a title or link are left out.
func (e *Encoder) Encode(data *domain.FeedData, format interfaces.Format) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("no feed data to encode")
	}

	feed := e.buildFeed(data, format)
	selfLink := e.selfLink(data.PageURL, format)

	var doc feeds.XmlFeed
	switch format {
	case interfaces.FormatRSS:
		doc = &rssDocument{
			Version:          "2.0",
			ContentNamespace: contentNamespace,
			AtomNamespace:    atomNamespace,
			Channel: &rssChannel{
				SelfLink: rssSelfLink{Href: selfLink, Rel: "self", Type: format.ContentType()},
				RssFeed:  (&feeds.Rss{Feed: feed}).RssFeed(),
			},
		}
	case interfaces.FormatAtom:
		doc = &atomDocument{
			AtomFeed: (&feeds.Atom{Feed: feed}).AtomFeed(),
			SelfLink: &feeds.AtomLink{Href: selfLink, Rel: "self", Type: format.ContentType()},
			Icon:     data.Icon,
		}
	default:
		return nil, fmt.Errorf("unsupported feed format %q", format)
	}

	out, err := feeds.ToXML(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s feed: %w", format, err)
	}
	return []byte(out), nil
}

func (e *Encoder) buildFeed(data *domain.FeedData, format interfaces.Format) *feeds.Feed {
	stamp := data.FetchedAt.UTC()
	if data.FetchedAt.IsZero() {
		stamp = e.now().UTC()
	}

	feed := &feeds.Feed{
		Title:       data.FeedTitle(),
		Link:        &feeds.Link{Href: data.PageURL, Rel: "alternate"},
		Description: data.PageURL,
		Id:          data.PageURL,
		Created:     stamp,
		Updated:     stamp,
	}

	if data.Icon != "" {
		feed.Image = &feeds.Image{Url: data.Icon, Title: feed.Title, Link: data.PageURL}
	}

	for _, it := range data.PublishableItems() {
		item := &feeds.Item{
			Title:       it.Title,
			Link:        &feeds.Link{Href: it.Link},
			Id:          it.Link,
			Description: it.Summary,
		}
		if it.Author != "" {
			item.Author = &feeds.Author{Name: it.Author}
		}
		if it.Published != nil {
			item.Created = it.Published.UTC()
		} else if format == interfaces.FormatAtom {
			// Atom entries require an updated stamp
			item.Updated = stamp
		}
		if it.Image != "" {
			item.Enclosure = &feeds.Enclosure{Url: it.Image, Length: "0", Type: imageType}
		}
		feed.Add(item)
	}

	return feed
}

func (e *Encoder) selfLink(pageURL string, format interfaces.Format) string {
	return fmt.Sprintf("%s/%s?url=%s", e.publicURL, format, url.QueryEscape(pageURL))
}

// rssDocument is gorilla's RSS root with the Atom namespace declared for
// the channel self link
type rssDocument struct {
	XMLName          xml.Name `xml:"rss"`
	Version          string   `xml:"version,attr"`
	ContentNamespace string   `xml:"xmlns:content,attr"`
	AtomNamespace    string   `xml:"xmlns:atom,attr"`
	Channel          *rssChannel
}

// FeedXml implements feeds.XmlFeed
func (d *rssDocument) FeedXml() interface{} {
	return d
}

type rssChannel struct {
	SelfLink rssSelfLink
	*feeds.RssFeed
}

type rssSelfLink struct {
	XMLName xml.Name `xml:"atom:link"`
	Href    string   `xml:"href,attr"`
	Rel     string   `xml:"rel,attr"`
	Type    string   `xml:"type,attr"`
}

// atomDocument is gorilla's Atom feed with a self link next to the
// alternate link
type atomDocument struct {
	*feeds.AtomFeed
	Icon     string `xml:"icon,omitempty"`
	SelfLink *feeds.AtomLink
}

// FeedXml implements feeds.XmlFeed
func (d *atomDocument) FeedXml() interface{} {
	return d
}
