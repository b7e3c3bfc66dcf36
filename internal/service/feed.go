package service

import (
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/language"

	"github.com/unchartedsh/site/internal/model"
)

const (
	FeedPath        = "rss.xml"
	FeedContentType = "application/rss+xml; charset=utf-8"
	atomNamespace   = "http://www.w3.org/2005/Atom"
)

type FeedConfig struct {
	Title       string // channel title is "<Title> Blog"
	Description string
	BlogURL     string // absolute URL of the blog index
	Locale      string
}

// FeedService renders top-level posts as an RSS 2.0 document.
type FeedService struct {
	cfg FeedConfig
}

// NewFeedService validates the locale as a BCP 47 tag and stores it in
// canonical form.
func NewFeedService(cfg FeedConfig) (*FeedService, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid feed locale %q: %w", cfg.Locale, err)
	}
	cfg.Locale = tag.String()
	cfg.BlogURL = strings.TrimSuffix(cfg.BlogURL, "/")
	return &FeedService{cfg: cfg}, nil
}

// PostURL is the canonical link of a post, also used as its guid.
func (f *FeedService) PostURL(slug string) string {
	return f.cfg.BlogURL + "/" + slug
}

// Build assembles the feed for posts. now becomes lastBuildDate.
func (f *FeedService) Build(posts []*model.BlogPost, now time.Time) model.RSS {
	blogURL := f.cfg.BlogURL

	items := make([]model.RSSItem, 0, len(posts))
	for _, p := range posts {
		link := f.PostURL(p.Slug)
		item := model.RSSItem{
			Title:       model.CDATA{Text: xmlText(p.Title)},
			Description: model.CDATA{Text: xmlText(p.Description)},
			Link:        link,
			GUID:        model.RSSGUID{IsPermaLink: "true", Value: link},
		}
		if !p.Date.IsZero() {
			item.PubDate = p.Date.UTC().Format(http.TimeFormat)
		}
		items = append(items, item)
	}

	return model.RSS{
		Version: "2.0",
		AtomNS:  atomNamespace,
		Channel: model.RSSChannel{
			Title:       xmlText(f.cfg.Title + " Blog"),
			Description: xmlText(f.cfg.Description),
			Link:        blogURL,
			AtomLink: model.AtomLink{
				Href: blogURL + "/" + FeedPath,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Language:      f.cfg.Locale,
			LastBuildDate: now.UTC().Format(http.TimeFormat),
			Items:         items,
		},
	}
}

// Generate renders the feed document including the XML declaration.
func (f *FeedService) Generate(posts []*model.BlogPost, now time.Time) ([]byte, error) {
	output, err := xml.MarshalIndent(f.Build(posts, now), "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), output...), nil
}

// xmlText makes s safe for CDATA sections, which encoding/xml writes
// verbatim. Invalid UTF-8 becomes U+FFFD and characters outside the XML
// Char production are dropped.
func xmlText(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// ETag derives a strong entity tag from a rendered document.
func ETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
