package service

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unchartedsh/site/internal/model"
)

func newFeed(t *testing.T) *FeedService {
	t.Helper()
	f, err := NewFeedService(FeedConfig{
		Title:       "Uncharted",
		Description: "Stories from the road",
		BlogURL:     "https://uncharted.sh/resources/blog/",
		Locale:      "en-us",
	})
	require.NoError(t, err)
	return f
}

type parsedFeed struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel struct {
		Title         string `xml:"title"`
		Link          string `xml:"link"`
		Language      string `xml:"language"`
		LastBuildDate string `xml:"lastBuildDate"`
		AtomLink      struct {
			Href string `xml:"href,attr"`
			Rel  string `xml:"rel,attr"`
		} `xml:"http://www.w3.org/2005/Atom link"`
		Items []struct {
			Title       string `xml:"title"`
			Description string `xml:"description"`
			PubDate     string `xml:"pubDate"`
			Link        string `xml:"link"`
			GUID        struct {
				IsPermaLink string `xml:"isPermaLink,attr"`
				Value       string `xml:",chardata"`
			} `xml:"guid"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestFeedGenerate(t *testing.T) {
	f := newFeed(t)
	posts := []*model.BlogPost{
		{Slug: "tokyo", Title: "Tokyo <Nights> & Days", Description: "Ramen, rail & <b>neon</b>", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "undated", Title: "Undated"},
	}
	now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	body, err := f.Generate(posts, now)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), `<?xml version="1.0" encoding="UTF-8"?>`))
	require.Contains(t, string(body), "<![CDATA[Tokyo <Nights> & Days]]>")
	require.Contains(t, string(body), `xmlns:atom="http://www.w3.org/2005/Atom"`)

	var parsed parsedFeed
	require.NoError(t, xml.Unmarshal(body, &parsed))
	require.Equal(t, "2.0", parsed.Version)

	ch := parsed.Channel
	require.Equal(t, "Uncharted Blog", ch.Title)
	require.Equal(t, "https://uncharted.sh/resources/blog", ch.Link)
	require.Equal(t, "en-US", ch.Language)
	require.Equal(t, "Sat, 01 Jun 2024 10:30:00 GMT", ch.LastBuildDate)
	require.Equal(t, "https://uncharted.sh/resources/blog/rss.xml", ch.AtomLink.Href)
	require.Equal(t, "self", ch.AtomLink.Rel)

	require.Len(t, ch.Items, 2)
	item := ch.Items[0]
	require.Equal(t, "Tokyo <Nights> & Days", item.Title)
	require.Equal(t, "Ramen, rail & <b>neon</b>", item.Description)
	require.Equal(t, "Fri, 01 Mar 2024 00:00:00 GMT", item.PubDate)
	require.Equal(t, "https://uncharted.sh/resources/blog/tokyo", item.Link)
	require.Equal(t, item.Link, item.GUID.Value)
	require.Equal(t, "true", item.GUID.IsPermaLink)

	require.Empty(t, ch.Items[1].PubDate)
}

func TestFeedStripsCharactersXMLCannotCarry(t *testing.T) {
	posts := []*model.BlogPost{
		{Slug: "bell", Title: "bell \x07 char", Description: "bad utf8 \xff here"},
		{Slug: "cdata", Title: "a ]]> b", Description: "tab\tand\nnewline"},
	}

	body, err := newFeed(t).Generate(posts, time.Now())
	require.NoError(t, err)

	var parsed parsedFeed
	require.NoError(t, xml.Unmarshal(body, &parsed))
	items := parsed.Channel.Items
	require.Len(t, items, 2)
	require.Equal(t, "bell  char", items[0].Title)
	require.Equal(t, "bad utf8 \uFFFD here", items[0].Description)
	require.Equal(t, "a ]]> b", items[1].Title)
	require.Equal(t, "tab\tand\nnewline", items[1].Description)
}

func TestFeedEmpty(t *testing.T) {
	body, err := newFeed(t).Generate(nil, time.Now())
	require.NoError(t, err)

	var parsed parsedFeed
	require.NoError(t, xml.Unmarshal(body, &parsed))
	require.Empty(t, parsed.Channel.Items)
}

func TestFeedRejectsBadLocale(t *testing.T) {
	_, err := NewFeedService(FeedConfig{Locale: "not a locale!"})
	require.Error(t, err)
}

func TestETag(t *testing.T) {
	a := ETag([]byte("one"))
	require.Equal(t, a, ETag([]byte("one")))
	require.NotEqual(t, a, ETag([]byte("two")))
	require.True(t, strings.HasPrefix(a, `"`))
	require.Len(t, a, 34)
}
