package service

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unchartedsh/site/internal/blog"
	"github.com/unchartedsh/site/internal/content"
	"github.com/unchartedsh/site/internal/model"
)

type memoryStorage struct {
	objects map[string][]byte
	types   map[string]string
	fail    error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStorage) Save(_ context.Context, path string, body io.Reader, contentType string) error {
	if m.fail != nil {
		return m.fail
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[path] = b
	m.types[path] = contentType
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, path string) error {
	delete(m.objects, path)
	return nil
}

func (m *memoryStorage) URL(path string) string { return "mem://" + path }

func newPublisher(t *testing.T, root string, store *memoryStorage) (*PublishService, *testRecorder) {
	t.Helper()
	rec := newTestRecorder()
	svc := NewBlogService(content.NewLoader(root, ""), "", true)
	p := NewPublishService(svc, newFeed(t), NewSitemapService("https://uncharted.sh", "/resources/blog"), store, "/resources/blog").WithRecorder(rec)
	p.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return p, rec
}

func TestPublish(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/trip.md", postFile("Trip", "2024-01-01", "tags: [japan]\n"))
	writeFile(t, root, "blog/trip/day-1.md", postFile("Day 1", "2024-01-02", ""))
	writeFile(t, root, "blog/wip.md", postFile("WIP", "2024-01-03", "draft: true\n"))

	store := newMemoryStorage()
	p, rec := newPublisher(t, root, store)
	require.NoError(t, p.Publish(context.Background()))
	require.Equal(t, []string{"resources/blog/rss.xml", "sitemap.xml"}, p.Published())

	feed := store.objects["resources/blog/rss.xml"]
	require.NotEmpty(t, feed)
	require.Equal(t, FeedContentType, store.types["resources/blog/rss.xml"])

	var parsed parsedFeed
	require.NoError(t, xml.Unmarshal(feed, &parsed))
	require.Len(t, parsed.Channel.Items, 1)
	require.Equal(t, "Trip", parsed.Channel.Items[0].Title)

	var sitemap model.Sitemap
	require.NoError(t, xml.Unmarshal(store.objects["sitemap.xml"], &sitemap))
	var locs []string
	for _, u := range sitemap.URLs {
		locs = append(locs, u.Loc)
	}
	require.Contains(t, locs, "https://uncharted.sh/resources/blog/trip/day-1")
	require.Contains(t, locs, "https://uncharted.sh/resources/blog/tags/japan")
	require.NotContains(t, locs, "https://uncharted.sh/resources/blog/wip")

	require.True(t, rec.publishes["sitemap.xml"])
}

func TestPublishStopsOnBrokenContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blog/bad.md", "---\ntitle: x\n")

	store := newMemoryStorage()
	p, _ := newPublisher(t, root, store)
	require.Error(t, p.Publish(context.Background()))
	require.Empty(t, store.objects)
}

func TestPublishStorageError(t *testing.T) {
	store := newMemoryStorage()
	store.fail = errors.New("bucket gone")
	p, rec := newPublisher(t, t.TempDir(), store)

	err := p.Publish(context.Background())
	require.ErrorContains(t, err, "bucket gone")
	require.False(t, rec.publishes["resources/blog/rss.xml"])
}

func TestSitemapBuild(t *testing.T) {
	trip := &model.BlogPost{Slug: "trip", Title: "Trip", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Tags: []string{"food & drink"}}
	day := &model.BlogPost{Slug: "trip/day-1", Parent: "trip", Title: "Day"}
	snap, err := blog.NewSnapshot([]*model.BlogPost{trip, day}, nil, blog.Options{})
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sm := NewSitemapService("https://uncharted.sh/", "/resources/blog").Build(snap, now)

	byLoc := map[string]model.SitemapURL{}
	for _, u := range sm.URLs {
		byLoc[u.Loc] = u
	}
	require.Equal(t, "1.0", byLoc["https://uncharted.sh/"].Priority)
	require.Contains(t, byLoc, "https://uncharted.sh/resources/blog")
	require.Contains(t, byLoc, "https://uncharted.sh/resources/blog/tags")
	require.Equal(t, "2024-01-01", byLoc["https://uncharted.sh/resources/blog/trip"].LastMod)
	require.Equal(t, "2024-06-01", byLoc["https://uncharted.sh/resources/blog/trip/day-1"].LastMod)
	require.Equal(t, "0.6", byLoc["https://uncharted.sh/resources/blog/trip/day-1"].Priority)
	require.Contains(t, byLoc, "https://uncharted.sh/resources/blog/tags/food%20&%20drink")
}
