package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/unchartedsh/site/internal/logfields"
	"github.com/unchartedsh/site/internal/metrics"
	"github.com/unchartedsh/site/internal/storage"
)

// PublishService uploads the generated feed and sitemap to object storage.
type PublishService struct {
	blog     *BlogService
	feed     *FeedService
	sitemap  *SitemapService
	store    storage.Storage
	prefix   string
	recorder metrics.Recorder
	now      func() time.Time
}

// NewPublishService publishes under prefix, typically the blog base path.
// Surrounding slashes are dropped so object keys stay relative.
func NewPublishService(blog *BlogService, feed *FeedService, sitemap *SitemapService, store storage.Storage, prefix string) *PublishService {
	return &PublishService{
		blog:     blog,
		feed:     feed,
		sitemap:  sitemap,
		store:    store,
		prefix:   strings.Trim(prefix, "/"),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

func (p *PublishService) WithRecorder(r metrics.Recorder) *PublishService {
	if r != nil {
		p.recorder = r
	}
	return p
}

// Published lists the object keys Publish writes.
func (p *PublishService) Published() []string {
	return []string{p.key(FeedPath), SitemapPath}
}

func (p *PublishService) key(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "/" + name
}

// Publish renders the feed and sitemap from the current snapshot and uploads
// both. The snapshot must build; broken content is never published.
func (p *PublishService) Publish(ctx context.Context) error {
	snap, err := p.blog.Snapshot()
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}
	now := p.now()

	feed, err := p.feed.Generate(snap.TopLevelPosts(), now)
	if err != nil {
		return fmt.Errorf("generate feed: %w", err)
	}
	sitemap, err := p.sitemap.Generate(snap, now)
	if err != nil {
		return fmt.Errorf("generate sitemap: %w", err)
	}

	objects := []struct {
		key         string
		body        []byte
		contentType string
	}{
		{p.key(FeedPath), feed, FeedContentType},
		{SitemapPath, sitemap, SitemapContentType},
	}
	for _, o := range objects {
		err := p.store.Save(ctx, o.key, bytes.NewReader(o.body), o.contentType)
		p.recorder.IncPublish(o.key, err == nil)
		if err != nil {
			return fmt.Errorf("publish %s: %w", o.key, err)
		}
		slog.Info("published", logfields.Key(o.key), logfields.BuildID(snap.BuildID), "url", p.store.URL(o.key))
	}
	return nil
}
