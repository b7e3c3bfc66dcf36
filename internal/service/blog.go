package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/unchartedsh/site/internal/blog"
	"github.com/unchartedsh/site/internal/content"
	"github.com/unchartedsh/site/internal/logfields"
	"github.com/unchartedsh/site/internal/markdown"
	"github.com/unchartedsh/site/internal/metrics"
)

// BlogService hands out the current content snapshot. The snapshot is rebuilt
// only when the content fingerprint changes; between rebuilds every caller
// shares the same immutable value.
type BlogService struct {
	loader   *content.Loader
	parser   *markdown.Parser
	opts     blog.Options
	reload   bool
	recorder metrics.Recorder

	mu          sync.Mutex
	snap        *blog.Snapshot
	fingerprint string
	dirty       bool
}

// NewBlogService creates the service. With reload set, every Snapshot call
// re-fingerprints the content root; otherwise the first snapshot is kept
// until Invalidate is called.
func NewBlogService(loader *content.Loader, defaultAvatar string, reload bool) *BlogService {
	return &BlogService{
		loader:   loader,
		parser:   markdown.NewParser(),
		opts:     blog.Options{DefaultAvatar: defaultAvatar},
		reload:   reload,
		recorder: metrics.NoopRecorder{},
	}
}

func (s *BlogService) WithRecorder(r metrics.Recorder) *BlogService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Snapshot returns the current content snapshot, rebuilding it when the
// content on disk changed. A failed rebuild returns the error and leaves the
// previous snapshot in place for the next attempt to replace.
func (s *BlogService) Snapshot() (*blog.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && !s.dirty && !s.reload {
		s.recorder.IncSnapshotCache(metrics.CacheHit)
		return s.snap, nil
	}

	fp, err := s.loader.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("fingerprint content: %w", err)
	}
	if s.snap != nil && fp == s.fingerprint {
		s.dirty = false
		s.recorder.IncSnapshotCache(metrics.CacheHit)
		slog.Debug("content unchanged", logfields.Fingerprint(fp))
		return s.snap, nil
	}

	s.recorder.IncSnapshotCache(metrics.CacheMiss)
	start := time.Now()
	snap, err := blog.Load(s.loader, s.opts)
	elapsed := time.Since(start)
	s.recorder.ObserveSnapshotBuild(elapsed, err == nil)
	if err != nil {
		slog.Error("content load failed", logfields.Path(s.loader.ContentPath()), logfields.Error(err))
		return nil, err
	}

	s.snap = snap
	s.fingerprint = fp
	s.dirty = false
	s.recorder.SetPublishedPosts(len(snap.All()))

	slog.Info("content snapshot built",
		logfields.BuildID(snap.BuildID),
		logfields.Fingerprint(fp),
		"posts", len(snap.TopLevelPosts()),
		"subposts", len(snap.All())-len(snap.TopLevelPosts()),
		"authors", len(snap.Authors()),
		logfields.DurationMS(elapsed.Milliseconds()),
	)
	return snap, nil
}

// Invalidate makes the next Snapshot call check the content root again.
func (s *BlogService) Invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
	s.recorder.IncInvalidation("watcher")
}

// Render re-reads the post source for slug and renders it to HTML with its
// table of contents. Unknown slugs return content.ErrNotFound.
func (s *BlogService) Render(slug string) (*markdown.Document, error) {
	raw, err := s.loader.RawContent(slug)
	if err != nil {
		return nil, err
	}
	doc, err := s.parser.Render(raw)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", slug, err)
	}
	return doc, nil
}

// IsNotFound reports whether err means the requested content does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, content.ErrNotFound)
}
