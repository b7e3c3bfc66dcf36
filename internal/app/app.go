package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unchartedsh/site/internal/config"
	"github.com/unchartedsh/site/internal/content"
	"github.com/unchartedsh/site/internal/logfields"
	"github.com/unchartedsh/site/internal/metrics"
	"github.com/unchartedsh/site/internal/scheduler"
	"github.com/unchartedsh/site/internal/service"
	"github.com/unchartedsh/site/internal/storage"
	"github.com/unchartedsh/site/internal/watcher"
)

const publishJobName = "publish-feed"

type App struct {
	Cfg            *config.Config
	Registry       *prometheus.Registry // nil unless metrics are enabled
	Loader         *content.Loader
	BlogService    *service.BlogService
	FeedService    *service.FeedService
	SitemapService *service.SitemapService
	PublishService *service.PublishService // nil unless publishing is configured

	scheduler *scheduler.Scheduler
	watcher   *watcher.ContentWatcher
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	loader := content.NewLoader(cfg.ContentPath, cfg.BlogDefaultAvatar)
	blogService := service.NewBlogService(loader, cfg.BlogDefaultAvatar, cfg.ContentReload).WithRecorder(recorder)

	feedService, err := service.NewFeedService(service.FeedConfig{
		Title:       cfg.BlogTitle,
		Description: cfg.BlogDescription,
		BlogURL:     cfg.BlogURL(""),
		Locale:      cfg.BlogLocale,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize feed: %w", err)
	}
	sitemapService := service.NewSitemapService(cfg.AppURL, cfg.BlogBasePath)

	a := &App{
		Cfg:            cfg,
		Registry:       registry,
		Loader:         loader,
		BlogService:    blogService,
		FeedService:    feedService,
		SitemapService: sitemapService,
	}

	if cfg.PublishEnabled() {
		store, err := storage.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		a.PublishService = service.NewPublishService(blogService, feedService, sitemapService, store, cfg.BlogBasePath).
			WithRecorder(recorder)
	}

	if a.PublishService != nil && cfg.FeedPublishInterval > 0 {
		sched, err := scheduler.New()
		if err != nil {
			return nil, err
		}
		_, err = sched.Every(publishJobName, cfg.FeedPublishInterval, a.PublishService.Publish)
		if err != nil {
			_ = sched.Stop()
			return nil, err
		}
		a.scheduler = sched
	}

	if cfg.ContentWatch {
		w, err := watcher.New(cfg.ContentPath, watcher.DefaultDebounce, blogService.Invalidate)
		if err != nil {
			a.closeScheduler()
			return nil, fmt.Errorf("failed to initialize content watcher: %w", err)
		}
		a.watcher = w
	}

	return a, nil
}

// Start launches the background workers. A content watcher that cannot
// start is logged and skipped; the site still serves from the fingerprint
// cache.
func (a *App) Start(ctx context.Context) {
	if a.watcher != nil {
		err := a.watcher.Start(ctx)
		if err != nil {
			slog.Warn("content watcher disabled", logfields.Path(a.Cfg.ContentPath), logfields.Error(err))
			a.watcher = nil
		}
	}
	if a.scheduler != nil {
		a.scheduler.Start(ctx)
	}
}

func (a *App) closeScheduler() error {
	if a.scheduler == nil {
		return nil
	}
	err := a.scheduler.Stop()
	a.scheduler = nil
	return err
}

func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Stop())
		a.watcher = nil
	}
	errs = append(errs, a.closeScheduler())
	return errors.Join(errs...)
}
