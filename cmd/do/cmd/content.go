package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/unchartedsh/site/internal/app"
	"github.com/unchartedsh/site/internal/blog"
	"github.com/unchartedsh/site/internal/config"
	"github.com/unchartedsh/site/internal/content"
	"github.com/unchartedsh/site/internal/logger"
)

// loadApp builds the app for one-shot commands. Watchers and scheduled jobs
// are never started here.
func loadApp(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	cfg.ContentWatch = false
	cfg.FeedPublishInterval = 0
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, cfg.AppEnv)
	return app.New(ctx, cfg)
}

func loadSnapshot(ctx context.Context) (*app.App, *blog.Snapshot, error) {
	a, err := loadApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	snap, err := a.BlogService.Snapshot()
	if err != nil {
		_ = a.Close()
		return nil, nil, err
	}
	return a, snap, nil
}

func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the content tree and report posts, sub-posts, authors and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				var docErr *content.DocumentError
				if errors.As(err, &docErr) {
					fmt.Fprintln(cmd.ErrOrStderr(), "invalid content file:", docErr.Path)
				}
				return err
			}
			defer a.Close()

			top := len(snap.TopLevelPosts())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "build     %s\n", snap.BuildID)
			fmt.Fprintf(out, "posts     %d\n", top)
			fmt.Fprintf(out, "subposts  %d\n", len(snap.All())-top)
			fmt.Fprintf(out, "authors   %d\n", len(snap.Authors()))
			fmt.Fprintf(out, "tags      %d\n", len(snap.TagCounts()))
			return nil
		},
	}
}

func TagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Print tag counts, most used first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tc := range snap.TagCounts() {
				fmt.Fprintf(tw, "%s\t%d\n", tc.Tag, tc.Count)
			}
			return tw.Flush()
		},
	}
}

func FeedCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Render the RSS feed to stdout or a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			body, err := a.FeedService.Generate(snap.TopLevelPosts(), time.Now())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			return writeFile(output, body)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the feed to this file instead of stdout")
	return cmd
}

func PublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Upload rss.xml and sitemap.xml to the configured S3 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if a.PublishService == nil {
				return fmt.Errorf("publishing is not configured: set S3_BUCKET")
			}
			if err := a.PublishService.Publish(cmd.Context()); err != nil {
				return err
			}
			for _, key := range a.PublishService.Published() {
				fmt.Fprintln(cmd.OutOrStdout(), "published", key)
			}
			return nil
		},
	}
}

func writeFile(path string, body []byte) error {
	return os.WriteFile(path, body, 0o644)
}
