package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncSnapshotCache(CacheHit)
	pr.IncSnapshotCache(CacheHit)
	pr.IncSnapshotCache(CacheMiss)
	pr.ObserveSnapshotBuild(150*time.Millisecond, true)
	pr.SetPublishedPosts(12)
	pr.IncInvalidation("watcher")
	pr.IncPublish("rss.xml", false)

	require.Equal(t, 2.0, testutil.ToFloat64(pr.cacheLookups.WithLabelValues("hit")))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.cacheLookups.WithLabelValues("miss")))
	require.Equal(t, 12.0, testutil.ToFloat64(pr.posts))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.publishes.WithLabelValues("rss.xml", "failed")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetPublishedPosts(3)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "site_published_posts 3")
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncSnapshotCache(CacheHit)
	pr.ObserveSnapshotBuild(time.Second, false)

	var r Recorder = NoopRecorder{}
	r.IncPublish("sitemap.xml", true)
}
