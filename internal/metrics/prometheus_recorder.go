package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "site"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	cacheLookups  *prom.CounterVec
	buildDuration *prom.HistogramVec
	posts         prom.Gauge
	invalidations *prom.CounterVec
	publishes     *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the pipeline metrics on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.cacheLookups = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_total",
			Help:      "Content snapshot cache lookups by result",
		}, []string{"result"})
		pr.buildDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_build_duration_seconds",
			Help:      "Time spent loading content and building a snapshot",
			Buckets:   prom.DefBuckets,
		}, []string{"result"})
		pr.posts = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "published_posts",
			Help:      "Published posts in the current snapshot",
		})
		pr.invalidations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_invalidations_total",
			Help:      "Snapshot invalidations by source",
		}, []string{"source"})
		pr.publishes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "publish_total",
			Help:      "Feed and sitemap uploads by object and result",
		}, []string{"object", "result"})
		reg.MustRegister(pr.cacheLookups, pr.buildDuration, pr.posts, pr.invalidations, pr.publishes)
	})
	return pr
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}

func (p *PrometheusRecorder) IncSnapshotCache(r CacheResult) {
	if p == nil || p.cacheLookups == nil {
		return
	}
	p.cacheLookups.WithLabelValues(string(r)).Inc()
}

func (p *PrometheusRecorder) ObserveSnapshotBuild(d time.Duration, success bool) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.WithLabelValues(result(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetPublishedPosts(n int) {
	if p == nil || p.posts == nil {
		return
	}
	p.posts.Set(float64(n))
}

func (p *PrometheusRecorder) IncInvalidation(source string) {
	if p == nil || p.invalidations == nil {
		return
	}
	p.invalidations.WithLabelValues(source).Inc()
}

func (p *PrometheusRecorder) IncPublish(object string, success bool) {
	if p == nil || p.publishes == nil {
		return
	}
	p.publishes.WithLabelValues(object, result(success)).Inc()
}
