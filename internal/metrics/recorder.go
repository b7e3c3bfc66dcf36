// Package metrics records content pipeline and publishing metrics.
//
// Components take a Recorder and default to NoopRecorder, so metrics stay
// optional. PrometheusRecorder is wired in when METRICS_ENABLED is set and
// HTTPHandler serves its registry on /metrics.
package metrics

import "time"

// CacheResult labels snapshot cache lookups.
type CacheResult string

const (
	CacheHit  CacheResult = "hit"
	CacheMiss CacheResult = "miss"
)

type Recorder interface {
	IncSnapshotCache(result CacheResult)
	ObserveSnapshotBuild(d time.Duration, success bool)
	SetPublishedPosts(n int)
	IncInvalidation(source string)
	IncPublish(object string, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncSnapshotCache(CacheResult)              {}
func (NoopRecorder) ObserveSnapshotBuild(time.Duration, bool) {}
func (NoopRecorder) SetPublishedPosts(int)                    {}
func (NoopRecorder) IncInvalidation(string)                   {}
func (NoopRecorder) IncPublish(string, bool)                  {}
