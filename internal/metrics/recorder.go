package metrics

import "time"

// LookupResult enumerates document lookup outcomes for counters.
type LookupResult string

const (
	LookupFound    LookupResult = "found"
	LookupNotFound LookupResult = "not_found"
	LookupError    LookupResult = "error"
)

// Recorder defines observability hooks for the docs site. All methods must be
// safe for concurrent use.
type Recorder interface {
	ObserveManifestBuild(set string, d time.Duration, documents int)
	ObserveRenderDuration(set string, d time.Duration)
	IncLookupResult(set string, result LookupResult)
	ObserveHTTPRequest(route string, status int, d time.Duration)
	IncContentChange()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveManifestBuild(string, time.Duration, int) {}
func (NoopRecorder) ObserveRenderDuration(string, time.Duration)     {}
func (NoopRecorder) IncLookupResult(string, LookupResult)            {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration)   {}
func (NoopRecorder) IncContentChange()                               {}
