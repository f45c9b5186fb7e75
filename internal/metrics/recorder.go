// Package metrics records dev server activity. Components take a Recorder
// and default to NoopRecorder; PrometheusRecorder is swapped in when
// metrics are enabled.
package metrics

import "time"

// ReloadResult labels the outcome of a manifest reload.
type ReloadResult string

const (
	ReloadSuccess ReloadResult = "success"
	ReloadFailed  ReloadResult = "failed"
)

// Recorder defines observability hooks for the dev server.
type Recorder interface {
	// ObserveRender records one assembled document.
	ObserveRender(d time.Duration, size int)
	// IncRequest counts a served request by status code.
	IncRequest(status int)
	// IncReload counts manifest reloads by outcome.
	IncReload(result ReloadResult)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRender(time.Duration, int) {}
func (NoopRecorder) IncRequest(int)                   {}
func (NoopRecorder) IncReload(ReloadResult)           {}

var _ Recorder = NoopRecorder{}
