// Package metrics provides observability hooks for manifest builds, document
// lookups, rendering and HTTP traffic.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	set, err := docs.NewSet(cfg, root, ".txt", docs.WithRecorder(recorder))
//
// When metrics are enabled the CLI swaps in a PrometheusRecorder and mounts
// HTTPHandler on the admin server.
package metrics
