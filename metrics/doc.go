// Package metrics exports Prometheus metrics about URL parsing.
//
// A Recorder is installed as the Observer of a weburl.Settings value and
// counts parses by scheme and result, validation errors by kind, and fatal
// errors by kind. Metrics can be written to a textfile or served over HTTP.
//
//	rec := metrics.NewRecorder()
//	s := &weburl.Settings{Observer: rec}
//	// ... parse ...
//	_ = rec.WriteTextfile("weburl.prom")
package metrics
