package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/weburl"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultRepaired = "repaired"
	ResultFatal    = "fatal"
)

// Recorder counts parse outcomes. It implements weburl.Observer and is safe
// for concurrent use.
type Recorder struct {
	registry *prometheus.Registry
	log      *logutil.ComponentLogger

	parseTotal       *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	fatalErrors      *prometheus.CounterVec
	errorsPerParse   prometheus.Histogram
}

var _ weburl.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		log:      logutil.NewLogger("metrics"),
		parseTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weburl_parse_total",
				Help: "Total number of URL parses",
			},
			[]string{"scheme", "result"},
		),
		validationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weburl_validation_errors_total",
				Help: "Non-fatal validation errors repaired while parsing",
			},
			[]string{"kind"},
		),
		fatalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weburl_parse_failures_total",
				Help: "Parses aborted by a fatal error",
			},
			[]string{"kind"},
		),
		errorsPerParse: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "weburl_validation_errors_per_parse",
				Help:    "Number of validation errors recorded per parse",
				Buckets: []float64{0, 1, 2, 4, 8, 16},
			},
		),
	}
}

// ObserveParse records one parse outcome.
func (r *Recorder) ObserveParse(o weburl.Outcome) {
	result := ResultOK
	switch {
	case o.Fatal != nil:
		result = ResultFatal
		r.fatalErrors.WithLabelValues(o.Fatal.Kind.String()).Inc()
	case len(o.Errors) > 0:
		result = ResultRepaired
	}

	r.parseTotal.WithLabelValues(schemeLabel(o.Scheme), result).Inc()
	r.errorsPerParse.Observe(float64(len(o.Errors)))
	for _, e := range o.Errors {
		r.validationErrors.WithLabelValues(e.Kind.String()).Inc()
	}
}

// schemeLabel keeps label cardinality bounded: special schemes are reported
// by name, everything else as "other".
func schemeLabel(scheme string) string {
	switch {
	case scheme == "":
		return "none"
	case weburl.IsSpecialScheme(scheme):
		return scheme
	default:
		return "other"
	}
}

// Registry returns the registry the recorder's collectors live in.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	r.log.Debug("metrics written", "path", path)
	return nil
}

// Handler serves the recorder's metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// CreateMetricsServer creates a configured HTTP server exposing r on /metrics.
func CreateMetricsServer(port int, r *Recorder) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
