package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/common/expfmt"

	"github.com/psantana5/agentdeco/internal/observe"
)

// Recorder collects results in call order and feeds the metrics.
// Not safe for concurrent use; the program runs on one goroutine.
type Recorder struct {
	metrics *Metrics
	results []*Result
	kind    string
	path    string
}

// NewRecorder creates a recorder backed by fresh metrics
func NewRecorder() *Recorder {
	return &Recorder{metrics: NewMetrics()}
}

// Metrics returns the recorder's metrics
func (rec *Recorder) Metrics() *Metrics {
	return rec.metrics
}

// Scope labels every result recorded until the next Scope call.
func (rec *Recorder) Scope(kind, path string) {
	rec.kind = kind
	rec.path = path
}

// Record stores a result and updates counters
func (rec *Recorder) Record(r *Result) {
	if r.Kind == "" {
		r.Kind = rec.kind
	}
	if r.Path == "" {
		r.Path = rec.path
	}
	rec.results = append(rec.results, r)
	rec.metrics.ObserveCall(r)
}

// Results returns recorded results in order
func (rec *Recorder) Results() []*Result {
	return rec.results
}

// RenderTable writes the results as a table
func (rec *Recorder) RenderTable(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Target", "Kind", "Path", "Wall (s)", "CPU (s)", "Outcome")
	for i, r := range rec.results {
		if err := table.Append([]string{
			fmt.Sprintf("%d", i+1),
			r.Target,
			r.Kind,
			r.Path,
			observe.Seconds(r.Wall),
			observe.Seconds(r.CPU),
			r.Outcome(),
		}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return table.Render()
}

// WriteMetrics writes the gathered metrics in Prometheus text format
func (rec *Recorder) WriteMetrics(w io.Writer) error {
	families, err := rec.metrics.Registry().Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
