// Package metrics counts fetch and submit outcomes in a private Prometheus
// registry. Nothing is served; the totals are logged when the program exits.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "terminalfeed"

// Recorder implements app.Recorder.
type Recorder struct {
	reg      *prometheus.Registry
	pages    *prometheus.CounterVec
	details  *prometheus.CounterVec
	comments *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_fetches_total",
			Help:      "Feed page fetches by result.",
		}, []string{"result"}),
		details: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_fetches_total",
			Help:      "Post detail fetches by result.",
		}, []string{"result"}),
		comments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comment_submits_total",
			Help:      "Comment submissions by result.",
		}, []string{"result"}),
	}
	r.reg.MustRegister(r.pages, r.details, r.comments)
	return r
}

func (r *Recorder) PageFetched(_ int, err error) { r.pages.WithLabelValues(result(err)).Inc() }
func (r *Recorder) DetailFetched(err error)      { r.details.WithLabelValues(result(err)).Inc() }
func (r *Recorder) CommentSubmitted(err error)   { r.comments.WithLabelValues(result(err)).Inc() }

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Summary returns every counter keyed as name{label="value"}.
func (r *Recorder) Summary() (map[string]float64, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}
	return flatten(families), nil
}

func flatten(families []*dto.MetricFamily) map[string]float64 {
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)
			key := mf.GetName()
			if len(labels) > 0 {
				key += "{" + strings.Join(labels, ",") + "}"
			}
			out[key] = m.GetCounter().GetValue()
		}
	}
	return out
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
