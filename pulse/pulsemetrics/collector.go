// Package pulsemetrics exports a ReactiveSystem's counters to Prometheus.
package pulsemetrics

import (
	"github.com/delaneyj/pulse/pulse"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector reads pulse.Stats on every scrape. Stats is backed by atomics so
// scrapes may run concurrently with the goroutine driving the system.
type Collector struct {
	rs *pulse.ReactiveSystem

	nodes       *prometheus.Desc
	pending     *prometheus.Desc
	flushes     *prometheus.Desc
	passes      *prometheus.Desc
	effectRuns  *prometheus.Desc
	recomputes  *prometheus.Desc
	rerunErrors *prometheus.Desc
	cycles      *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(rs *pulse.ReactiveSystem, namespace string, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pulse", name), help, nil, constLabels)
	}
	return &Collector{
		rs:          rs,
		nodes:       desc("nodes", "Nodes currently linked into the dependency graph."),
		pending:     desc("pending_effects", "Effects waiting in the flush queue."),
		flushes:     desc("flushes_total", "Completed effect queue drains."),
		passes:      desc("flush_passes_total", "Passes over the effect queue."),
		effectRuns:  desc("effect_runs_total", "Effect body executions, setup runs included."),
		recomputes:  desc("recomputes_total", "Computed getter executions."),
		rerunErrors: desc("rerun_errors_total", "Effect re-runs that returned an error or panicked."),
		cycles:      desc("cycles_total", "Flushes aborted as feedback loops."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodes
	ch <- c.pending
	ch <- c.flushes
	ch <- c.passes
	ch <- c.effectRuns
	ch <- c.recomputes
	ch <- c.rerunErrors
	ch <- c.cycles
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.rs.Stats()
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(s.Nodes))
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(s.PendingEffects))
	ch <- prometheus.MustNewConstMetric(c.flushes, prometheus.CounterValue, float64(s.Flushes))
	ch <- prometheus.MustNewConstMetric(c.passes, prometheus.CounterValue, float64(s.FlushPasses))
	ch <- prometheus.MustNewConstMetric(c.effectRuns, prometheus.CounterValue, float64(s.EffectRuns))
	ch <- prometheus.MustNewConstMetric(c.recomputes, prometheus.CounterValue, float64(s.Recomputes))
	ch <- prometheus.MustNewConstMetric(c.rerunErrors, prometheus.CounterValue, float64(s.RerunErrors))
	ch <- prometheus.MustNewConstMetric(c.cycles, prometheus.CounterValue, float64(s.Cycles))
}
