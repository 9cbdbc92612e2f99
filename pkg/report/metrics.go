package report

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/boristopalov/gambit/pkg/core"
)

const metricsNamespace = "gambit"

// MetricsCollector turns simulation events into Prometheus metrics on a
// private registry, so several runs in one process never collide.
type MetricsCollector struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	steps       prometheus.Counter
	rewards     prometheus.Counter
	punishments prometheus.Counter
	lifespan    prometheus.Histogram
	threshold   prometheus.Gauge
}

func NewMetricsCollector() *MetricsCollector {
	c := &MetricsCollector{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Completed generations by termination reason.",
		}, []string{"reason"}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "steps_total",
			Help:      "Environment samples drawn across all generations.",
		}),
		rewards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rewards_total",
			Help:      "Reward outcomes observed by the agent.",
		}),
		punishments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "punishments_total",
			Help:      "Punishment outcomes observed by the agent.",
		}),
		lifespan: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "generation_lifespan_steps",
			Help:      "Steps survived per generation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
		threshold: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "agent_threshold",
			Help:      "Give-up threshold the agent will use next.",
		}),
	}
	c.registry.MustRegister(c.generations, c.steps, c.rewards, c.punishments, c.lifespan, c.threshold)
	return c
}

func (c *MetricsCollector) Handle(ev core.Event) error {
	switch ev.Type {
	case core.SimulationStarted:
		c.threshold.Set(float64(ev.Threshold))
	case core.GenerationEnded:
		c.generations.WithLabelValues(string(ev.Reason)).Inc()
		c.steps.Add(float64(ev.Lifespan))
		c.rewards.Add(float64(ev.Rewards))
		c.punishments.Add(float64(ev.Punishments))
		c.lifespan.Observe(float64(ev.Lifespan))
	case core.ThresholdUpdated:
		c.threshold.Set(float64(ev.Threshold))
	}
	return nil
}

// WriteTextfile writes the current metrics in the text exposition format
func (c *MetricsCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
