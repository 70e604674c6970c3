// Package metrics exposes game activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/davemolk/countryguessr/internal/registry"
)

// Set holds the counters the game service increments while sessions run
type Set struct {
	// SessionsStarted counts sessions that entered the playing state
	SessionsStarted prometheus.Counter

	// SessionsFinished counts terminal sessions, labeled by end reason
	SessionsFinished *prometheus.CounterVec

	// RoundsPlayed counts completed rounds across all sessions
	RoundsPlayed prometheus.Counter

	// GuessesEvaluated counts messages run through the matcher
	GuessesEvaluated prometheus.Counter
}

// NewSet creates and registers the counter set
func NewSet(reg prometheus.Registerer) *Set {
	s := &Set{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "countryguessr_sessions_started_total",
			Help: "Game sessions started.",
		}),
		SessionsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "countryguessr_sessions_finished_total",
			Help: "Game sessions finished, by end reason.",
		}, []string{"reason"}),
		RoundsPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "countryguessr_rounds_played_total",
			Help: "Rounds played across all sessions.",
		}),
		GuessesEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "countryguessr_guesses_evaluated_total",
			Help: "Messages evaluated by the matcher.",
		}),
	}

	reg.MustRegister(s.SessionsStarted, s.SessionsFinished, s.RoundsPlayed, s.GuessesEvaluated)
	return s
}

// registryCollector reports the live session count straight off the registry
type registryCollector struct {
	registry *registry.Registry
	desc     *prometheus.Desc
}

// NewRegistryCollector creates a collector exposing the active session gauge
func NewRegistryCollector(r *registry.Registry) prometheus.Collector {
	return &registryCollector{
		registry: r,
		desc: prometheus.NewDesc(
			"countryguessr_active_sessions",
			"Game sessions currently playing.",
			nil, nil,
		),
	}
}

func (c *registryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *registryCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.registry.Len()))
}
