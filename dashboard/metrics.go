package dashboard

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements dashboard metrics using Prometheus. Each Metrics
// has its own registry so that several dashboards may exist in one
// process.
type Metrics struct {
	registry *prometheus.Registry

	// Counters
	episodes       prometheus.Counter
	adviceRequests prometheus.Counter
	feedback       prometheus.Counter
	resets         prometheus.Counter

	// Gauges
	lastReward prometheus.Gauge
	states     prometheus.Gauge
}

// NewMetrics creates a new Prometheus metrics collector
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		episodes: factory.NewCounter(prometheus.CounterOpts{
			Name: "playground_episodes_total",
			Help: "Total number of training episodes run",
		}),
		adviceRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "playground_advice_requests_total",
			Help: "Total number of episodes which ended with a question",
		}),
		feedback: factory.NewCounter(prometheus.CounterOpts{
			Name: "playground_feedback_total",
			Help: "Total number of advice messages sent by a human",
		}),
		resets: factory.NewCounter(prometheus.CounterOpts{
			Name: "playground_resets_total",
			Help: "Total number of environment and agent resets",
		}),
		lastReward: factory.NewGauge(prometheus.GaugeOpts{
			Name: "playground_last_episode_reward",
			Help: "Total reward of the most recent episode",
		}),
		states: factory.NewGauge(prometheus.GaugeOpts{
			Name: "playground_qtable_states",
			Help: "Number of states in the agent's action value table",
		}),
	}
}

// ObserveEpisode records a finished training episode
func (m *Metrics) ObserveEpisode(e Episode) {
	m.episodes.Inc()
	m.lastReward.Set(e.Reward)
	if e.Question != "" {
		m.adviceRequests.Inc()
	}
}

// ObserveFeedback records advice sent by a human
func (m *Metrics) ObserveFeedback() {
	m.feedback.Inc()
}

// ObserveReset records a reset of the session
func (m *Metrics) ObserveReset() {
	m.resets.Inc()
	m.lastReward.Set(0)
	m.states.Set(0)
}

// SetStates records the size of the agent's action value table
func (m *Metrics) SetStates(n int) {
	m.states.Set(float64(n))
}

// Handler returns the HTTP handler serving the metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
