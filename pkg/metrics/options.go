package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithPrometheusRegistry registers the collectors on registry instead of the
// default registerer. Tests use it to get an isolated registry.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// RefreshInterval is how often system gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// DefaultRefreshInterval exposes the global manager's refresh interval.
func DefaultRefreshInterval() time.Duration { return globalManager.refreshInterval }
