package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/oracleops/oracle"
)

// AdapterCheckerConfig configures the per-adapter health checker.
type AdapterCheckerConfig struct {
	// DegradedErrorRate is the error-rate percentage at or above which
	// a reachable provider is reported as degraded rather than healthy.
	// Default: 25
	DegradedErrorRate float64
}

// AdapterChecker reports the health of one registered adapter by
// probing its provider and inspecting its running error rate.
type AdapterChecker struct {
	adapter *oracle.Adapter
	config  AdapterCheckerConfig
}

// NewAdapterChecker creates a checker for the given adapter.
func NewAdapterChecker(adapter *oracle.Adapter, config ...AdapterCheckerConfig) *AdapterChecker {
	cfg := AdapterCheckerConfig{DegradedErrorRate: 25}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.DegradedErrorRate <= 0 {
			cfg.DegradedErrorRate = 25
		}
	}
	return &AdapterChecker{adapter: adapter, config: cfg}
}

// Name returns the checker name, prefixed so aggregated output groups
// provider checks together.
func (c *AdapterChecker) Name() string {
	return "provider:" + c.adapter.Name()
}

// Check probes the provider and grades the outcome.
func (c *AdapterChecker) Check(ctx context.Context) Result {
	hs := c.adapter.HealthStatus(ctx)

	if !hs.Healthy {
		msg := "probe failed"
		if hs.LastError != "" {
			msg = hs.LastError
		}
		return Unhealthy(msg, ErrCheckFailed).
			WithProviderStats(hs.ResponseTimeMs, hs.ErrorRate, hs.UptimePercentage)
	}

	if hs.ErrorRate >= c.config.DegradedErrorRate {
		return Degraded(fmt.Sprintf("error rate %.1f%%", hs.ErrorRate)).
			WithProviderStats(hs.ResponseTimeMs, hs.ErrorRate, hs.UptimePercentage)
	}

	return Healthy("provider reachable").
		WithProviderStats(hs.ResponseTimeMs, hs.ErrorRate, hs.UptimePercentage)
}

// RegistryChecker reports composite health across every adapter
// currently registered. Adapters registered after construction are
// picked up automatically since the registry is consulted per check.
type RegistryChecker struct {
	registry *oracle.Registry
	config   AdapterCheckerConfig
}

// NewRegistryChecker creates a checker over the registry's adapters.
func NewRegistryChecker(registry *oracle.Registry, config ...AdapterCheckerConfig) *RegistryChecker {
	cfg := AdapterCheckerConfig{DegradedErrorRate: 25}
	if len(config) > 0 {
		cfg = config[0]
	}
	return &RegistryChecker{registry: registry, config: cfg}
}

func (c *RegistryChecker) Name() string {
	return "providers"
}

// Check probes every registered adapter. One unreachable provider
// degrades the composite; all providers unreachable makes it unhealthy.
func (c *RegistryChecker) Check(ctx context.Context) Result {
	descriptors := c.registry.Descriptors()
	if len(descriptors) == 0 {
		return Degraded("no providers registered")
	}

	details := make(map[string]any, len(descriptors))
	unhealthy := 0
	for _, d := range descriptors {
		adapter := c.registry.Adapter(d.Name)
		if adapter == nil {
			continue
		}
		res := NewAdapterChecker(adapter, c.config).Check(ctx)
		details[d.Name] = res.Status.String()
		if res.Status == StatusUnhealthy {
			unhealthy++
		}
	}

	switch {
	case unhealthy == len(descriptors):
		return Unhealthy("all providers unreachable", ErrCheckFailed).WithDetails(details)
	case unhealthy > 0:
		return Degraded(fmt.Sprintf("%d of %d providers unreachable", unhealthy, len(descriptors))).WithDetails(details)
	default:
		return Healthy("all providers reachable").WithDetails(details)
	}
}
