// internal/providers/registry.go
package providers

import (
	"tracevista/internal/common/logger"
	"tracevista/internal/models"
)

// Registry holds the configured adapters in registration order. The
// order is part of the orchestrator's deterministic call schedule.
type Registry struct {
	adapters []Adapter
	logger   logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{logger: log}
}

// Register appends an adapter. Duplicate names are rejected silently
// except for a warning: the first registration wins.
func (r *Registry) Register(a Adapter) {
	for _, existing := range r.adapters {
		if existing.Name() == a.Name() {
			r.logger.Warn("duplicate provider registration ignored", map[string]interface{}{
				"provider": a.Name(),
			})
			return
		}
	}
	r.adapters = append(r.adapters, a)
	r.logger.Info("provider registered", map[string]interface{}{
		"provider": a.Name(),
	})
}

// All returns the adapters in registration order.
func (r *Registry) All() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// For returns the adapters supporting a query category, in order.
func (r *Registry) For(category models.QueryCategory) []Adapter {
	var out []Adapter
	for _, a := range r.adapters {
		if a.Supports(category) {
			out = append(out, a)
		}
	}
	return out
}

// Len reports the number of registered adapters.
func (r *Registry) Len() int {
	return len(r.adapters)
}
