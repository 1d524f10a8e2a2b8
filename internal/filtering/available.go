package filtering

import (
	"context"

	"github.com/spigell/staffmatch/internal/matching"
)

type availableFilter struct {
	enabled bool
	reason  string
}

// NewAvailableOnly creates a filter that drops employees who are not available.
func NewAvailableOnly(enabled bool) Filter {
	return &availableFilter{enabled: enabled}
}

func (f *availableFilter) Name() string { return "available_only" }

func (f *availableFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *availableFilter) IsEnabled() bool { return f.enabled }

func (f *availableFilter) Validate() error { return nil }

func (f *availableFilter) Apply(_ context.Context, results []matching.Result) ([]matching.Result, Step, error) {
	kept := keep(results, func(r matching.Result) bool { return r.Employee.Available })
	return kept, Step{Initial: len(results), Dropped: len(results) - len(kept), Left: len(kept)}, nil
}

func (f *availableFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}
