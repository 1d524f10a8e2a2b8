package filtering

import (
	"context"
	"strconv"

	"github.com/spigell/staffmatch/internal/matching"
)

type limitFilter struct {
	limit   int
	enabled bool
	reason  string
}

// NewLimit keeps only the first n results. Place it last in the pipeline.
func NewLimit(n int) Filter {
	return &limitFilter{limit: n, enabled: n > 0}
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *limitFilter) IsEnabled() bool { return f.enabled }

func (f *limitFilter) Validate() error { return nil }

func (f *limitFilter) Apply(_ context.Context, results []matching.Result) ([]matching.Result, Step, error) {
	kept := matching.Top(results, f.limit)
	return kept, Step{Initial: len(results), Dropped: len(results) - len(kept), Left: len(kept)}, nil
}

func (f *limitFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"limit": strconv.Itoa(f.limit)},
	}
}
