package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/staffmatch/internal/matching"
)

type minScoreFilter struct {
	minimum int
	enabled bool
	reason  string
}

// NewMinScore creates a filter that drops results below the given total score.
// A non-positive minimum disables the step.
func NewMinScore(minimum int) Filter {
	return &minScoreFilter{minimum: minimum, enabled: minimum > 0}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *minScoreFilter) IsEnabled() bool { return f.enabled }

func (f *minScoreFilter) Validate() error {
	if f.minimum > 100 {
		return fmt.Errorf("minimum score %d is above the maximum of 100", f.minimum)
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, results []matching.Result) ([]matching.Result, Step, error) {
	kept := keep(results, func(r matching.Result) bool { return r.TotalScore >= f.minimum })
	return kept, Step{Initial: len(results), Dropped: len(results) - len(kept), Left: len(kept)}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"minimum": strconv.Itoa(f.minimum)},
	}
}
