package matching

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/staffmatch/internal/staff"
)

const (
	// PreviewSuggestions is how many projects a live preview proposes.
	PreviewSuggestions = 2
	// DisplayLimit is how many ranked results are shown by default.
	DisplayLimit = 5
)

// Rank scores every employee against the project and sorts by total score,
// highest first. Ties keep their input order. Nothing is filtered out.
func Rank(p staff.Project, employees []staff.Employee) []Result {
	results := make([]Result, 0, len(employees))
	for _, e := range employees {
		results = append(results, Score(e, p))
	}

	sortByScore(results)
	return results
}

// Top returns the first n results. A non-positive n returns all of them.
func Top(results []Result, n int) []Result {
	if n <= 0 || n >= len(results) {
		return results
	}
	return results[:n]
}

// Suggest scores a single candidate against every project and returns the best n,
// one result per project. It is meant to be called again on every edit of the candidate.
func Suggest(candidate staff.Employee, projects []staff.Project, n int) []Result {
	results := make([]Result, 0, len(projects))
	for _, p := range projects {
		results = append(results, Score(candidate, p))
	}

	sortByScore(results)
	return Top(results, n)
}

// RankAll ranks every project in parallel. Each ranking is independent, so no
// coordination beyond collecting the results is needed.
func RankAll(ctx context.Context, projects []staff.Project, employees []staff.Employee) (map[string][]Result, error) {
	var mu sync.Mutex
	ranked := make(map[string][]Result, len(projects))

	g, gCtx := errgroup.WithContext(ctx)
	for _, p := range projects {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			results := Rank(p, employees)

			mu.Lock()
			ranked[p.ID] = results
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ranked, nil
}

func sortByScore(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.TotalScore, a.TotalScore)
	})
}
