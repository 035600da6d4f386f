package matcher

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/khrees2412/hirematch/internal/criteria"
	"github.com/khrees2412/hirematch/pkg/models"
)

// RankOptions tunes a ranking pass
type RankOptions struct {
	// Workers bounds concurrent scoring; 0 means GOMAXPROCS.
	Workers int
}

// Ranked pairs a candidate with its result
type Ranked struct {
	Candidate *models.Candidate
	Result    MatchResult
}

// Rank scores every candidate concurrently and sorts by score, highest first.
// Candidates with equal scores keep their input order. Nil entries are
// skipped. The only error is ctx being cancelled before scoring finishes.
func (m *Matcher) Rank(ctx context.Context, c criteria.SearchCriteria, candidates []*models.Candidate, opts RankOptions) ([]Ranked, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	scored := make([]*Ranked, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cand := range candidates {
		if cand == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = &Ranked{Candidate: cand, Result: m.Score(c, cand)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, r := range scored {
		if r != nil {
			ranked = append(ranked, *r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})

	return ranked, nil
}

// Rank uses the default weight table.
func Rank(ctx context.Context, c criteria.SearchCriteria, candidates []*models.Candidate, opts RankOptions) ([]Ranked, error) {
	return defaultMatcher.Rank(ctx, c, candidates, opts)
}
