package matcher

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/hirematch/internal/criteria"
	"github.com/khrees2412/hirematch/pkg/models"
)

func TestRankSortsDescendingWithStableTies(t *testing.T) {
	c := criteria.Normalize(criteria.RawFilterInput{"skills": []string{"Go", "SQL"}})
	candidates := []*models.Candidate{
		{ID: "none-1", Skills: []string{"java"}},
		{ID: "half-1", Skills: []string{"go"}},
		{ID: "full", Skills: []string{"go", "sql"}},
		nil,
		{ID: "half-2", Skills: []string{"sql"}},
		{ID: "none-2"},
	}

	ranked, err := Rank(context.Background(), c, candidates, RankOptions{Workers: 2})
	require.NoError(t, err)

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Candidate.ID
	}
	assert.Equal(t, []string{"full", "half-1", "half-2", "none-1", "none-2"}, ids)
	assert.Equal(t, 100, ranked[0].Result.Score)
	assert.Equal(t, 50, ranked[1].Result.Score)
}

func TestRankNoCriteriaKeepsInputOrder(t *testing.T) {
	candidates := make([]*models.Candidate, 50)
	for i := range candidates {
		candidates[i] = &models.Candidate{ID: fmt.Sprintf("c%02d", i), Skills: []string{"go"}}
	}

	ranked, err := Rank(context.Background(), criteria.Normalize(nil), candidates, RankOptions{})
	require.NoError(t, err)
	require.Len(t, ranked, len(candidates))

	for i, r := range ranked {
		assert.Equal(t, 0, r.Result.Score)
		assert.Equal(t, candidates[i].ID, r.Candidate.ID)
	}
}

func TestRankEmptyPool(t *testing.T) {
	ranked, err := Rank(context.Background(), criteria.Normalize(criteria.RawFilterInput{"skills": "go"}), nil, RankOptions{})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Rank(ctx, criteria.Normalize(nil), []*models.Candidate{{ID: "a"}}, RankOptions{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankDoesNotMutateCandidates(t *testing.T) {
	cand := &models.Candidate{ID: "a", Skills: []string{"Go", "Rust"}, SelectedWorkTypes: []string{"remote"}}
	before := *cand

	_, err := Rank(context.Background(), criteria.Normalize(criteria.RawFilterInput{
		"skills":   "go",
		"workType": "remote",
	}), []*models.Candidate{cand}, RankOptions{})
	require.NoError(t, err)

	assert.Equal(t, before, *cand)
}

func BenchmarkRank(b *testing.B) {
	c := criteria.Normalize(criteria.RawFilterInput{
		"skills":     []string{"Go", "Postgres", "Kubernetes"},
		"experience": []string{"mid", "senior"},
		"workType":   "remote",
		"locations":  "Berlin",
		"education":  "master",
	})
	candidates := make([]*models.Candidate, 1000)
	for i := range candidates {
		candidates[i] = &models.Candidate{
			ID:                   fmt.Sprintf("c%d", i),
			Skills:               []string{"go", "docker", "postgres"},
			TotalExperienceYears: float64(i % 15),
			SelectedWorkTypes:    []string{"remote"},
			LocationText:         "Berlin, Germany",
			Education:            []models.Education{{Degree: "M.Sc Computer Science"}},
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Rank(context.Background(), c, candidates, RankOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
