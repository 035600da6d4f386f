package matcher

import (
	"math"

	"github.com/khrees2412/hirematch/internal/criteria"
	"github.com/khrees2412/hirematch/pkg/models"
)

// MatchResult is the outcome of scoring one candidate against one set of criteria
type MatchResult struct {
	CandidateID string `json:"candidateId"`
	// Score is the weighted match percentage, 0 to 100.
	Score int `json:"score"`
	// PassesFilters is always true: criteria rank candidates, they never exclude them.
	PassesFilters bool             `json:"passesFilters"`
	Total         float64          `json:"total"`
	MaxPossible   float64          `json:"maxPossible"`
	Breakdown     []DimensionScore `json:"breakdown,omitempty"`
}

// DimensionScore is the contribution of one active dimension
type DimensionScore struct {
	Dimension string  `json:"dimension"`
	Earned    float64 `json:"earned"`
	Max       float64 `json:"max"`
}

// Matcher scores candidates with a fixed table of field matchers.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	fields []FieldMatcher
}

// New returns a Matcher over the given fields, or DefaultFields when none are given.
func New(fields ...FieldMatcher) *Matcher {
	if len(fields) == 0 {
		fields = DefaultFields()
	}
	return &Matcher{fields: fields}
}

var defaultMatcher = New()

// Score uses the default weight table.
func Score(c criteria.SearchCriteria, cand *models.Candidate) MatchResult {
	return defaultMatcher.Score(c, cand)
}

// ActiveDimensions lists the names of the dimensions c activates.
func (m *Matcher) ActiveDimensions(c criteria.SearchCriteria) []string {
	names := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		if f.Active(c) {
			names = append(names, f.Name())
		}
	}
	return names
}

// Score computes round(total / maxPossible * 100) over the active dimensions.
// With no active dimension the score is 0. A nil candidate scores like an
// empty one.
func (m *Matcher) Score(c criteria.SearchCriteria, cand *models.Candidate) MatchResult {
	if cand == nil {
		cand = &models.Candidate{}
	}

	res := MatchResult{CandidateID: cand.ID, PassesFilters: true}
	for _, f := range m.fields {
		if !f.Active(c) {
			continue
		}
		weight := f.Weight()
		earned := weight * clamp(f.Match(c, cand), 0, 1)

		res.Total += earned
		res.MaxPossible += weight
		res.Breakdown = append(res.Breakdown, DimensionScore{
			Dimension: f.Name(),
			Earned:    earned,
			Max:       weight,
		})
	}

	if res.MaxPossible > 0 {
		res.Score = int(clamp(math.Round(res.Total/res.MaxPossible*100), 0, 100))
	}
	return res
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
