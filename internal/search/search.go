// Package search ranks the candidate pool against a filter request.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khrees2412/hirematch/internal/criteria"
	"github.com/khrees2412/hirematch/internal/matcher"
	"github.com/khrees2412/hirematch/pkg/models"
)

const fallbackLimit = 20

// CandidateSource supplies the pool a search ranks.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, includeInactive bool) ([]*models.Candidate, error)
}

// JobSource looks up saved jobs whose criteria can be merged into a search.
type JobSource interface {
	GetJob(ctx context.Context, id int) (*models.Job, error)
}

// Service runs searches. Zero values for Matcher, Logger, Workers and
// DefaultLimit fall back to the defaults.
type Service struct {
	Candidates   CandidateSource
	Jobs         JobSource
	Matcher      *matcher.Matcher
	Logger       *zap.Logger
	Workers      int
	DefaultLimit int
}

// New returns a Service backed by the given sources
func New(candidates CandidateSource, jobs JobSource, logger *zap.Logger) *Service {
	return &Service{Candidates: candidates, Jobs: jobs, Logger: logger}
}

// Request is a single search.
type Request struct {
	Filters criteria.RawFilterInput
	// JobID merges the requirements of a saved job into Filters.
	JobID           int
	Limit           int
	Offset          int
	IncludeInactive bool
}

// Result is one ranked candidate
type Result struct {
	Candidate *models.Candidate        `json:"candidate"`
	Score     int                      `json:"score"`
	Breakdown []matcher.DimensionScore `json:"breakdown,omitempty"`
}

// Response is a page of ranked candidates. Total counts the whole ranked pool.
type Response struct {
	Criteria         criteria.SearchCriteria `json:"criteria"`
	ActiveDimensions []string                `json:"activeDimensions"`
	Total            int                     `json:"total"`
	Limit            int                     `json:"limit"`
	Offset           int                     `json:"offset"`
	Results          []Result                `json:"results"`
}

// Search normalizes the request filters, ranks the candidate pool and returns
// the requested page. Malformed filter fields never fail a search; they are
// dropped during normalization.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	if req.Limit < 0 || req.Offset < 0 {
		return nil, fmt.Errorf("limit and offset must not be negative: %w", models.ErrInvalidArgument)
	}

	started := time.Now()
	log := s.logger()

	c, err := s.Criteria(ctx, req.Filters, req.JobID)
	if err != nil {
		return nil, err
	}

	pool, err := s.Candidates.FetchCandidates(ctx, req.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}

	m := s.matcher()
	ranked, err := m.Rank(ctx, c, pool, matcher.RankOptions{Workers: s.Workers})
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.defaultLimit()
	}

	resp := &Response{
		Criteria:         c,
		ActiveDimensions: m.ActiveDimensions(c),
		Total:            len(ranked),
		Limit:            limit,
		Offset:           req.Offset,
		Results:          []Result{},
	}
	for _, r := range page(ranked, req.Offset, limit) {
		resp.Results = append(resp.Results, Result{
			Candidate: r.Candidate,
			Score:     r.Result.Score,
			Breakdown: r.Result.Breakdown,
		})
	}

	log.Info("search completed",
		zap.Strings("dimensions", resp.ActiveDimensions),
		zap.Int("pool", len(pool)),
		zap.Int("ranked", resp.Total),
		zap.Int("returned", len(resp.Results)),
		zap.Int("job_id", req.JobID),
		zap.Duration("elapsed", time.Since(started)),
	)

	return resp, nil
}

// Criteria normalizes filters and, when jobID is set, merges in the saved
// job's requirements.
func (s *Service) Criteria(ctx context.Context, filters criteria.RawFilterInput, jobID int) (criteria.SearchCriteria, error) {
	n := criteria.Normalizer{Logger: s.logger()}
	c := n.NormalizeRequest(filters)
	if jobID == 0 {
		return c, nil
	}

	if s.Jobs == nil {
		return c, fmt.Errorf("job lookup is not configured: %w", models.ErrInvalidArgument)
	}
	job, err := s.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return c, fmt.Errorf("loading job %d: %w", jobID, err)
	}

	return criteria.Merge(c, n.Normalize(criteria.RawFilterInput(job.Criteria))), nil
}

func page(ranked []matcher.Ranked, offset, limit int) []matcher.Ranked {
	if offset >= len(ranked) {
		return nil
	}
	end := len(ranked)
	if limit < end-offset {
		end = offset + limit
	}
	return ranked[offset:end]
}

func (s *Service) matcher() *matcher.Matcher {
	if s.Matcher == nil {
		return matcher.New()
	}
	return s.Matcher
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) defaultLimit() int {
	if s.DefaultLimit > 0 {
		return s.DefaultLimit
	}
	return fallbackLimit
}
